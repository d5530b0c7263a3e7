package input

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
)

// Mapper turns terminal events into world key events
// Terminals report presses and auto-repeats but no releases: a held button is
// released when another button is pressed or when repeats stop for the hold timeout
type Mapper struct {
	keys *KeyTable
	hold time.Duration
	now  func() time.Time

	// button -> last press or repeat
	held map[string]time.Time
}

// NewMapper creates a mapper over a key table with the default hold timeout
func NewMapper(keys *KeyTable) *Mapper {
	return &Mapper{
		keys: keys,
		hold: parameter.KeyHoldTimeout,
		now:  time.Now,
		held: make(map[string]time.Time),
	}
}

// SetClock replaces the time source
func (m *Mapper) SetClock(now func() time.Time) {
	m.now = now
}

// SetHoldTimeout overrides how long a button stays down without repeats
func (m *Mapper) SetHoldTimeout(d time.Duration) {
	m.hold = d
}

// Process maps one terminal event
// System keys and resizes return an intent; bound keys return key events
func (m *Mapper) Process(ev tcell.Event) (IntentType, []event.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return IntentResize, nil
	case *tcell.EventFocus:
		if !ev.Focused {
			return IntentNone, m.releaseAll()
		}
		return IntentNone, nil
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ, tcell.KeyEscape:
			return IntentQuit, nil
		case tcell.KeyCtrlS:
			return IntentToggleMute, nil
		}
		button, ok := m.keys.Lookup(ev)
		if !ok {
			return IntentNone, nil
		}
		return IntentNone, m.press(button)
	}
	return IntentNone, nil
}

func (m *Mapper) press(button string) []event.Event {
	now := m.now()
	if _, down := m.held[button]; down {
		m.held[button] = now
		return nil
	}
	out := m.releaseAll()
	m.held[button] = now
	return append(out, event.Key(event.KindKeyDown, button))
}

// Expire releases buttons whose repeats stopped longer than the hold timeout ago
func (m *Mapper) Expire() []event.Event {
	now := m.now()
	var out []event.Event
	for _, button := range m.heldButtons() {
		if now.Sub(m.held[button]) >= m.hold {
			delete(m.held, button)
			out = append(out, event.Key(event.KindKeyUp, button))
		}
	}
	return out
}

// ReleaseAll releases every held button; the game calls it on segment changes
func (m *Mapper) ReleaseAll() []event.Event {
	return m.releaseAll()
}

func (m *Mapper) releaseAll() []event.Event {
	var out []event.Event
	for _, button := range m.heldButtons() {
		delete(m.held, button)
		out = append(out, event.Key(event.KindKeyUp, button))
	}
	return out
}

// Held reports whether button is currently down
func (m *Mapper) Held(button string) bool {
	_, ok := m.held[button]
	return ok
}

// heldButtons returns held buttons sorted for deterministic release order
func (m *Mapper) heldButtons() []string {
	buttons := make([]string, 0, len(m.held))
	for b := range m.held {
		buttons = append(buttons, b)
	}
	sort.Strings(buttons)
	return buttons
}
