package input

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyByName inverts tcell.KeyNames ("Up", "Enter", "Ctrl-Q")
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[name] = k
	}
	return m
}()

// KeyTable maps terminal keys to logical buttons
type KeyTable struct {
	SpecialKeys map[tcell.Key]string
	Runes       map[rune]string
}

// NewKeyTable resolves key-name to button bindings
// A single character binds that rune; longer names resolve through aliases then tcell key names
func NewKeyTable(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]string),
		Runes:       make(map[rune]string),
	}
	for name, button := range bindings {
		if button == "" {
			return nil, fmt.Errorf("key %q: empty button", name)
		}
		if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
			kt.Runes[r] = button
			continue
		}
		if r, ok := runeAliases[name]; ok {
			kt.Runes[r] = button
			continue
		}
		k, ok := keyByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown key name: %q", name)
		}
		kt.SpecialKeys[k] = button
	}
	return kt, nil
}

// Lookup returns the button bound to a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := kt.Runes[ev.Rune()]
		return b, ok
	}
	b, ok := kt.SpecialKeys[ev.Key()]
	return b, ok
}
