package fsm

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
)

var (
	// ErrNoStates is returned when a machine is built without states
	ErrNoStates = errors.New("fsm: machine has no states")
	// ErrUnknownState is returned when a transition or start references an undeclared state
	ErrUnknownState = errors.New("fsm: unknown state")
	// ErrDuplicateState is returned when two states share a name
	ErrDuplicateState = errors.New("fsm: duplicate state")
)

// Machine is a directed graph of states advanced by time steps and events
// The current state always names a declared state; self-loops are allowed
type Machine struct {
	states      map[string]*State
	order       []string
	transitions map[string][]Transition
	current     string
}

// NewMachine validates and builds a machine; an empty start selects the first state
// The start state is entered without an arrival delta
func NewMachine(states []*State, transitions []Transition, start string) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}

	m := &Machine{
		states:      make(map[string]*State, len(states)),
		order:       make([]string, 0, len(states)),
		transitions: make(map[string][]Transition),
	}

	for _, s := range states {
		if s == nil {
			return nil, fmt.Errorf("fsm: nil state at index %d", len(m.order))
		}
		if _, exists := m.states[s.name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateState, s.name)
		}
		m.states[s.name] = s
		m.order = append(m.order, s.name)
	}

	for _, t := range transitions {
		if _, ok := m.states[t.Source]; !ok {
			return nil, fmt.Errorf("%w: transition source %q", ErrUnknownState, t.Source)
		}
		if _, ok := m.states[t.Dest]; !ok {
			return nil, fmt.Errorf("%w: transition destination %q", ErrUnknownState, t.Dest)
		}
		m.transitions[t.Source] = append(m.transitions[t.Source], t)
	}

	if start == "" {
		start = m.order[0]
	}
	if _, ok := m.states[start]; !ok {
		return nil, fmt.Errorf("%w: start %q", ErrUnknownState, start)
	}
	m.current = start

	return m, nil
}

// MustMachine is NewMachine for statically known graphs, panicking on invalid input
func MustMachine(states []*State, transitions []Transition, start string) *Machine {
	m, err := NewMachine(states, transitions, start)
	if err != nil {
		panic(err)
	}
	return m
}

// Bind hands the owning entity to behaviors that track positions relative to it
func (m *Machine) Bind(owner Locatable) {
	for _, s := range m.states {
		if b, ok := s.behavior.(binder); ok {
			b.bind(owner)
		}
	}
}

// SimulateStep steps the current state, then while it reports timed out fires a
// timeout transition and steps the new state with the same dt
// The chain stops when no timeout transition matches or after MaxTimeoutChain hops
func (m *Machine) SimulateStep(dt float64) Delta {
	d := m.Current().SimulateStep(dt)
	for hops := 0; hops < parameter.MaxTimeoutChain && m.Current().HasTimedOut(); hops++ {
		td, ok := m.transition(event.New(event.KindTimeout, nil))
		if !ok {
			break
		}
		d = d.Add(td).Add(m.Current().SimulateStep(dt))
	}
	return d
}

// SimulateTransition takes the first outgoing transition matching e, in insertion order
// Returns departure plus arrival; an unmatched event yields an empty delta and no change
func (m *Machine) SimulateTransition(e event.Event) Delta {
	d, _ := m.transition(e)
	return d
}

func (m *Machine) transition(e event.Event) (Delta, bool) {
	for _, t := range m.transitions[m.current] {
		if !t.InvokedBy(e) {
			continue
		}
		src := m.states[t.Source]
		dst := m.states[t.Dest]
		m.current = dst.name
		return src.SimulateDeparture().Add(dst.SimulateArrival(e)), true
	}
	return Delta{}, false
}

// Current returns the active state
func (m *Machine) Current() *State {
	return m.states[m.current]
}

// CurrentName returns the active state name
func (m *Machine) CurrentName() string {
	return m.current
}

// State looks up a state by name
func (m *Machine) State(name string) (*State, bool) {
	s, ok := m.states[name]
	return s, ok
}

// States returns states in declaration order
func (m *Machine) States() []*State {
	out := make([]*State, len(m.order))
	for i, name := range m.order {
		out[i] = m.states[name]
	}
	return out
}

// Transitions returns all edges grouped by source in declaration order
func (m *Machine) Transitions() []Transition {
	var out []Transition
	for _, name := range m.order {
		out = append(out, m.transitions[name]...)
	}
	return out
}
