package fsm

import "github.com/lixenwraith/tile-raider/event"

// Builder assembles a machine programmatically
// Errors surface from Build; intermediate calls never fail
type Builder struct {
	states      []*State
	transitions []Transition
	start       string
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// AddState appends states in declaration order
func (b *Builder) AddState(states ...*State) *Builder {
	b.states = append(b.states, states...)
	return b
}

// AddTransition appends an edge; edges from the same source are tried in insertion order
func (b *Builder) AddTransition(src, dst string, trigger event.Trigger) *Builder {
	b.transitions = append(b.transitions, NewTransition(src, dst, trigger))
	return b
}

// Start selects the initial state
func (b *Builder) Start(name string) *Builder {
	b.start = name
	return b
}

// Build validates the graph
func (b *Builder) Build() (*Machine, error) {
	return NewMachine(b.states, b.transitions, b.start)
}
