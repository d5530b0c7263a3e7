package fsm

import (
	"fmt"

	"github.com/lixenwraith/tile-raider/event"
)

// Transition is a directed edge taken when its trigger matches an event
type Transition struct {
	Source  string
	Dest    string
	Trigger event.Trigger
}

// NewTransition creates an edge from src to dst
func NewTransition(src, dst string, trigger event.Trigger) Transition {
	return Transition{Source: src, Dest: dst, Trigger: trigger}
}

// InvokedBy reports whether e fires this transition
func (t Transition) InvokedBy(e event.Event) bool {
	return t.Trigger.Matches(e)
}

func (t Transition) String() string {
	if t.Trigger.AnyKind {
		return fmt.Sprintf("%s->%s on *", t.Source, t.Dest)
	}
	return fmt.Sprintf("%s->%s on %s", t.Source, t.Dest, t.Trigger.Kind)
}
