package fsm

import (
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/physics"
)

// Delta is the aggregate outcome of a simulation step or boundary crossing
// Physical is interpreted relative to the entity state; Events are in production order
type Delta struct {
	Physical *physics.PhysicalState
	Events   []event.Event
}

// PhysicalDelta wraps a physical delta
func PhysicalDelta(p *physics.PhysicalState) Delta {
	return Delta{Physical: p}
}

// EventDelta wraps produced events
func EventDelta(events ...event.Event) Delta {
	return Delta{Events: events}
}

// Add returns d followed by o, leaving both operands untouched
// Physical parts accumulate, event lists concatenate left then right
func (d Delta) Add(o Delta) Delta {
	var out Delta
	if d.Physical != nil || o.Physical != nil {
		out.Physical = (&physics.PhysicalState{}).AddDelta(d.Physical).AddDelta(o.Physical)
	}
	if n := len(d.Events) + len(o.Events); n > 0 {
		out.Events = make([]event.Event, 0, n)
		out.Events = append(out.Events, d.Events...)
		out.Events = append(out.Events, o.Events...)
	}
	return out
}

// IsZero reports a delta with no physical change and no events
func (d Delta) IsZero() bool {
	return len(d.Events) == 0 && physicalZero(d.Physical)
}

// Equal compares the physical offset, velocity, mass and health parts and the event sequence
// Volume shape is ignored, only its origin carries meaning in a delta
func (d Delta) Equal(o Delta) bool {
	if !physicalEqual(d.Physical, o.Physical) || len(d.Events) != len(o.Events) {
		return false
	}
	for i := range d.Events {
		if !d.Events[i].Equal(o.Events[i]) {
			return false
		}
	}
	return true
}

func physicalZero(p *physics.PhysicalState) bool {
	return physicalEqual(p, nil)
}

func physicalEqual(a, b *physics.PhysicalState) bool {
	if a == nil {
		a = &physics.PhysicalState{}
	}
	if b == nil {
		b = &physics.PhysicalState{}
	}
	return a.Position() == b.Position() &&
		a.Velocity == b.Velocity &&
		a.Mass == b.Mass &&
		a.Health == b.Health &&
		a.MaxHealth == b.MaxHealth
}
