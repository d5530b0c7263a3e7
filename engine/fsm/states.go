package fsm

import (
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/physics"
)

// Locatable is anything with a world-space center, used by Follow for owner and target
type Locatable interface {
	Center() physics.Vec
}

// binder is implemented by behaviors that need the owning entity
type binder interface {
	bind(owner Locatable)
}

// Idle produces no changes
type Idle struct{}

// NewIdle creates "idle_<id>"
func NewIdle(id string, timeout float64) *State {
	return newState("idle_"+id, timeout, Idle{})
}

func (Idle) step(*State, float64) Delta       { return Delta{} }
func (Idle) arrive(*State, event.Event) Delta { return Delta{} }
func (Idle) depart(*State) Delta              { return Delta{} }

// Move sets a constant velocity for the residency; position integrates from velocity
type Move struct {
	Velocity physics.Vec
}

// NewMove creates "move_<id>" with velocity (vx, vy) in pixels per time unit
func NewMove(id string, vx, vy, timeout float64) *State {
	return newState("move_"+id, timeout, Move{Velocity: physics.Vec{X: vx, Y: vy}})
}

func (m Move) step(*State, float64) Delta { return Delta{} }

func (m Move) arrive(*State, event.Event) Delta {
	return PhysicalDelta(physics.VelocityDelta(m.Velocity.X, m.Velocity.Y))
}

func (m Move) depart(*State) Delta {
	return PhysicalDelta(physics.VelocityDelta(-m.Velocity.X, -m.Velocity.Y))
}

// Follow moves toward a target at a fixed speed without overshooting
// The target comes from the arrival event: ParamTarget, or the collision
// participant that is not the owner
type Follow struct {
	Speed float64

	owner  Locatable
	target Locatable
}

// NewFollow creates "follow_<id>"
func NewFollow(id string, speed, timeout float64) *State {
	return newState("follow_"+id, timeout, &Follow{Speed: speed})
}

// Target returns the tracked target, nil when none
func (f *Follow) Target() Locatable {
	return f.target
}

func (f *Follow) bind(owner Locatable) {
	f.owner = owner
}

func (f *Follow) step(_ *State, dt float64) Delta {
	if f.target == nil || f.Speed <= 0 || dt <= 0 {
		return Delta{}
	}
	var from physics.Vec
	if f.owner != nil {
		from = f.owner.Center()
	}
	diff := f.target.Center().Sub(from)
	dist := diff.Len()
	if dist == 0 {
		return Delta{}
	}
	if travel := f.Speed * dt; travel < dist {
		diff = diff.Scale(travel / dist)
	}
	return PhysicalDelta(physics.OffsetDelta(diff.X, diff.Y))
}

func (f *Follow) arrive(_ *State, trigger event.Event) Delta {
	f.target = f.resolveTarget(trigger)
	return Delta{}
}

func (f *Follow) depart(*State) Delta {
	f.target = nil
	return Delta{}
}

func (f *Follow) resolveTarget(trigger event.Event) Locatable {
	if v, ok := trigger.Param(event.ParamTarget); ok {
		if l, ok := v.(Locatable); ok {
			return l
		}
	}
	v, ok := trigger.Param(event.ParamObjects)
	if !ok {
		return nil
	}
	objects, ok := v.([]any)
	if !ok {
		return nil
	}
	for _, o := range objects {
		l, ok := o.(Locatable)
		if !ok || l == f.owner {
			continue
		}
		return l
	}
	return nil
}

// Hit applies damage once on arrival and times out immediately
type Hit struct {
	Damage int
}

// NewHit creates "hit_<id>" with a zero timeout
func NewHit(id string, damage int) *State {
	return NewTimedHit(id, damage, 0)
}

// NewTimedHit creates "hit_<id>" that stays active until timeout
func NewTimedHit(id string, damage int, timeout float64) *State {
	return newState("hit_"+id, timeout, Hit{Damage: damage})
}

func (h Hit) step(*State, float64) Delta { return Delta{} }

func (h Hit) arrive(*State, event.Event) Delta {
	return PhysicalDelta(physics.HealthDelta(-h.Damage))
}

func (h Hit) depart(*State) Delta { return Delta{} }

// Shift offsets position on arrival and undoes it on departure
type Shift struct {
	Offset physics.Vec
}

// NewShift creates "shift_<id>"
func NewShift(id string, dx, dy, timeout float64) *State {
	return newState("shift_"+id, timeout, Shift{Offset: physics.Vec{X: dx, Y: dy}})
}

func (s Shift) step(*State, float64) Delta { return Delta{} }

func (s Shift) arrive(*State, event.Event) Delta {
	return PhysicalDelta(physics.OffsetDelta(s.Offset.X, s.Offset.Y))
}

func (s Shift) depart(*State) Delta {
	return PhysicalDelta(physics.OffsetDelta(-s.Offset.X, -s.Offset.Y))
}
