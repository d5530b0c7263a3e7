package engine

import (
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
)

// Contact is a classified hitbox collision between two entities
type Contact struct {
	A, B       *Entity
	BoxA, BoxB *physics.Hitbox
	Attacker   *Entity // owner of the Hurt box when the other is Vulnerable
	Victim     *Entity
	Tangible   bool // neither box is intangible; interpenetration is resolved
}

// Classify assigns roles and tangibility to a box pair owned by a and b
func Classify(a, b *Entity, boxA, boxB *physics.Hitbox) Contact {
	c := Contact{
		A: a, B: b,
		BoxA: boxA, BoxB: boxB,
		Tangible: boxA.Tangible() && boxB.Tangible(),
	}
	switch {
	case boxA.Kind == physics.HitboxHurt && boxB.Kind == physics.HitboxVulnerable:
		c.Attacker, c.Victim = a, b
	case boxA.Kind == physics.HitboxVulnerable && boxB.Kind == physics.HitboxHurt:
		c.Attacker, c.Victim = b, a
	}
	return c
}

// HasRoles reports an attacker/victim contact
func (c Contact) HasRoles() bool {
	return c.Attacker != nil
}

// Event builds the shared collision event
func (c Contact) Event() event.Event {
	params := event.Params{
		event.ParamObjects: []any{c.A, c.B},
		event.ParamVolumes: []any{c.BoxA, c.BoxB},
	}
	if c.HasRoles() {
		params[event.ParamAttacker] = c.Attacker
		params[event.ParamVictim] = c.Victim
	}
	return event.New(event.KindCollision, params)
}

// EventFor is the event delivered to one participant, tagged with its role when roles apply
func (c Contact) EventFor(e *Entity) event.Event {
	ev := c.Event()
	if !c.HasRoles() {
		return ev
	}
	params := ev.Params()
	switch e {
	case c.Attacker:
		params[event.ParamRole] = event.RoleAttacker
	case c.Victim:
		params[event.ParamRole] = event.RoleVictim
	}
	return event.New(event.KindCollision, params)
}

// Mover picks the body displaced by resolution: A unless A is anchored
// Returns nil when both are anchored
func (c Contact) Mover() (movable, fixed *Entity) {
	switch {
	case !c.A.Anchored():
		return c.A, c.B
	case !c.B.Anchored():
		return c.B, c.A
	}
	return nil, nil
}

// ResolvePenetration pushes movable out of fixed along the axis of smaller overlap
// The push direction compares centers, so full containment also separates
// Returns false when the boxes do not overlap
func ResolvePenetration(movable *physics.CompositeHitbox, fixed physics.Rect) bool {
	m := movable.Bounds()
	overlap := m.Clip(fixed)
	if overlap.Empty() {
		return false
	}

	mc, fc := m.Center(), fixed.Center()
	if overlap.W < overlap.H {
		if mc.X <= fc.X {
			movable.Translate(-(m.Right()-fixed.X)-parameter.ResolveEpsilon, 0)
		} else {
			movable.Translate(fixed.Right()-m.X+parameter.ResolveEpsilon, 0)
		}
	} else {
		if mc.Y <= fc.Y {
			movable.Translate(0, -(m.Bottom()-fixed.Y)-parameter.ResolveEpsilon)
		} else {
			movable.Translate(0, fixed.Bottom()-m.Y+parameter.ResolveEpsilon)
		}
	}
	return true
}
