package engine

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/tile-raider/engine/fsm"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/physics"
)

// EntitySpec holds everything a Factory produces for one entity
type EntitySpec struct {
	Kind      string
	Physical  *physics.PhysicalState
	Mind      *fsm.Machine
	Templates map[string]*physics.CompositeHitbox // read-only shape library keyed by state name
	Anchored  bool                                // never displaced by entity-entity resolution or tiles
	Player    bool
}

// RenderKey selects presentation assets for an entity
type RenderKey struct {
	Kind  string
	State string
}

// Entity couples a state machine with a physical state and hitbox shape library
// Events queued by NotifyOf take effect on the next Update
type Entity struct {
	id        EntityID
	kind      string
	physical  *physics.PhysicalState
	mind      *fsm.Machine
	templates map[string]*physics.CompositeHitbox
	pending   event.Queue
	anchored  bool
	player    bool
}

// NewEntity builds an entity and aligns its hitbox with the current state's template
func NewEntity(id EntityID, spec EntitySpec) *Entity {
	if spec.Physical == nil {
		spec.Physical = physics.NewPhysicalState(nil, 0, 1)
	}
	if spec.Physical.Volume == nil {
		spec.Physical.Volume = physics.NewCompositeHitbox(0, 0)
	}
	e := &Entity{
		id:        id,
		kind:      spec.Kind,
		physical:  spec.Physical,
		mind:      spec.Mind,
		templates: spec.Templates,
		anchored:  spec.Anchored,
		player:    spec.Player,
	}
	if e.mind != nil {
		e.mind.Bind(e)
	}
	e.syncHitboxShape()
	return e
}

// NotifyOf enqueues an event for the next Update
func (e *Entity) NotifyOf(ev event.Event) {
	e.pending.Push(ev)
}

// Update drains pending events into transitions, steps the machine, applies the
// physical delta, integrates velocity, and syncs hitbox shape on state change
// Returns produced events in order, with a trailing Death when health is exhausted
func (e *Entity) Update(dt float64) []event.Event {
	var d fsm.Delta
	before := ""
	if e.mind != nil {
		before = e.mind.CurrentName()
		for _, ev := range e.pending.Consume() {
			d = d.Add(e.mind.SimulateTransition(ev))
		}
		d = d.Add(e.mind.SimulateStep(dt))
	} else {
		e.pending.Consume()
	}

	e.physical.AddDelta(d.Physical)
	e.physical.Update(dt)

	if e.mind != nil && e.mind.CurrentName() != before {
		e.syncHitboxShape()
	}

	events := d.Events
	if e.physical.Health <= 0 {
		events = append(events, event.New(event.KindDeath, event.Params{event.ParamEntity: e}))
	}
	return events
}

// syncHitboxShape adopts the template for the current state, keeping the old shape when none exists
func (e *Entity) syncHitboxShape() {
	if e.mind == nil {
		return
	}
	if tpl, ok := e.templates[e.mind.CurrentName()]; ok {
		e.physical.Volume.AdoptTemplate(tpl)
	}
}

// MoveTo places the bounding box top-left corner at (x, y)
func (e *Entity) MoveTo(x, y float64) {
	b := e.physical.Volume.Bounds()
	e.physical.Volume.Translate(x-b.X, y-b.Y)
}

func (e *Entity) ID() EntityID                     { return e.id }
func (e *Entity) Kind() string                     { return e.kind }
func (e *Entity) Name() string                     { return e.kind + "_" + strconv.FormatUint(uint64(e.id), 10) }
func (e *Entity) Physical() *physics.PhysicalState { return e.physical }
func (e *Entity) Volume() *physics.CompositeHitbox { return e.physical.Volume }
func (e *Entity) Mind() *fsm.Machine               { return e.mind }
func (e *Entity) Anchored() bool                   { return e.anchored }
func (e *Entity) IsPlayer() bool                   { return e.player }
func (e *Entity) Pending() int                     { return e.pending.Len() }
func (e *Entity) Health() int                      { return e.physical.Health }
func (e *Entity) MaxHealth() int                   { return e.physical.MaxHealth }

// Center implements fsm.Locatable
func (e *Entity) Center() physics.Vec {
	return e.physical.Volume.Center()
}

// Bounds returns the composite bounding box
func (e *Entity) Bounds() physics.Rect {
	return e.physical.Volume.Bounds()
}

// StateName returns the current mental state, empty without a machine
func (e *Entity) StateName() string {
	if e.mind == nil {
		return ""
	}
	return e.mind.CurrentName()
}

// StateActiveTime returns residency time of the current state
func (e *Entity) StateActiveTime() float64 {
	if e.mind == nil {
		return 0
	}
	return e.mind.Current().ActiveTime()
}

func (e *Entity) RenderKey() RenderKey {
	return RenderKey{Kind: e.kind, State: e.StateName()}
}

// Status is a diagnostic line "<name> <state> <active time>"
func (e *Entity) Status() string {
	return fmt.Sprintf("%s %s %g", e.Name(), e.StateName(), e.StateActiveTime())
}

func (e *Entity) String() string {
	return e.Name()
}

// Immobile reports an anchored entity whose states never move it or reshape its hitbox
// A lone template must belong to the current state; states without a template keep the adopted shape
func (e *Entity) Immobile() bool {
	if !e.anchored || !e.physical.Velocity.IsZero() || len(e.templates) > 1 {
		return false
	}
	if e.mind == nil {
		return true
	}
	for name := range e.templates {
		if name != e.mind.CurrentName() {
			return false
		}
	}
	for _, s := range e.mind.States() {
		switch s.Behavior().(type) {
		case fsm.Idle, fsm.Hit:
		default:
			return false
		}
	}
	return true
}
