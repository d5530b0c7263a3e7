package content

import (
	"fmt"

	"github.com/lixenwraith/tile-raider/engine"
	"github.com/lixenwraith/tile-raider/engine/fsm"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/physics"
)

// Blueprint is a validated entity kind ready to spawn
// Every Spawn builds fresh states, machine and volume; templates are shared read-only
type Blueprint struct {
	Kind      string
	Player    bool
	Anchored  bool
	Body      BodySpec
	Start     string
	States    []StateSpec
	Templates map[string]*physics.CompositeHitbox

	bodyKind physics.HitboxKind
	edges    []edge
}

type edge struct {
	src, dst string
	trigger  event.Trigger
}

// NewBlueprint checks a descriptor against its hitbox templates
// templates may be nil when the kind uses its body box in every state
func NewBlueprint(d *Descriptor, templates map[string]*physics.CompositeHitbox) (*Blueprint, error) {
	bodyKind, ok := physics.HitboxKindFromName(d.Body.Hitbox)
	if !ok {
		return nil, fmt.Errorf("kind %s: unknown body hitbox %q", d.Kind, d.Body.Hitbox)
	}

	b := &Blueprint{
		Kind:      d.Kind,
		Player:    d.Player,
		Anchored:  d.Anchored,
		Body:      d.Body,
		Start:     d.Start,
		States:    d.States,
		Templates: templates,
		bodyKind:  bodyKind,
	}
	if b.Body.Mass == 0 {
		b.Body.Mass = 1
	}
	if b.Body.Health == 0 {
		b.Body.Health = 1
	}

	for _, t := range d.Transitions {
		trigger, err := parseTrigger(t)
		if err != nil {
			return nil, fmt.Errorf("kind %s: %w", d.Kind, err)
		}
		b.edges = append(b.edges, edge{src: t.From, dst: t.To, trigger: trigger})
	}

	// dry run catches unknown state names and duplicates
	m, err := b.Machine()
	if err != nil {
		return nil, fmt.Errorf("kind %s: %w", d.Kind, err)
	}
	if b.Start == "" {
		b.Start = m.CurrentName()
	}
	for name := range templates {
		if _, ok := m.State(name); !ok {
			return nil, fmt.Errorf("kind %s: hitbox template for unknown state %q", d.Kind, name)
		}
	}
	return b, nil
}

func parseTrigger(t TransitionSpec) (event.Trigger, error) {
	var trigger event.Trigger
	if t.On == "*" {
		trigger = event.Always()
	} else {
		kind, ok := event.KindFromName(t.On)
		if !ok {
			return trigger, fmt.Errorf("transition %s -> %s: unknown event %q", t.From, t.To, t.On)
		}
		trigger = event.On(kind)
	}
	for k, v := range t.Where {
		trigger = trigger.With(k, v)
	}
	return trigger, nil
}

func (s StateSpec) build() (*fsm.State, error) {
	timeout := fsm.NoTimeout
	if s.Timeout != nil {
		timeout = *s.Timeout
	}
	switch s.Type {
	case "idle":
		return fsm.NewIdle(s.ID, timeout), nil
	case "move":
		return fsm.NewMove(s.ID, s.Velocity[0], s.Velocity[1], timeout), nil
	case "follow":
		return fsm.NewFollow(s.ID, s.Speed, timeout), nil
	case "hit":
		if s.Timeout == nil {
			return fsm.NewHit(s.ID, s.Damage), nil
		}
		return fsm.NewTimedHit(s.ID, s.Damage, timeout), nil
	case "shift":
		return fsm.NewShift(s.ID, s.Offset[0], s.Offset[1], timeout), nil
	}
	return nil, fmt.Errorf("state %s: unknown type %q", s.ID, s.Type)
}

// Machine builds a fresh state machine in the start state
func (b *Blueprint) Machine() (*fsm.Machine, error) {
	builder := fsm.NewBuilder()
	for _, spec := range b.States {
		st, err := spec.build()
		if err != nil {
			return nil, err
		}
		builder.AddState(st)
	}
	for _, e := range b.edges {
		builder.AddTransition(e.src, e.dst, e.trigger)
	}
	return builder.Start(b.Start).Build()
}

// Volume builds the start-state hitbox with bounds top-left at (x, y)
func (b *Blueprint) Volume(x, y float64) *physics.CompositeHitbox {
	var vol *physics.CompositeHitbox
	if tpl, ok := b.Templates[b.Start]; ok {
		vol = tpl.Clone()
	} else {
		vol = physics.NewCompositeHitbox(0, 0, physics.Hitbox{
			Rect: physics.Rect{W: b.Body.Width, H: b.Body.Height},
			Kind: b.bodyKind,
		})
	}
	bounds := vol.Bounds()
	vol.Translate(x-bounds.X, y-bounds.Y)
	return vol
}

// Spawn builds an entity with bounds top-left at (x, y)
func (b *Blueprint) Spawn(id engine.EntityID, x, y float64) (*engine.Entity, error) {
	mind, err := b.Machine()
	if err != nil {
		return nil, fmt.Errorf("kind %s: %w", b.Kind, err)
	}
	return engine.NewEntity(id, engine.EntitySpec{
		Kind:      b.Kind,
		Physical:  physics.NewPhysicalState(b.Volume(x, y), b.Body.Mass, b.Body.Health),
		Mind:      mind,
		Templates: b.Templates,
		Anchored:  b.Anchored,
		Player:    b.Player,
	}), nil
}
