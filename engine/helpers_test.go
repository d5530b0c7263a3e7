package engine

import (
	"fmt"

	"github.com/lixenwraith/tile-raider/engine/fsm"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/level"
	"github.com/lixenwraith/tile-raider/physics"
)

// stubFactory builds a small fixed cast for world tests
type stubFactory struct{}

func (stubFactory) Spawn(id EntityID, kind string, x, y float64) (*Entity, error) {
	switch kind {
	case "player":
		return NewEntity(id, EntitySpec{Kind: kind, Player: true, Physical: body(x, y, 20, 20, physics.HitboxVulnerable, 10), Mind: playerMind()}), nil
	case "spike":
		return NewEntity(id, EntitySpec{Kind: kind, Anchored: true, Physical: body(x, y, 20, 20, physics.HitboxHurt, 1), Mind: fsm.MustMachine([]*fsm.State{fsm.NewIdle("1", fsm.NoTimeout)}, nil, "")}), nil
	case "crate":
		return NewEntity(id, EntitySpec{Kind: kind, Physical: body(x, y, 20, 20, physics.HitboxDefault, 1)}), nil
	case "trap":
		// a 10x10 plate that unfolds into a 300px bar when notified
		m := fsm.MustMachine(
			[]*fsm.State{fsm.NewIdle("1", fsm.NoTimeout), fsm.NewIdle("2", fsm.NoTimeout)},
			[]fsm.Transition{fsm.NewTransition("idle_1", "idle_2", event.On(event.KindNotify))},
			"",
		)
		bar := physics.NewCompositeHitbox(0, 0, physics.Hitbox{Rect: physics.Rect{W: 300, H: 10}, Kind: physics.HitboxDefault})
		return NewEntity(id, EntitySpec{
			Kind:      kind,
			Anchored:  true,
			Mind:      m,
			Physical:  body(x, y, 10, 10, physics.HitboxDefault, 1),
			Templates: map[string]*physics.CompositeHitbox{"idle_2": bar},
		}), nil
	case "ghost":
		m := fsm.MustMachine(
			[]*fsm.State{fsm.NewIdle("1", fsm.NoTimeout), fsm.NewIdle("2", fsm.NoTimeout)},
			[]fsm.Transition{fsm.NewTransition("idle_1", "idle_2", event.On(event.KindCollision))},
			"",
		)
		return NewEntity(id, EntitySpec{Kind: kind, Physical: body(x, y, 30, 30, physics.HitboxIntangible, 1), Mind: m}), nil
	case "runner":
		m := fsm.MustMachine([]*fsm.State{fsm.NewMove("right", 1, 0, fsm.NoTimeout)}, nil, "")
		e := NewEntity(id, EntitySpec{Kind: kind, Physical: body(x, y, 20, 20, physics.HitboxDefault, 1), Mind: m})
		e.Physical().Velocity = physics.Vec{X: 1}
		return e, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func body(x, y, w, h float64, kind physics.HitboxKind, health int) *physics.PhysicalState {
	vol := physics.NewCompositeHitbox(x, y, physics.Hitbox{Rect: physics.Rect{W: w, H: h}, Kind: kind})
	return physics.NewPhysicalState(vol, 1, health)
}

// playerMind moves on key down and stops on key up; victim collisions lead to a hit state
func playerMind() *fsm.Machine {
	b := fsm.NewBuilder().AddState(
		fsm.NewIdle("1", fsm.NoTimeout),
		fsm.NewMove("right", 4, 0, fsm.NoTimeout),
		fsm.NewMove("down", 0, 4, fsm.NoTimeout),
		fsm.NewHit("1", 3),
	)
	for _, dir := range []string{"right", "down"} {
		b.AddTransition("idle_1", "move_"+dir, event.OnKey(event.KindKeyDown, dir))
		b.AddTransition("move_"+dir, "idle_1", event.OnKey(event.KindKeyUp, dir))
	}
	victim := event.On(event.KindCollision).With(event.ParamRole, event.RoleVictim)
	b.AddTransition("idle_1", "hit_1", victim)
	b.AddTransition("hit_1", "idle_1", event.On(event.KindTimeout))
	m, err := b.Start("idle_1").Build()
	if err != nil {
		panic(err)
	}
	return m
}

// segments is an in-memory level.Loader
type segments map[int]*level.Segment

func (s segments) Load(id int) (*level.Segment, error) {
	seg, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", level.ErrUnknownSegment, id)
	}
	return seg, nil
}

// walledSegment is a w x h floor surrounded by walls
func walledSegment(id, w, h int) *level.Segment {
	s := level.NewSegment(id, w, h, level.TileFloor)
	for x := 0; x < w; x++ {
		s.SetTile(x, 0, level.TileWall)
		s.SetTile(x, h-1, level.TileWall)
	}
	for y := 0; y < h; y++ {
		s.SetTile(0, y, level.TileWall)
		s.SetTile(w-1, y, level.TileWall)
	}
	return s
}

type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(ev event.Event) { r.events = append(r.events, ev) }

func (r *recorder) count(kind event.Kind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind() == kind {
			n++
		}
	}
	return n
}
