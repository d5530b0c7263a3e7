package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/level"
	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
	"github.com/lixenwraith/tile-raider/status"
)

// Factory builds entities from kind names
type Factory interface {
	Spawn(id EntityID, kind string, x, y float64) (*Entity, error)
}

// Listener observes world-level events: deaths, attacker/victim collisions,
// segment changes, and events produced by entity states
type Listener interface {
	OnEvent(ev event.Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ev event.Event)

func (f ListenerFunc) OnEvent(ev event.Event) { f(ev) }

// ErrNoFactory is returned when a world is built without an entity factory
var ErrNoFactory = errors.New("engine: world requires a factory")

// maxTilePasses bounds repeated tile resolution for bodies wedged into corners
const maxTilePasses = 8

// Config assembles a World
type Config struct {
	Factory  Factory
	Segments level.Loader
	Start    int
	Entry    *physics.Vec // player bounds top-left override, used when resuming
	Camera   CameraConfig
	View     physics.Vec // visible world extent for camera clamping
	CellSize float64
	Metrics  *status.Registry
}

// World owns the entities, collision detector, current segment and camera
// Single-threaded: every mutation happens inside Update or setup calls
type World struct {
	ids       *IDAllocator
	factory   Factory
	segments  level.Loader
	segment   *level.Segment
	entities  []*Entity
	player    *Entity
	owners    map[*physics.Hitbox]*Entity
	detector  *SpatialHash
	camera    *Camera
	cellSize  float64
	listeners []Listener

	clock      float64
	ticks      int64
	playerLost bool

	metricEntities   *atomic.Int64
	metricCollisions *atomic.Int64
	metricTicks      *atomic.Int64
	metricSegment    *atomic.Int64
	metricClock      *status.Float
	metricState      *status.Label
}

// NewWorld loads the start segment and spawns its entities
func NewWorld(cfg Config) (*World, error) {
	if cfg.Factory == nil {
		return nil, ErrNoFactory
	}
	if cfg.Segments == nil {
		return nil, fmt.Errorf("engine: world requires a segment loader")
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = parameter.CollisionCellSize
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}

	w := &World{
		ids:      NewIDAllocator(),
		factory:  cfg.Factory,
		segments: cfg.Segments,
		owners:   make(map[*physics.Hitbox]*Entity),
		cellSize: cfg.CellSize,

		metricEntities:   cfg.Metrics.Ints.Get("world.entities"),
		metricCollisions: cfg.Metrics.Ints.Get("world.collisions"),
		metricTicks:      cfg.Metrics.Ints.Get("world.ticks"),
		metricSegment:    cfg.Metrics.Ints.Get("world.segment"),
		metricClock:      cfg.Metrics.Floats.Get("world.clock"),
		metricState:      cfg.Metrics.Labels.Get("player.state"),
	}
	w.camera = NewCamera(nil, physics.Rect{}, cfg.View, cfg.Camera)

	if err := w.loadSegment(cfg.Start, cfg.Entry); err != nil {
		return nil, err
	}
	w.publish(0)
	return w, nil
}

// AddListener registers a world event observer
func (w *World) AddListener(l Listener) {
	w.listeners = append(w.listeners, l)
}

// NotifyOf delivers ev to targets, or to every entity when none are given
func (w *World) NotifyOf(ev event.Event, targets ...*Entity) {
	if len(targets) == 0 {
		targets = w.entities
	}
	for _, e := range targets {
		if e != nil {
			e.NotifyOf(ev)
		}
	}
}

// Update advances the simulation by dt time units
// Returns an error only when a segment transition fails to load
func (w *World) Update(dt float64) error {
	w.clock += dt
	w.ticks++

	var dead []*Entity
	for _, e := range w.entities {
		for _, ev := range e.Update(dt) {
			if ev.Kind() == event.KindDeath {
				dead = append(dead, e)
			}
			w.emit(ev)
		}
	}
	for _, e := range dead {
		w.Remove(e)
	}

	w.detector.Update()
	collisions := w.resolveEntityCollisions()

	for _, e := range w.entities {
		if e.Anchored() {
			continue
		}
		if e == w.player {
			if link, ok := w.transitionUnder(e); ok {
				if err := w.enterSegment(link); err != nil {
					return err
				}
				break
			}
		}
		w.resolveTiles(e)
	}

	w.camera.Update(w.clock / parameter.SimulationTimeScale)
	w.publish(collisions)
	return nil
}

// resolveEntityCollisions dispatches typed collision events and pushes tangible pairs apart
func (w *World) resolveEntityCollisions() int {
	count := 0
	for _, p := range w.detector.Collisions() {
		boxA, okA := p.A.(*physics.Hitbox)
		boxB, okB := p.B.(*physics.Hitbox)
		if !okA || !okB {
			continue
		}
		a, b := w.owners[boxA], w.owners[boxB]
		if a == nil || b == nil || a == b {
			continue
		}

		c := Classify(a, b, boxA, boxB)
		a.NotifyOf(c.EventFor(a))
		b.NotifyOf(c.EventFor(b))
		if c.HasRoles() {
			w.emit(c.Event())
		}
		count++

		if !c.Tangible {
			continue
		}
		if mover, fixed := c.Mover(); mover != nil {
			ResolvePenetration(mover.Volume(), fixed.Bounds())
		}
	}
	return count
}

// transitionUnder returns the first transition tile under e in row-major order
func (w *World) transitionUnder(e *Entity) (level.Link, bool) {
	x0, y0, x1, y1 := w.segment.Covering(e.Bounds())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if link, ok := w.segment.TileTransition(x, y); ok {
				return link, true
			}
		}
	}
	return level.Link{}, false
}

// resolveTiles pushes e out of solid tiles, deepest overlap first
func (w *World) resolveTiles(e *Entity) {
	for pass := 0; pass < maxTilePasses; pass++ {
		bounds := e.Bounds()
		var (
			deepest physics.Rect
			area    float64
		)
		x0, y0, x1, y1 := w.segment.Covering(bounds)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !w.segment.Tangible(x, y) {
					continue
				}
				r := w.segment.TileRect(x, y)
				clip := r.Clip(bounds)
				if a := clip.W * clip.H; a > area {
					deepest, area = r, a
				}
			}
		}
		if area == 0 || !ResolvePenetration(e.Volume(), deepest) {
			return
		}
	}
}

// enterSegment swaps to the destination segment, keeping the player entity
func (w *World) enterSegment(link level.Link) error {
	dst, err := w.segments.Load(link.Segment)
	if err != nil {
		return fmt.Errorf("segment transition to %d: %w", link.Segment, err)
	}
	tw, th := dst.TileSize()
	entry := physics.Vec{
		X: float64(link.X)*tw + parameter.EntryNudge,
		Y: float64(link.Y)*th + parameter.EntryNudge,
	}
	if err := w.installSegment(dst, &entry); err != nil {
		return err
	}
	w.emit(event.New(event.KindSegmentChange, event.Params{
		event.ParamSegment: dst.ID(),
		event.ParamEntity:  w.player,
	}))
	return nil
}

func (w *World) loadSegment(id int, entry *physics.Vec) error {
	seg, err := w.segments.Load(id)
	if err != nil {
		return fmt.Errorf("load segment %d: %w", id, err)
	}
	return w.installSegment(seg, entry)
}

// installSegment replaces the tilemap and non-player entities, rebuilding detector and camera bounds
func (w *World) installSegment(seg *level.Segment, entry *physics.Vec) error {
	pw, _ := seg.PixelDims()
	w.segment = seg
	w.detector = NewSpatialHash(w.cellSize, ColumnsFor(pw, w.cellSize))
	w.owners = make(map[*physics.Hitbox]*Entity)
	w.entities = w.entities[:0]

	if w.player != nil {
		w.track(w.player)
	}

	tw, th := seg.TileSize()
	for _, sp := range seg.Entities() {
		if w.player != nil && sp.Kind == w.player.Kind() {
			continue
		}
		if _, err := w.Spawn(sp.Kind, float64(sp.X)*tw, float64(sp.Y)*th); err != nil {
			return fmt.Errorf("segment %d spawn %q at (%d,%d): %w", seg.ID(), sp.Kind, sp.X, sp.Y, err)
		}
	}

	if entry != nil {
		if w.player == nil {
			if _, err := w.Spawn(parameter.PlayerKind, entry.X, entry.Y); err != nil {
				return fmt.Errorf("segment %d player entry: %w", seg.ID(), err)
			}
			if w.player == nil {
				return fmt.Errorf("segment %d: kind %q is not a player", seg.ID(), parameter.PlayerKind)
			}
		}
		w.player.MoveTo(entry.X, entry.Y)
	}

	w.camera.SetBorder(seg.Bounds())
	if w.player != nil {
		w.camera.target = w.player
	}
	w.camera.Snap()
	w.metricSegment.Store(int64(seg.ID()))
	return nil
}

// Spawn creates an entity of kind with bounds top-left at (x, y) and adds it to the world
func (w *World) Spawn(kind string, x, y float64) (*Entity, error) {
	e, err := w.factory.Spawn(w.ids.Next(), kind, x, y)
	if err != nil {
		return nil, err
	}
	e.MoveTo(x, y)
	if e.IsPlayer() && w.player == nil {
		w.player = e
		w.playerLost = false
	}
	w.track(e)
	return e, nil
}

// track adds e to the entity list and registers its slot boxes
func (w *World) track(e *Entity) {
	w.entities = append(w.entities, e)
	static := e.Immobile()
	for _, b := range e.Volume().Boxes() {
		w.owners[b] = e
		w.detector.Add(b, static)
	}
}

// Remove drops e from the entity list and the detector
func (w *World) Remove(e *Entity) {
	for i, other := range w.entities {
		if other == e {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	for _, b := range e.Volume().Boxes() {
		w.detector.Remove(b)
		delete(w.owners, b)
	}
	if e == w.player {
		w.player = nil
		w.playerLost = true
	}
}

func (w *World) emit(ev event.Event) {
	for _, l := range w.listeners {
		l.OnEvent(ev)
	}
}

func (w *World) publish(collisions int) {
	w.metricEntities.Store(int64(len(w.entities)))
	w.metricCollisions.Store(int64(collisions))
	w.metricTicks.Store(w.ticks)
	w.metricClock.Store(w.clock)
	if w.player != nil {
		w.metricState.Store(w.player.StateName())
	} else {
		w.metricState.Store("")
	}
}

// Entities returns a snapshot of live entities in update order
func (w *World) Entities() []*Entity {
	return append([]*Entity(nil), w.entities...)
}

// Owner returns the entity owning a hitbox slot
func (w *World) Owner(h *physics.Hitbox) *Entity {
	return w.owners[h]
}

func (w *World) Player() *Entity         { return w.player }
func (w *World) Segment() *level.Segment { return w.segment }
func (w *World) Camera() *Camera         { return w.camera }
func (w *World) Detector() *SpatialHash  { return w.detector }
func (w *World) Clock() float64          { return w.clock }
func (w *World) Ticks() int64            { return w.ticks }

// GameOver reports that the player died
func (w *World) GameOver() bool {
	return w.playerLost
}
