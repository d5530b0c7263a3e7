package save

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/tile-raider/engine"
	"github.com/lixenwraith/tile-raider/event"
)

// saveTimeout bounds one checkpoint write on the game loop
const saveTimeout = 2 * time.Second

// Clock supplies the simulation time stamped on checkpoints
type Clock interface {
	Clock() float64
}

// Recorder writes a checkpoint every time the player enters a segment
// It is an engine.Listener and a service.Service; before Start it drops events
type Recorder struct {
	mu    sync.Mutex
	path  string
	runID string
	store *Store
	clock Clock
	saved int
}

// NewRecorder creates a recorder with a fresh run id
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path, runID: uuid.New().String()}
}

// RunID identifies this session's checkpoints
func (r *Recorder) RunID() string { return r.runID }

// Track sets the simulation clock source
func (r *Recorder) Track(c Clock) {
	r.mu.Lock()
	r.clock = c
	r.mu.Unlock()
}

// Store returns the open store, nil before Start
func (r *Recorder) Store() *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store
}

// Saved returns the number of checkpoints written this session
func (r *Recorder) Saved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// OnEvent implements engine.Listener
func (r *Recorder) OnEvent(ev event.Event) {
	if ev.Kind() != event.KindSegmentChange {
		return
	}
	seg, _ := ev.Param(event.ParamSegment)
	v, _ := ev.Param(event.ParamEntity)
	player, ok := v.(*engine.Entity)
	segment, segOK := seg.(int)
	if !ok || !segOK || player == nil {
		return
	}
	if err := r.Checkpoint(segment, player); err != nil {
		log.Printf("Checkpoint failed: %v", err)
	}
}

// Checkpoint saves player's current state in segment
func (r *Recorder) Checkpoint(segment int, player *engine.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store == nil {
		return nil
	}
	b := player.Bounds()
	c := Checkpoint{
		RunID:   r.runID,
		Segment: segment,
		X:       b.X,
		Y:       b.Y,
		Health:  player.Health(),
	}
	if r.clock != nil {
		c.Clock = r.clock.Clock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.store.SaveCheckpoint(ctx, c); err != nil {
		return err
	}
	r.saved++
	return nil
}

// Name implements service.Service
func (r *Recorder) Name() string { return "save" }

// Dependencies implements service.Service
func (r *Recorder) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: string - database path override
func (r *Recorder) Init(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	path, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("save: path arg must be string, got %T", args[0])
	}
	if path != "" {
		r.path = path
	}
	return nil
}

// Start implements service.Service
func (r *Recorder) Start() error {
	store, err := OpenStore(r.path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	r.mu.Lock()
	r.store = store
	r.mu.Unlock()
	log.Printf("Checkpoints: %s (run %s)", r.path, r.runID)
	return nil
}

// Stop implements service.Service
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}
