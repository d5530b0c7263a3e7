package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-raider/audio"
	"github.com/lixenwraith/tile-raider/config"
	"github.com/lixenwraith/tile-raider/engine"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/input"
	"github.com/lixenwraith/tile-raider/level"
	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
	"github.com/lixenwraith/tile-raider/render"
	"github.com/lixenwraith/tile-raider/save"
	"github.com/lixenwraith/tile-raider/status"
)

// gameOptions carries the collaborators a game is assembled from
type gameOptions struct {
	Factory  engine.Factory
	Segments level.Loader
	Resume   *save.Checkpoint
	Sound    *audio.SoundManager // optional
	Recorder *save.Recorder      // optional
}

// game drives one world on one screen
type game struct {
	screen   tcell.Screen
	world    *engine.World
	renderer *render.TerminalRenderer
	mapper   *input.Mapper
	sound    *audio.SoundManager
	metrics  *status.Registry

	timeScale float64
	lastPulse float64
	pulseDue  bool
}

func newGame(screen tcell.Screen, cfg config.Config, opts gameOptions) (*game, error) {
	keys, err := input.NewKeyTable(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	metrics := status.NewRegistry()
	renderer := render.NewTerminalRenderer(screen, render.DefaultGlyphs(), metrics, cfg.Render.CellWidth, cfg.Render.CellHeight)
	vw, vh := renderer.ViewSize()

	wcfg := engine.Config{
		Factory:  opts.Factory,
		Segments: opts.Segments,
		Start:    cfg.StartSegment,
		Camera:   cfg.EngineCamera(),
		View:     physics.Vec{X: vw, Y: vh},
		Metrics:  metrics,
	}
	if cp := opts.Resume; cp != nil {
		wcfg.Start = cp.Segment
		wcfg.Entry = &physics.Vec{X: cp.X, Y: cp.Y}
	}
	world, err := engine.NewWorld(wcfg)
	if err != nil {
		return nil, err
	}
	if cp := opts.Resume; cp != nil && world.Player() != nil && cp.Health > 0 {
		world.Player().Physical().Health = cp.Health
	}

	g := &game{
		screen:    screen,
		world:     world,
		renderer:  renderer,
		mapper:    input.NewMapper(keys),
		sound:     opts.Sound,
		metrics:   metrics,
		timeScale: cfg.TimeScale,
		pulseDue:  true,
	}
	if opts.Sound != nil {
		world.AddListener(opts.Sound)
	}
	if opts.Recorder != nil {
		opts.Recorder.Track(world)
		world.AddListener(opts.Recorder)
	}
	world.AddListener(engine.ListenerFunc(func(ev event.Event) {
		if ev.Kind() == event.KindSegmentChange {
			g.pulseDue = true
			g.deliver(g.mapper.ReleaseAll())
		}
	}))
	return g, nil
}

// handle processes one terminal event, returning false on quit
func (g *game) handle(ev tcell.Event) bool {
	intent, keys := g.mapper.Process(ev)
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentToggleMute:
		g.toggleMute()
	case input.IntentResize:
		g.screen.Sync()
		g.renderer.Resize(g.screen.Size())
		g.world.Camera().SetView(g.renderer.ViewSize())
	}
	g.deliver(keys)
	return true
}

func (g *game) toggleMute() {
	if g.sound == nil {
		return
	}
	if !g.sound.ToggleMute() && !g.sound.Initialized() {
		// started muted: open the device on first unmute
		g.sound.Start()
	}
}

// deliver routes key events to the player only
func (g *game) deliver(evs []event.Event) {
	p := g.world.Player()
	if p == nil {
		return
	}
	for _, ev := range evs {
		g.world.NotifyOf(ev, p)
	}
}

// simDelta converts elapsed wall time into a capped simulation step
func (g *game) simDelta(elapsed time.Duration) float64 {
	dt := float64(elapsed) / float64(time.Millisecond) * g.timeScale
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}

// advance runs one frame: synthetic key releases, follower pulse, world step, render
func (g *game) advance(elapsed time.Duration) error {
	g.deliver(g.mapper.Expire())
	g.pulse()
	if err := g.world.Update(g.simDelta(elapsed)); err != nil {
		return err
	}
	g.renderer.RenderFrame(g.world)
	return nil
}

// pulse broadcasts the player as follow target at start, on segment change and periodically
func (g *game) pulse() {
	p := g.world.Player()
	if p == nil {
		return
	}
	now := g.world.Clock()
	if !g.pulseDue && now-g.lastPulse < parameter.TargetPulseInterval {
		return
	}
	g.pulseDue = false
	g.lastPulse = now
	g.world.NotifyOf(event.New(event.KindNotify, event.Params{event.ParamTarget: p}))
}
