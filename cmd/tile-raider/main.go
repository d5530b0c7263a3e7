package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-raider/audio"
	"github.com/lixenwraith/tile-raider/config"
	"github.com/lixenwraith/tile-raider/save"
	"github.com/lixenwraith/tile-raider/service"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	levelFlag  = flag.String("level", "", "YAML level manifest (overrides config)")
	resumeFlag = flag.Bool("resume", false, "Resume from the latest checkpoint")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	logFlag    = flag.String("log", "", "Log file (overrides config, \"-\" disables)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *levelFlag != "" {
		cfg.LevelPath = *levelFlag
	}
	switch *logFlag {
	case "":
	case "-":
		cfg.LogPath = ""
	default:
		cfg.LogPath = *logFlag
	}

	logFile, err := setupLogging(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log file: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Content: %v\n", err)
		os.Exit(1)
	}
	lv, err := loadLevel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Level: %v\n", err)
		os.Exit(1)
	}

	// Services
	hub := service.NewHub()
	sound := audio.NewSoundManager(cfg.Audio.Volume)
	hub.Register(sound)
	var recorder *save.Recorder
	if cfg.SavePath != "" {
		recorder = save.NewRecorder(cfg.SavePath)
		hub.Register(recorder)
	}
	if err := hub.InitAll(map[string][]any{"audio": {*muteFlag || !cfg.Audio.Enabled}}); err != nil {
		fmt.Fprintf(os.Stderr, "Services: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Services: %v\n", err)
		os.Exit(1)
	}
	defer hub.StopAll()

	var resume *save.Checkpoint
	if *resumeFlag {
		resume = latestCheckpoint(recorder)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableFocus()

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTILE-RAIDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			log.Printf("crash: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	g, err := newGame(screen, cfg, gameOptions{
		Factory:  catalog,
		Segments: lv,
		Resume:   resume,
		Sound:    sound,
		Recorder: recorder,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "World: %v\n", err)
		os.Exit(1)
	}

	runErr := run(screen, g, time.Second/time.Duration(cfg.TickRateHz))
	screen.Fini()
	if runErr != nil {
		hub.StopAll()
		log.Printf("Game loop: %v", runErr)
		fmt.Fprintf(os.Stderr, "Game loop: %v\n", runErr)
		os.Exit(1)
	}
}

// latestCheckpoint returns the newest checkpoint, or nil when there is none
func latestCheckpoint(recorder *save.Recorder) *save.Checkpoint {
	if recorder == nil || recorder.Store() == nil {
		log.Printf("Resume requested without a checkpoint store")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cp, err := recorder.Store().Latest(ctx)
	if errors.Is(err, save.ErrNoCheckpoint) {
		log.Printf("No checkpoint to resume, starting fresh")
		return nil
	}
	if err != nil {
		log.Printf("Resume failed: %v", err)
		return nil
	}
	log.Printf("Resuming run %s at segment %d", cp.RunID, cp.Segment)
	return &cp
}

// run drives input and frames until quit or a fatal world error
func run(screen tcell.Screen, g *game, interval time.Duration) error {
	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		screen.ChannelEvents(events, quit)
	}()
	defer close(quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if err := g.advance(elapsed); err != nil {
				return err
			}
		}
	}
}
