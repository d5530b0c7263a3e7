package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-raider/engine"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
)

// Config is the runtime configuration of the terminal game
// Zero-valued fields in a file keep their defaults
type Config struct {
	TickRateHz   int     `yaml:"tick_rate_hz"`
	TimeScale    float64 `yaml:"time_scale"` // simulation units per wall-clock millisecond
	StartSegment int     `yaml:"start_segment"`
	ContentDir   string  `yaml:"content_dir"` // empty uses the embedded catalog
	LevelPath    string  `yaml:"level_path"`  // YAML manifest; wins over SegmentDir
	SegmentDir   string  `yaml:"segment_dir"` // directory of .seg / .seg.zst files
	SavePath     string  `yaml:"save_path"`   // sqlite checkpoint database, empty disables saving
	LogPath      string  `yaml:"log_path"`

	Camera CameraConfig      `yaml:"camera"`
	Audio  AudioConfig       `yaml:"audio"`
	Render RenderConfig      `yaml:"render"`
	Keys   map[string]string `yaml:"keys"` // terminal key name -> logical button, merged over defaults
}

type CameraConfig struct {
	ShiftTime float64 `yaml:"shift_time"`
	Slack     float64 `yaml:"slack"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // linear gain 0..1
}

// RenderConfig maps world pixels onto terminal cells
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickRateHz:   60,
		TimeScale:    parameter.SimulationTimeScale,
		StartSegment: parameter.DefaultStartSegment,
		SavePath:     "tile-raider.db",
		LogPath:      "tile-raider.log",
		Camera: CameraConfig{
			ShiftTime: parameter.CameraShiftTime,
			Slack:     parameter.CameraSlack,
		},
		Audio:  AudioConfig{Enabled: true, Volume: 0.6},
		Render: RenderConfig{CellWidth: 10, CellHeight: 20},
		Keys: map[string]string{
			"Up":    event.ButtonUp,
			"Down":  event.ButtonDown,
			"Left":  event.ButtonLeft,
			"Right": event.ButtonRight,
			"w":     event.ButtonUp,
			"s":     event.ButtonDown,
			"a":     event.ButtonLeft,
			"d":     event.ButtonRight,
			" ":     event.ButtonAction,
		},
	}
}

// Load reads path over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var validButtons = map[string]bool{
	event.ButtonUp:     true,
	event.ButtonDown:   true,
	event.ButtonLeft:   true,
	event.ButtonRight:  true,
	event.ButtonAction: true,
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if c.TickRateHz <= 0 || c.TickRateHz > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate_hz %d outside 1..1000", c.TickRateHz))
	}
	if c.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("time_scale must be positive, got %g", c.TimeScale))
	}
	if c.StartSegment < 0 {
		errs = append(errs, fmt.Errorf("start_segment %d is negative", c.StartSegment))
	}
	if c.Camera.ShiftTime <= 0 || c.Camera.Slack < 0 {
		errs = append(errs, fmt.Errorf("camera shift_time must be positive and slack non-negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %g outside 0..1", c.Audio.Volume))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("render cell size must be positive"))
	}
	for key, button := range c.Keys {
		if !validButtons[button] {
			errs = append(errs, fmt.Errorf("key %q bound to unknown button %q", key, button))
		}
	}
	return errors.Join(errs...)
}

// EngineCamera converts the camera section for engine.NewWorld
func (c Config) EngineCamera() engine.CameraConfig {
	return engine.CameraConfig{
		ShiftTime: c.Camera.ShiftTime,
		Slack:     c.Camera.Slack,
		Offset:    physics.Vec{X: c.Camera.OffsetX, Y: c.Camera.OffsetY},
	}
}
