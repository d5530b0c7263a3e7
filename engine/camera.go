package engine

import (
	"github.com/lixenwraith/tile-raider/engine/fsm"
	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
)

// CameraConfig tunes camera follow behavior
type CameraConfig struct {
	ShiftTime float64     // target swap interpolation in milliseconds
	Slack     float64     // dead-zone radius in pixels
	Offset    physics.Vec // added to the focal point on every read
}

// DefaultCameraConfig returns parameter defaults
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{ShiftTime: parameter.CameraShiftTime, Slack: parameter.CameraSlack}
}

// Camera tracks a target's center inside a border rectangle
// Position is the view center in world pixels
type Camera struct {
	cfg    CameraConfig
	target fsm.Locatable
	focal  physics.Vec
	border physics.Rect
	view   physics.Vec

	shifting   bool
	shiftStart float64
	prevFocal  physics.Vec
}

// NewCamera creates a camera snapped onto target
// A zero view disables half-view clamping; a zero border disables clamping
func NewCamera(target fsm.Locatable, border physics.Rect, view physics.Vec, cfg CameraConfig) *Camera {
	if cfg.ShiftTime <= 0 {
		cfg.ShiftTime = parameter.CameraShiftTime
	}
	c := &Camera{cfg: cfg, target: target, border: border, view: view}
	c.Snap()
	return c
}

// SetTarget starts an interpolated swap from the current focal point to target
func (c *Camera) SetTarget(now float64, target fsm.Locatable) {
	c.prevFocal = c.focal
	c.shiftStart = now
	c.shifting = true
	c.target = target
}

// SetBorder replaces the clamp rectangle, used on segment change
func (c *Camera) SetBorder(border physics.Rect) {
	c.border = border
	c.focal = c.clamp(c.focal)
}

// SetView sets the visible extent in world pixels
func (c *Camera) SetView(w, h float64) {
	c.view = physics.Vec{X: w, Y: h}
	c.focal = c.clamp(c.focal)
}

// Snap jumps to the target without interpolation or slack
func (c *Camera) Snap() {
	c.shifting = false
	if c.target != nil {
		c.focal = c.clamp(c.target.Center())
	}
}

// Update advances the focal point to game time now in milliseconds
func (c *Camera) Update(now float64) {
	if c.target == nil {
		return
	}
	goal := c.clamp(c.target.Center())

	if c.shifting {
		delta := (now - c.shiftStart) / c.cfg.ShiftTime
		if delta < 1 {
			if delta < 0 {
				delta = 0
			}
			c.focal = lerpVec(c.prevFocal, goal, delta)
			return
		}
		c.focal = goal
		c.shifting = false
		return
	}

	diff := goal.Sub(c.focal)
	dist := diff.Len()
	if dist <= c.cfg.Slack {
		return
	}
	c.focal = c.clamp(c.focal.Add(diff.Scale((dist - c.cfg.Slack) / dist)))
}

// Position returns the focal point plus offset
func (c *Camera) Position() physics.Vec {
	return c.focal.Add(c.cfg.Offset)
}

// Viewport returns the visible rectangle centered on Position
func (c *Camera) Viewport() physics.Rect {
	p := c.Position()
	return physics.Rect{X: p.X - c.view.X/2, Y: p.Y - c.view.Y/2, W: c.view.X, H: c.view.Y}
}

// Shifting reports an interpolation in progress
func (c *Camera) Shifting() bool {
	return c.shifting
}

// clamp keeps the view inside the border; a border smaller than the view centers on it
func (c *Camera) clamp(p physics.Vec) physics.Vec {
	if c.border.Empty() {
		return p
	}
	p.X = clampAxis(p.X, c.border.X, c.border.Right(), c.view.X)
	p.Y = clampAxis(p.Y, c.border.Y, c.border.Bottom(), c.view.Y)
	return p
}

func clampAxis(v, lo, hi, extent float64) float64 {
	half := extent / 2
	lo, hi = lo+half, hi-half
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerpVec(a, b physics.Vec, t float64) physics.Vec {
	return physics.Vec{X: a.X*(1-t) + b.X*t, Y: a.Y*(1-t) + b.Y*t}
}
