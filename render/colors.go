package render

import (
	"github.com/gdamore/tcell/v2"
)

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(120, 124, 153) // Slate
	RgbFloor      = tcell.NewRGBColor(52, 54, 74)    // Faint dots
	RgbDecoration = tcell.NewRGBColor(60, 110, 90)   // Moss
	RgbGate       = tcell.NewRGBColor(0, 200, 200)   // Vibrant cyan for transition tiles

	RgbPlayer      = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbPlayerHit   = tcell.NewRGBColor(255, 0, 0)     // Red flash
	RgbPlayerLunge = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbMonster     = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbHound       = tcell.NewRGBColor(200, 120, 40)  // Rust
	RgbSpike       = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbUnknown     = tcell.NewRGBColor(255, 0, 255)   // Magenta marks missing glyphs

	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text on colored blocks
	RgbSegmentBg  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbGameOverBg = tcell.NewRGBColor(200, 50, 50)   // Red
)

// GetHealthColor returns the health bar color, red at empty through yellow to green at full
func GetHealthColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.5 {
		t := progress / 0.5
		return tcell.NewRGBColor(255, int32(200*t), 0)
	}
	t := (progress - 0.5) / 0.5
	return tcell.NewRGBColor(int32(255*(1-t)), 200, int32(60*t))
}
