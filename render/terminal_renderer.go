package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-raider/engine"
	"github.com/lixenwraith/tile-raider/level"
	"github.com/lixenwraith/tile-raider/physics"
	"github.com/lixenwraith/tile-raider/status"
)

const (
	statusBarHeight = 1
	healthBarWidth  = 10
)

// TerminalRenderer draws the camera's view of a world onto a tcell screen
// Each terminal cell covers cellW x cellH world pixels; the bottom row is the status bar
type TerminalRenderer struct {
	screen  tcell.Screen
	glyphs  *GlyphTable
	metrics *status.Registry
	cellW   float64
	cellH   float64
	width   int
	height  int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, glyphs *GlyphTable, metrics *status.Registry, cellW, cellH float64) *TerminalRenderer {
	if glyphs == nil {
		glyphs = DefaultGlyphs()
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:  screen,
		glyphs:  glyphs,
		metrics: metrics,
		cellW:   cellW,
		cellH:   cellH,
		width:   w,
		height:  h,
	}
}

// Resize updates the terminal dimensions
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// ViewSize returns the visible world extent in pixels for camera clamping
func (r *TerminalRenderer) ViewSize() (float64, float64) {
	rows := r.height - statusBarHeight
	if rows < 0 {
		rows = 0
	}
	return float64(r.width) * r.cellW, float64(rows) * r.cellH
}

// RenderFrame draws the whole frame and shows it
func (r *TerminalRenderer) RenderFrame(w *engine.World) {
	r.screen.Clear()
	viewport := w.Camera().Viewport()

	r.drawTiles(w.Segment(), viewport)
	r.drawEntities(w.Entities(), viewport)
	r.drawStatusBar(w)

	r.screen.Show()
}

// cellOf maps a world point to a terminal cell
func (r *TerminalRenderer) cellOf(viewport physics.Rect, x, y float64) (int, int) {
	return int(math.Floor((x - viewport.X) / r.cellW)), int(math.Floor((y - viewport.Y) / r.cellH))
}

func (r *TerminalRenderer) drawTiles(seg *level.Segment, viewport physics.Rect) {
	rows := r.height - statusBarHeight
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < r.width; cx++ {
			// sample the world at the cell center
			px := viewport.X + (float64(cx)+0.5)*r.cellW
			py := viewport.Y + (float64(cy)+0.5)*r.cellH
			if px < 0 || py < 0 {
				continue
			}
			tx, ty := seg.TileAt(px, py)
			glyph, ok := tileGlyph(seg, tx, ty)
			if !ok {
				continue
			}
			r.screen.SetContent(cx, cy, glyph.Rune, nil, tcell.StyleDefault.Foreground(glyph.Fg).Background(RgbBackground))
		}
	}
}

func tileGlyph(seg *level.Segment, x, y int) (Glyph, bool) {
	tile, ok := seg.Tile(x, y)
	if !ok {
		return Glyph{}, false
	}
	if _, gate := seg.TileTransition(x, y); gate {
		return Glyph{'▒', RgbGate}, true
	}
	switch {
	case tile.Tangible:
		return Glyph{'█', RgbWall}, true
	case tile.ID == level.TileDecoration:
		return Glyph{'~', RgbDecoration}, true
	}
	return Glyph{'·', RgbFloor}, true
}

func (r *TerminalRenderer) drawEntities(entities []*engine.Entity, viewport physics.Rect) {
	rows := r.height - statusBarHeight
	// player last so it stays visible when overlapping
	var player *engine.Entity
	for _, e := range entities {
		if e.IsPlayer() {
			player = e
			continue
		}
		r.drawEntity(e, viewport, rows)
	}
	if player != nil {
		r.drawEntity(player, viewport, rows)
	}
}

func (r *TerminalRenderer) drawEntity(e *engine.Entity, viewport physics.Rect, rows int) {
	b := e.Bounds()
	if b.Empty() || !b.Intersects(viewport) {
		return
	}
	glyph := r.glyphs.Lookup(e.RenderKey())
	style := tcell.StyleDefault.Foreground(glyph.Fg).Background(RgbBackground)

	x0, y0 := r.cellOf(viewport, b.X, b.Y)
	x1, y1 := r.cellOf(viewport, b.Right()-1e-9, b.Bottom()-1e-9)
	for cy := max(y0, 0); cy <= min(y1, rows-1); cy++ {
		for cx := max(x0, 0); cx <= min(x1, r.width-1); cx++ {
			r.screen.SetContent(cx, cy, glyph.Rune, nil, style)
		}
	}
}

// drawStatusBar renders health, segment and world counters on the bottom row
func (r *TerminalRenderer) drawStatusBar(w *engine.World) {
	y := r.height - statusBarHeight
	if y < 0 {
		return
	}
	base := tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbBackground)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	if p := w.Player(); p != nil {
		x = r.drawText(x, y, "HP ", base)
		progress := 0.0
		if p.MaxHealth() > 0 {
			progress = float64(p.Health()) / float64(p.MaxHealth())
		}
		filled := int(math.Ceil(progress * healthBarWidth))
		barStyle := tcell.StyleDefault.Foreground(GetHealthColor(progress)).Background(RgbBackground)
		for i := 0; i < healthBarWidth; i++ {
			ch := '░'
			if i < filled {
				ch = '█'
			}
			r.screen.SetContent(x, y, ch, nil, barStyle)
			x++
		}
		x = r.drawText(x, y, fmt.Sprintf(" %d/%d ", p.Health(), p.MaxHealth()), base)
	} else if w.GameOver() {
		x = r.drawText(x, y, " GAME OVER ", tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbGameOverBg))
	}

	segStyle := tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbSegmentBg)
	x = r.drawText(x, y, fmt.Sprintf(" SEG %d ", r.metrics.Ints.Get("world.segment").Load()), segStyle)

	stats := []string{
		r.metrics.Labels.Get("player.state").Load(),
		fmt.Sprintf("E:%d", r.metrics.Ints.Get("world.entities").Load()),
		fmt.Sprintf("C:%d", r.metrics.Ints.Get("world.collisions").Load()),
		fmt.Sprintf("T:%d", r.metrics.Ints.Get("world.ticks").Load()),
	}
	r.drawText(x, y, " "+strings.Join(stats, " "), base)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
