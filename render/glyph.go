package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-raider/engine"
)

// Glyph is the terminal presentation of an entity or tile
type Glyph struct {
	Rune rune
	Fg   tcell.Color
}

// GlyphTable selects glyphs by render key, falling back to the kind default
type GlyphTable struct {
	states map[engine.RenderKey]Glyph
	kinds  map[string]Glyph
}

// DefaultGlyphs covers the built-in catalog
func DefaultGlyphs() *GlyphTable {
	g := NewGlyphTable()
	g.SetKind("player", Glyph{'@', RgbPlayer})
	g.SetState("player", "hit_1", Glyph{'@', RgbPlayerHit})
	g.SetState("player", "shift_lunge", Glyph{'»', RgbPlayerLunge})
	g.SetKind("monster", Glyph{'M', RgbMonster})
	g.SetState("monster", "hit_1", Glyph{'m', RgbPlayerHit})
	g.SetKind("hound", Glyph{'h', RgbHound})
	g.SetState("hound", "follow_chase", Glyph{'H', RgbHound})
	g.SetKind("spike", Glyph{'^', RgbSpike})
	return g
}

func NewGlyphTable() *GlyphTable {
	return &GlyphTable{
		states: make(map[engine.RenderKey]Glyph),
		kinds:  make(map[string]Glyph),
	}
}

func (g *GlyphTable) SetKind(kind string, glyph Glyph) {
	g.kinds[kind] = glyph
}

func (g *GlyphTable) SetState(kind, state string, glyph Glyph) {
	g.states[engine.RenderKey{Kind: kind, State: state}] = glyph
}

// Lookup resolves key, returning '?' in RgbUnknown when nothing matches
func (g *GlyphTable) Lookup(key engine.RenderKey) Glyph {
	if glyph, ok := g.states[key]; ok {
		return glyph
	}
	if glyph, ok := g.kinds[key.Kind]; ok {
		return glyph
	}
	return Glyph{'?', RgbUnknown}
}
