package level

import (
	"math"
	"sort"

	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
)

// Tile is one grid cell of a segment
type Tile struct {
	ID       uint16
	Tangible bool
}

// Link is a transition destination: target segment and entry tile
type Link struct {
	Segment int
	X, Y    int
}

// Spawn places an entity kind on a tile when the segment loads
type Spawn struct {
	X, Y int
	Kind string
}

// Segment is a rectangular tile map with transitions and spawns
// Tiles are stored column-major: tiles[x][y]
type Segment struct {
	id          int
	width       int
	height      int
	tileW       float64
	tileH       float64
	tiles       [][]Tile
	transitions map[[2]int]Link
	spawns      []Spawn
}

// TangibleID reports the default tangibility of a tile id: even ids are solid
func TangibleID(id uint16) bool {
	return id%2 == 0
}

// NewSegment creates a width x height segment filled with tile id fill
func NewSegment(id, width, height int, fill uint16) *Segment {
	s := &Segment{
		id:          id,
		width:       width,
		height:      height,
		tileW:       parameter.TileWidth,
		tileH:       parameter.TileHeight,
		tiles:       make([][]Tile, width),
		transitions: make(map[[2]int]Link),
	}
	for x := range s.tiles {
		col := make([]Tile, height)
		for y := range col {
			col[y] = Tile{ID: fill, Tangible: TangibleID(fill)}
		}
		s.tiles[x] = col
	}
	return s
}

// SetTileSize overrides the pixel size of one tile
func (s *Segment) SetTileSize(w, h float64) {
	if w > 0 && h > 0 {
		s.tileW, s.tileH = w, h
	}
}

// SetTile assigns a tile id with its default tangibility
func (s *Segment) SetTile(x, y int, id uint16) {
	if s.InBounds(x, y) {
		s.tiles[x][y] = Tile{ID: id, Tangible: TangibleID(id)}
	}
}

// SetTangible overrides tangibility of one tile
func (s *Segment) SetTangible(x, y int, tangible bool) {
	if s.InBounds(x, y) {
		s.tiles[x][y].Tangible = tangible
	}
}

// AddTransition marks (x, y) as a segment-transition tile
func (s *Segment) AddTransition(x, y int, dst Link) {
	s.transitions[[2]int{x, y}] = dst
}

// AddSpawn appends an entity spawn
func (s *Segment) AddSpawn(sp Spawn) {
	s.spawns = append(s.spawns, sp)
}

func (s *Segment) ID() int { return s.id }

// Dims returns the size in tiles
func (s *Segment) Dims() (int, int) {
	return s.width, s.height
}

// PixelDims returns the size in world pixels
func (s *Segment) PixelDims() (float64, float64) {
	return float64(s.width) * s.tileW, float64(s.height) * s.tileH
}

// TileSize returns the pixel size of one tile
func (s *Segment) TileSize() (float64, float64) {
	return s.tileW, s.tileH
}

// Bounds returns the segment rectangle in world pixels
func (s *Segment) Bounds() physics.Rect {
	w, h := s.PixelDims()
	return physics.Rect{W: w, H: h}
}

func (s *Segment) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// Tile returns the tile at (x, y)
func (s *Segment) Tile(x, y int) (Tile, bool) {
	if !s.InBounds(x, y) {
		return Tile{}, false
	}
	return s.tiles[x][y], true
}

// Tangible reports whether (x, y) blocks movement; tiles outside the segment are solid
func (s *Segment) Tangible(x, y int) bool {
	if !s.InBounds(x, y) {
		return true
	}
	return s.tiles[x][y].Tangible
}

// Tiles returns a copy of the column-major grid
func (s *Segment) Tiles() [][]Tile {
	out := make([][]Tile, len(s.tiles))
	for x, col := range s.tiles {
		out[x] = append([]Tile(nil), col...)
	}
	return out
}

// TileTransition returns the destination of a transition tile
func (s *Segment) TileTransition(x, y int) (Link, bool) {
	l, ok := s.transitions[[2]int{x, y}]
	return l, ok
}

// Transitions returns transition tiles sorted by (x, y)
func (s *Segment) Transitions() []TransitionTile {
	out := make([]TransitionTile, 0, len(s.transitions))
	for k, l := range s.transitions {
		out = append(out, TransitionTile{X: k[0], Y: k[1], Dest: l})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// TransitionTile is a transition source with its destination
type TransitionTile struct {
	X, Y int
	Dest Link
}

// Entities returns spawns in declaration order
func (s *Segment) Entities() []Spawn {
	return append([]Spawn(nil), s.spawns...)
}

// TileRect returns the pixel rectangle of tile (x, y)
func (s *Segment) TileRect(x, y int) physics.Rect {
	return physics.Rect{X: float64(x) * s.tileW, Y: float64(y) * s.tileH, W: s.tileW, H: s.tileH}
}

// TileAt returns the tile index containing a pixel, truncating toward zero
func (s *Segment) TileAt(px, py float64) (int, int) {
	return int(px / s.tileW), int(py / s.tileH)
}

// Covering returns the inclusive tile range whose area intersects r
// Indices may fall outside the segment; the range is empty when r has no area
func (s *Segment) Covering(r physics.Rect) (x0, y0, x1, y1 int) {
	if r.Empty() {
		return 0, 0, -1, -1
	}
	x0 = int(math.Floor(r.X / s.tileW))
	y0 = int(math.Floor(r.Y / s.tileH))
	x1 = int(math.Ceil(r.Right()/s.tileW)) - 1
	y1 = int(math.Ceil(r.Bottom()/s.tileH)) - 1
	return x0, y0, x1, y1
}
