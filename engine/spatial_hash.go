package engine

import (
	"math"
	"sort"

	"github.com/lixenwraith/tile-raider/physics"
)

// Collider is an object the spatial hash can bucket
// Identity is the interface value: use pointer types
type Collider interface {
	Bounds() physics.Rect
}

// Pair is an unordered colliding pair, A inserted before B
type Pair struct {
	A, B Collider
}

type tracked struct {
	seq    uint64
	static bool
	cells  []int // cells the object was last bucketed into
}

// SpatialHash buckets colliders into a uniform grid of square cells
// Cell index is floor(x/size) + floor(y/size)*columns; an object occupies the
// full block of cells between its top-left and bottom-right hashed cells
// Static objects are bucketed once; Update re-buckets only dynamic ones
type SpatialHash struct {
	cellSize float64
	columns  int
	table    map[int]map[Collider]struct{}
	objects  map[Collider]*tracked
	dynamic  []Collider
	nextSeq  uint64
}

// NewSpatialHash creates a detector; columns is the grid width in cells
func NewSpatialHash(cellSize float64, columns int) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	if columns < 1 {
		columns = 1
	}
	return &SpatialHash{
		cellSize: cellSize,
		columns:  columns,
		table:    make(map[int]map[Collider]struct{}),
		objects:  make(map[Collider]*tracked),
	}
}

// ColumnsFor returns the column count covering a world width
func ColumnsFor(worldWidth, cellSize float64) int {
	if cellSize <= 0 {
		return 1
	}
	return int(math.Ceil(worldWidth/cellSize)) + 1
}

// Add buckets obj; classification is fixed at first add
// Adding a tracked object again re-buckets it with its original classification
func (h *SpatialHash) Add(obj Collider, static bool) {
	if t, ok := h.objects[obj]; ok {
		h.unbucket(obj, t)
		h.bucket(obj, t)
		return
	}
	t := &tracked{seq: h.nextSeq, static: static}
	h.nextSeq++
	h.objects[obj] = t
	if !static {
		h.dynamic = append(h.dynamic, obj)
	}
	h.bucket(obj, t)
}

// Remove unbuckets obj from the cells it was last placed in; untracked objects are ignored
func (h *SpatialHash) Remove(obj Collider) {
	t, ok := h.objects[obj]
	if !ok {
		return
	}
	h.unbucket(obj, t)
	delete(h.objects, obj)
	if !t.static {
		for i, d := range h.dynamic {
			if d == obj {
				h.dynamic = append(h.dynamic[:i], h.dynamic[i+1:]...)
				break
			}
		}
	}
}

// Update re-buckets every dynamic object at its current bounds
func (h *SpatialHash) Update() {
	for _, obj := range h.dynamic {
		t := h.objects[obj]
		h.unbucket(obj, t)
		h.bucket(obj, t)
	}
}

// Collisions returns every pair with positive-area overlap exactly once
// Pairs are ordered by insertion sequence of A then B
func (h *SpatialHash) Collisions() []Pair {
	type keyed struct {
		a, b uint64
		pair Pair
	}
	var found []keyed
	seen := make(map[[2]uint64]struct{})

	for obj, t := range h.objects {
		bounds := obj.Bounds()
		for _, c := range t.cells {
			for other := range h.table[c] {
				if other == obj {
					continue
				}
				ot := h.objects[other]
				if ot.seq < t.seq {
					continue
				}
				key := [2]uint64{t.seq, ot.seq}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if bounds.Intersects(other.Bounds()) {
					found = append(found, keyed{t.seq, ot.seq, Pair{A: obj, B: other}})
				}
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].a != found[j].a {
			return found[i].a < found[j].a
		}
		return found[i].b < found[j].b
	})
	out := make([]Pair, len(found))
	for i, k := range found {
		out[i] = k.pair
	}
	return out
}

// Query returns tracked objects overlapping r, in insertion order
func (h *SpatialHash) Query(r physics.Rect) []Collider {
	seen := make(map[Collider]struct{})
	var out []Collider
	for _, c := range h.cellsFor(r) {
		for obj := range h.table[c] {
			if _, ok := seen[obj]; ok {
				continue
			}
			seen[obj] = struct{}{}
			if r.Intersects(obj.Bounds()) {
				out = append(out, obj)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return h.objects[out[i]].seq < h.objects[out[j]].seq })
	return out
}

// Exists reports whether obj is tracked
func (h *SpatialHash) Exists(obj Collider) bool {
	_, ok := h.objects[obj]
	return ok
}

// IsStatic reports the classification of a tracked object
func (h *SpatialHash) IsStatic(obj Collider) bool {
	t, ok := h.objects[obj]
	return ok && t.static
}

// Size returns the number of tracked objects
func (h *SpatialHash) Size() int {
	return len(h.objects)
}

// Clear drops every object
func (h *SpatialHash) Clear() {
	h.table = make(map[int]map[Collider]struct{})
	h.objects = make(map[Collider]*tracked)
	h.dynamic = nil
	h.nextSeq = 0
}

// CellsOf returns the cells obj currently occupies
func (h *SpatialHash) CellsOf(obj Collider) []int {
	t, ok := h.objects[obj]
	if !ok {
		return nil
	}
	out := make([]int, len(t.cells))
	copy(out, t.cells)
	return out
}

func (h *SpatialHash) bucket(obj Collider, t *tracked) {
	t.cells = h.cellsFor(obj.Bounds())
	for _, c := range t.cells {
		set, ok := h.table[c]
		if !ok {
			set = make(map[Collider]struct{})
			h.table[c] = set
		}
		set[obj] = struct{}{}
	}
}

func (h *SpatialHash) unbucket(obj Collider, t *tracked) {
	for _, c := range t.cells {
		if set, ok := h.table[c]; ok {
			delete(set, obj)
			if len(set) == 0 {
				delete(h.table, c)
			}
		}
	}
	t.cells = t.cells[:0]
}

// cellsFor returns the full block of cells spanned by r
func (h *SpatialHash) cellsFor(r physics.Rect) []int {
	x0 := int(math.Floor(r.X / h.cellSize))
	y0 := int(math.Floor(r.Y / h.cellSize))
	x1 := int(math.Floor(r.Right() / h.cellSize))
	y1 := int(math.Floor(r.Bottom() / h.cellSize))

	cells := make([]int, 0, (x1-x0+1)*(y1-y0+1))
	seen := make(map[int]struct{}, cap(cells))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := x + y*h.columns
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cells = append(cells, c)
		}
	}
	return cells
}
