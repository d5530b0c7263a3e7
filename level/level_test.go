package level

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lixenwraith/tile-raider/physics"
)

func sampleSegment() *Segment {
	s := NewSegment(4, 5, 3, TileFloor)
	for x := 0; x < 5; x++ {
		s.SetTile(x, 2, TileWall)
	}
	s.SetTile(1, 1, TileDecoration)
	s.SetTile(4, 1, TileGate)
	s.AddTransition(4, 1, Link{Segment: 7, X: 1, Y: 1})
	s.AddTransition(0, 0, Link{Segment: 2, X: 3, Y: 6})
	s.AddSpawn(Spawn{X: 2, Y: 1, Kind: "monster"})
	s.AddSpawn(Spawn{X: 0, Y: 1, Kind: "player"})
	return s
}

func TestSegmentQueries(t *testing.T) {
	s := sampleSegment()

	tests := []struct {
		name     string
		x, y     int
		tangible bool
	}{
		{"floor", 0, 0, false},
		{"wall", 3, 2, true},
		{"decoration", 1, 1, false},
		{"left of grid", -1, 0, true},
		{"below grid", 0, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Tangible(tt.x, tt.y); got != tt.tangible {
				t.Errorf("Tangible(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.tangible)
			}
		})
	}

	if w, h := s.PixelDims(); w != 200 || h != 120 {
		t.Errorf("PixelDims = %gx%g", w, h)
	}
	if x, y := s.TileAt(79, 41); x != 1 || y != 1 {
		t.Errorf("TileAt = (%d,%d), want (1,1)", x, y)
	}
	if got := s.Transitions(); got[0].X != 0 || got[1].X != 4 {
		t.Errorf("Transitions not sorted: %v", got)
	}
	if l, ok := s.TileTransition(4, 1); !ok || l.Segment != 7 {
		t.Errorf("TileTransition = %v, %v", l, ok)
	}
}

func TestSegmentCovering(t *testing.T) {
	s := NewSegment(1, 10, 10, TileFloor)
	tests := []struct {
		name           string
		r              physics.Rect
		x0, y0, x1, y1 int
	}{
		{"inside one tile", physics.Rect{X: 5, Y: 5, W: 10, H: 10}, 0, 0, 0, 0},
		{"touching edge only", physics.Rect{X: 0, Y: 0, W: 40, H: 40}, 0, 0, 0, 0},
		{"straddles", physics.Rect{X: 30, Y: 70, W: 20, H: 20}, 0, 1, 1, 2},
		{"negative", physics.Rect{X: -10, Y: -10, W: 20, H: 20}, -1, -1, 0, 0},
		{"empty", physics.Rect{X: 50, Y: 50}, 0, 0, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := s.Covering(tt.r)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("Covering = (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)",
					x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
		})
	}
}

func assertSameSegment(t *testing.T, got, want *Segment) {
	t.Helper()
	if gw, gh := got.Dims(); gw != want.width || gh != want.height {
		t.Fatalf("dims = %dx%d, want %dx%d", gw, gh, want.width, want.height)
	}
	if !reflect.DeepEqual(got.Tiles(), want.Tiles()) {
		t.Errorf("tiles differ")
	}
	if !reflect.DeepEqual(got.Transitions(), want.Transitions()) {
		t.Errorf("transitions = %v, want %v", got.Transitions(), want.Transitions())
	}
	if !reflect.DeepEqual(got.Entities(), want.Entities()) {
		t.Errorf("spawns = %v, want %v", got.Entities(), want.Entities())
	}
}

func TestCodecRoundTrip(t *testing.T) {
	want := sampleSegment()
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf, want.ID())
	if err != nil {
		t.Fatal(err)
	}
	assertSameSegment(t, got, want)
	t.Logf("✓ segment %d round trip", got.ID())
}

func TestDecodeLegacyWithoutSpawns(t *testing.T) {
	var buf bytes.Buffer
	// one transition, 2x1 grid, no spawn section
	for _, v := range []uint16{1, 0, 0, 3, 1, 1, 2, 1, 1, 2} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	s, err := Decode(&buf, 9)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := s.Dims(); w != 2 || h != 1 {
		t.Fatalf("dims = %dx%d", w, h)
	}
	if s.Tangible(0, 0) || !s.Tangible(1, 0) {
		t.Errorf("tangibility by parity wrong")
	}
	if len(s.Entities()) != 0 {
		t.Errorf("spawns = %v", s.Entities())
	}
	if l, ok := s.TileTransition(0, 0); !ok || l != (Link{Segment: 3, X: 1, Y: 1}) {
		t.Errorf("transition = %v, %v", l, ok)
	}
}

func TestDecodeErrors(t *testing.T) {
	var full bytes.Buffer
	if err := Encode(&full, sampleSegment()); err != nil {
		t.Fatal(err)
	}
	data := full.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated header", data[:3]},
		{"truncated tiles", data[:30]},
		{"truncated spawn name", data[:len(data)-2]},
		{"zero grid", []byte{0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(tt.data), 1); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncodeRejectsOversizedField(t *testing.T) {
	s := NewSegment(1, 1, 1, TileFloor)
	s.AddTransition(0, 0, Link{Segment: 70000})
	if err := Encode(&bytes.Buffer{}, s); !errors.Is(err, errFieldRange) {
		t.Fatalf("err = %v, want errFieldRange", err)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	plain := sampleSegment()
	packed := walled(5, 4, 4)
	packed.AddSpawn(Spawn{X: 1, Y: 1, Kind: "player"})

	if _, err := WriteFile(dir, plain, false); err != nil {
		t.Fatal(err)
	}
	path, err := WriteFile(dir, packed, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, ".seg.zst") {
		t.Errorf("compressed path = %s", path)
	}
	os.WriteFile(filepath.Join(dir, "notes.seg"), []byte("x"), 0o644)

	loader := FileLoader{Dir: dir}
	for _, want := range []*Segment{plain, packed} {
		got, err := loader.Load(want.ID())
		if err != nil {
			t.Fatalf("Load(%d): %v", want.ID(), err)
		}
		assertSameSegment(t, got, want)
	}

	if _, err := loader.Load(99); !errors.Is(err, ErrUnknownSegment) {
		t.Errorf("Load(99) err = %v, want ErrUnknownSegment", err)
	}

	ids, err := loader.IDs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []int{4, 5}) {
		t.Errorf("IDs = %v, want [4 5]", ids)
	}
}

func walled(id, w, h int) *Segment {
	s := NewSegment(id, w, h, TileFloor)
	for x := 0; x < w; x++ {
		s.SetTile(x, 0, TileWall)
		s.SetTile(x, h-1, TileWall)
	}
	for y := 0; y < h; y++ {
		s.SetTile(0, y, TileWall)
		s.SetTile(w-1, y, TileWall)
	}
	return s
}

const demoManifest = `
name: demo
tile_width: 32
tile_height: 32
spawns:
  P: player
segments:
  - id: 1
    rows:
      - "#####"
      - "#P.1#"
      - "#####"
    transitions:
      "1": {segment: 2, x: 1, y: 1}
  - id: 2
    spawns:
      m: monster
    rows:
      - "####"
      - "#.m#"
      - "#~2#"
      - "####"
    transitions:
      "2": {segment: 1, x: 2, y: 1}
`

func TestManifestBuild(t *testing.T) {
	m, err := ParseManifest([]byte(demoManifest))
	if err != nil {
		t.Fatal(err)
	}
	if m.Start != 1 {
		t.Errorf("Start = %d, want first segment", m.Start)
	}

	s, err := m.Load(1)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := s.Dims(); w != 5 || h != 3 {
		t.Errorf("dims = %dx%d", w, h)
	}
	if tw, _ := s.TileSize(); tw != 32 {
		t.Errorf("tile width = %g", tw)
	}
	if got := s.Entities(); len(got) != 1 || got[0] != (Spawn{X: 1, Y: 1, Kind: "player"}) {
		t.Errorf("spawns = %v", got)
	}
	if l, ok := s.TileTransition(3, 1); !ok || l.Segment != 2 {
		t.Errorf("transition = %v, %v", l, ok)
	}

	s2, err := m.Load(2)
	if err != nil {
		t.Fatal(err)
	}
	if tile, _ := s2.Tile(1, 2); tile.ID != TileDecoration || tile.Tangible {
		t.Errorf("decoration tile = %+v", tile)
	}
	if got := s2.Entities(); len(got) != 1 || got[0].Kind != "monster" {
		t.Errorf("segment spawns = %v", got)
	}

	if _, err := m.Load(3); !errors.Is(err, ErrUnknownSegment) {
		t.Errorf("Load(3) err = %v", err)
	}
}

func TestManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		id   int
	}{
		{"ragged rows", "segments: [{id: 1, rows: ['###', '##']}]", 1},
		{"unknown legend", "segments: [{id: 1, rows: ['#?#']}]", 1},
		{"unmapped transition", "segments: [{id: 1, rows: ['#3#']}]", 1},
		{"no rows", "segments: [{id: 1}]", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := m.Load(tt.id); err == nil {
				t.Error("expected build error")
			}
		})
	}

	for _, bad := range []string{"name: x", "segments: [{id: 1}, {id: 1}]", "segments: ["} {
		if _, err := ParseManifest([]byte(bad)); err == nil {
			t.Errorf("ParseManifest(%q) accepted", bad)
		}
	}
}

func TestLoadLevel(t *testing.T) {
	m, err := ParseManifest([]byte(demoManifest))
	if err != nil {
		t.Fatal(err)
	}
	lv, err := LoadLevel(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lv.IDs(), []int{1, 2}) || lv.Root() != 1 {
		t.Errorf("IDs = %v root = %d", lv.IDs(), lv.Root())
	}
	if _, err := lv.Load(2); err != nil {
		t.Error(err)
	}
	t.Logf("✓ level with %d segments", len(lv.IDs()))
}

type mapLoader map[int]*Segment

func (m mapLoader) Load(id int) (*Segment, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return nil, ErrUnknownSegment
}

func TestLoadLevelValidation(t *testing.T) {
	tests := []struct {
		name string
		link Link
		want error
	}{
		{"dangling destination", Link{Segment: 8, X: 1, Y: 1}, ErrUnknownSegment},
		{"entry outside", Link{Segment: 2, X: 9, Y: 1}, nil},
		{"entry on wall", Link{Segment: 2, X: 0, Y: 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := walled(1, 4, 4)
			root.AddTransition(1, 1, tt.link)
			_, err := LoadLevel(mapLoader{1: root, 2: walled(2, 4, 4)}, 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
