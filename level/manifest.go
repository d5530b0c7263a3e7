package level

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Default legend for ASCII segment rows
const (
	TileFloor      uint16 = 1 // odd: walkable
	TileWall       uint16 = 2 // even: solid
	TileDecoration uint16 = 3
	TileGate       uint16 = 5 // transition marker, walkable
)

// Manifest is a YAML level description with segments drawn as ASCII rows
//
//	'#' wall, '.' floor, '~' decoration, digits are transition tiles keyed in
//	transitions, letters are spawns keyed in spawns (the tile under them is floor)
type Manifest struct {
	Name       string            `yaml:"name"`
	Start      int               `yaml:"start"`
	TileWidth  float64           `yaml:"tile_width"`
	TileHeight float64           `yaml:"tile_height"`
	Spawns     map[string]string `yaml:"spawns"`
	Segments   []SegmentManifest `yaml:"segments"`
}

// SegmentManifest is one segment of a Manifest
type SegmentManifest struct {
	ID          int                 `yaml:"id"`
	Rows        []string            `yaml:"rows"`
	Spawns      map[string]string   `yaml:"spawns"`
	Transitions map[string]LinkSpec `yaml:"transitions"`
}

// LinkSpec is the YAML form of a Link
type LinkSpec struct {
	Segment int `yaml:"segment"`
	X       int `yaml:"x"`
	Y       int `yaml:"y"`
}

// ParseManifest decodes and validates a YAML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Segments) == 0 {
		return nil, fmt.Errorf("manifest %q: no segments", m.Name)
	}
	seen := make(map[int]bool)
	for _, sm := range m.Segments {
		if seen[sm.ID] {
			return nil, fmt.Errorf("manifest %q: duplicate segment %d", m.Name, sm.ID)
		}
		seen[sm.ID] = true
	}
	if m.Start == 0 {
		m.Start = m.Segments[0].ID
	}
	return &m, nil
}

// LoadManifest reads a manifest file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Load builds a segment from its rows, implementing Loader
func (m *Manifest) Load(id int) (*Segment, error) {
	for i := range m.Segments {
		if m.Segments[i].ID == id {
			return m.build(&m.Segments[i])
		}
	}
	return nil, fmt.Errorf("%w: %d in manifest %q", ErrUnknownSegment, id, m.Name)
}

// IDs returns segment ids in ascending order
func (m *Manifest) IDs() []int {
	ids := make([]int, len(m.Segments))
	for i, sm := range m.Segments {
		ids[i] = sm.ID
	}
	sort.Ints(ids)
	return ids
}

func (m *Manifest) build(sm *SegmentManifest) (*Segment, error) {
	height := len(sm.Rows)
	if height == 0 {
		return nil, fmt.Errorf("segment %d: no rows", sm.ID)
	}
	width := len(sm.Rows[0])
	for y, row := range sm.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("segment %d row %d: width %d, want %d", sm.ID, y, len(row), width)
		}
	}

	s := NewSegment(sm.ID, width, height, TileFloor)
	s.SetTileSize(m.TileWidth, m.TileHeight)

	for y, row := range sm.Rows {
		for x := 0; x < width; x++ {
			ch := row[x]
			switch {
			case ch == '#':
				s.SetTile(x, y, TileWall)
			case ch == '.' || ch == ' ':
				s.SetTile(x, y, TileFloor)
			case ch == '~':
				s.SetTile(x, y, TileDecoration)
			case ch >= '0' && ch <= '9':
				link, ok := sm.Transitions[string(ch)]
				if !ok {
					return nil, fmt.Errorf("segment %d (%d,%d): transition %q has no destination", sm.ID, x, y, ch)
				}
				s.SetTile(x, y, TileGate)
				s.AddTransition(x, y, Link{Segment: link.Segment, X: link.X, Y: link.Y})
			default:
				kind, ok := sm.Spawns[string(ch)]
				if !ok {
					kind, ok = m.Spawns[string(ch)]
				}
				if !ok {
					return nil, fmt.Errorf("segment %d (%d,%d): unknown legend %q", sm.ID, x, y, ch)
				}
				s.SetTile(x, y, TileFloor)
				s.AddSpawn(Spawn{X: x, Y: y, Kind: kind})
			}
		}
	}
	return s, nil
}
