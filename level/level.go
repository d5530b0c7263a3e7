package level

import (
	"fmt"
	"log"
	"sort"
)

// Level is the closed set of segments reachable from a root segment
type Level struct {
	root     int
	segments map[int]*Segment
}

// LoadLevel loads the root and every segment reachable through transitions
// A dangling destination or an entry point outside its segment or on a solid
// tile fails the whole load
func LoadLevel(loader Loader, root int) (*Level, error) {
	lv := &Level{root: root, segments: make(map[int]*Segment)}

	queue := []int{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, done := lv.segments[id]; done {
			continue
		}

		seg, err := loader.Load(id)
		if err != nil {
			return nil, fmt.Errorf("load level from %d: %w", root, err)
		}
		lv.segments[id] = seg

		for _, t := range seg.Transitions() {
			if !seg.InBounds(t.X, t.Y) {
				return nil, fmt.Errorf("segment %d: transition tile (%d,%d) outside segment", id, t.X, t.Y)
			}
			if _, done := lv.segments[t.Dest.Segment]; !done {
				queue = append(queue, t.Dest.Segment)
			}
		}
	}

	for _, seg := range lv.segments {
		for _, t := range seg.Transitions() {
			dst := lv.segments[t.Dest.Segment]
			if !dst.InBounds(t.Dest.X, t.Dest.Y) {
				return nil, fmt.Errorf("segment %d (%d,%d): entry (%d,%d) outside segment %d",
					seg.ID(), t.X, t.Y, t.Dest.X, t.Dest.Y, dst.ID())
			}
			if dst.Tangible(t.Dest.X, t.Dest.Y) {
				return nil, fmt.Errorf("segment %d (%d,%d): entry (%d,%d) is solid in segment %d",
					seg.ID(), t.X, t.Y, t.Dest.X, t.Dest.Y, dst.ID())
			}
		}
	}

	log.Printf("Loaded level: %d segments from root %d", len(lv.segments), root)
	return lv, nil
}

// Load implements Loader over the loaded set
func (l *Level) Load(id int) (*Segment, error) {
	s, ok := l.segments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSegment, id)
	}
	return s, nil
}

// Root returns the root segment id
func (l *Level) Root() int {
	return l.root
}

// IDs returns loaded segment ids in ascending order
func (l *Level) IDs() []int {
	ids := make([]int, 0, len(l.segments))
	for id := range l.segments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
