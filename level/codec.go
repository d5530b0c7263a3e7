package level

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Segment file layout, little-endian uint16 throughout:
//
//	transition count
//	per transition: x, y, destination segment, entry x, entry y
//	width, height
//	width*height tile ids, column-major
//	spawn count                       (optional section)
//	per spawn: x, y, name length, name bytes

var errFieldRange = errors.New("value exceeds uint16")

// Encode writes s in segment file layout
func Encode(w io.Writer, s *Segment) error {
	bw := bufio.NewWriter(w)
	enc := &encoder{w: bw}

	transitions := s.Transitions()
	enc.put(len(transitions))
	for _, t := range transitions {
		enc.put(t.X, t.Y, t.Dest.Segment, t.Dest.X, t.Dest.Y)
	}

	enc.put(s.width, s.height)
	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			enc.put(int(s.tiles[x][y].ID))
		}
	}

	enc.put(len(s.spawns))
	for _, sp := range s.spawns {
		enc.put(sp.X, sp.Y, len(sp.Kind))
		if enc.err == nil {
			_, enc.err = bw.WriteString(sp.Kind)
		}
	}

	if enc.err != nil {
		return fmt.Errorf("encode segment %d: %w", s.id, enc.err)
	}
	return bw.Flush()
}

// Decode reads a segment in file layout; id is taken from the caller (file name)
// Tangibility follows tile id parity
func Decode(r io.Reader, id int) (*Segment, error) {
	dec := &decoder{r: bufio.NewReader(r)}

	type pending struct {
		x, y int
		dst  Link
	}
	count := dec.get()
	links := make([]pending, 0, count)
	for i := 0; i < count && dec.err == nil; i++ {
		links = append(links, pending{
			x: dec.get(), y: dec.get(),
			dst: Link{Segment: dec.get(), X: dec.get(), Y: dec.get()},
		})
	}

	width, height := dec.get(), dec.get()
	if dec.err != nil {
		return nil, fmt.Errorf("decode segment %d header: %w", id, dec.err)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("decode segment %d: empty grid %dx%d", id, width, height)
	}

	s := NewSegment(id, width, height, 0)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			s.SetTile(x, y, uint16(dec.get()))
		}
	}
	if dec.err != nil {
		return nil, fmt.Errorf("decode segment %d tiles: %w", id, dec.err)
	}
	for _, l := range links {
		s.AddTransition(l.x, l.y, l.dst)
	}

	// legacy files end after the tile block
	spawns, err := dec.optional()
	if err != nil {
		return nil, fmt.Errorf("decode segment %d spawns: %w", id, err)
	}
	for i := 0; i < spawns; i++ {
		x, y, n := dec.get(), dec.get(), dec.get()
		name := make([]byte, n)
		if dec.err == nil {
			_, dec.err = io.ReadFull(dec.r, name)
		}
		if dec.err != nil {
			return nil, fmt.Errorf("decode segment %d spawn %d: %w", id, i, dec.err)
		}
		s.AddSpawn(Spawn{X: x, Y: y, Kind: string(name)})
	}

	return s, nil
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) put(vals ...int) {
	var buf [2]byte
	for _, v := range vals {
		if e.err != nil {
			return
		}
		if v < 0 || v > math.MaxUint16 {
			e.err = fmt.Errorf("%w: %d", errFieldRange, v)
			return
		}
		binary.LittleEndian.PutUint16(buf[:], uint16(v))
		_, e.err = e.w.Write(buf[:])
	}
}

type decoder struct {
	r   *bufio.Reader
	err error
}

func (d *decoder) get() int {
	if d.err != nil {
		return 0
	}
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		d.err = err
		return 0
	}
	return int(binary.LittleEndian.Uint16(buf[:]))
}

// optional reads a count that may be absent at a clean EOF
func (d *decoder) optional() (int, error) {
	if _, err := d.r.Peek(1); errors.Is(err, io.EOF) {
		return 0, nil
	}
	v := d.get()
	return v, d.err
}
