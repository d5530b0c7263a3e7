package level

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Loader resolves segments by id
type Loader interface {
	Load(id int) (*Segment, error)
}

// ErrUnknownSegment is returned when no segment exists for an id
var ErrUnknownSegment = errors.New("level: unknown segment")

const (
	segmentExt    = ".seg"
	compressedExt = ".seg.zst"
)

// FileLoader reads "<id>.seg.zst" or "<id>.seg" from a directory
type FileLoader struct {
	Dir string
}

// Load reads and decodes one segment, preferring the compressed file
func (l FileLoader) Load(id int) (*Segment, error) {
	base := filepath.Join(l.Dir, strconv.Itoa(id))

	if f, err := os.Open(base + compressedExt); err == nil {
		defer f.Close()
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", id, err)
		}
		defer zr.Close()
		return Decode(zr, id)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("segment %d: %w", id, err)
	}

	f, err := os.Open(base + segmentExt)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %d in %s", ErrUnknownSegment, id, l.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("segment %d: %w", id, err)
	}
	defer f.Close()
	return Decode(f, id)
}

// IDs lists segment ids present in the directory
func (l FileLoader) IDs() ([]int, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var ids []int
	for _, e := range entries {
		name := e.Name()
		var stem string
		switch {
		case strings.HasSuffix(name, compressedExt):
			stem = strings.TrimSuffix(name, compressedExt)
		case strings.HasSuffix(name, segmentExt):
			stem = strings.TrimSuffix(name, segmentExt)
		default:
			continue
		}
		id, err := strconv.Atoi(stem)
		if err != nil {
			log.Printf("Skipping segment file with non-numeric name: %s", name)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// WriteFile encodes s into dir, zstd-compressed when compress is set
func WriteFile(dir string, s *Segment, compress bool) (string, error) {
	ext := segmentExt
	if compress {
		ext = compressedExt
	}
	path := filepath.Join(dir, strconv.Itoa(s.ID())+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *zstd.Encoder
	if compress {
		zw, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return "", err
		}
		w = zw
	}
	if err := Encode(w, s); err != nil {
		return "", err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return "", err
		}
	}
	return path, f.Close()
}
