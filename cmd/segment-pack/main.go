// Command segment-pack compiles a YAML level manifest into binary segment files
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/tile-raider/level"
)

func main() {
	manifest := flag.String("manifest", "", "YAML level manifest")
	out := flag.String("out", "segments", "Output directory")
	plain := flag.Bool("plain", false, "Write uncompressed .seg files")
	flag.Parse()

	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "usage: segment-pack -manifest level.yaml [-out dir] [-plain]")
		os.Exit(2)
	}

	paths, err := pack(*manifest, *out, !*plain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "segment-pack: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

// pack validates the manifest as a level and writes every reachable segment
func pack(manifestPath, outDir string, compress bool) ([]string, error) {
	m, err := level.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	lv, err := level.LoadLevel(m, m.Start)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, id := range lv.IDs() {
		seg, err := lv.Load(id)
		if err != nil {
			return nil, err
		}
		path, err := level.WriteFile(outDir, seg, compress)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", id, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
