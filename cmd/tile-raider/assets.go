package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/tile-raider/config"
	"github.com/lixenwraith/tile-raider/content"
	"github.com/lixenwraith/tile-raider/level"
)

//go:embed levels/demo.yaml
var demoLevel []byte

// loadCatalog reads descriptors from the content dir, or the embedded defaults
func loadCatalog(cfg config.Config) (*content.Catalog, error) {
	if cfg.ContentDir == "" {
		return content.Default()
	}
	log.Printf("Loading content from %s", cfg.ContentDir)
	return content.LoadCatalog(os.DirFS(cfg.ContentDir))
}

// loadLevel resolves the segment source and validates every reachable segment
// Precedence: level manifest, segment directory, embedded demo
func loadLevel(cfg config.Config) (*level.Level, error) {
	var (
		loader level.Loader
		err    error
	)
	switch {
	case cfg.LevelPath != "":
		log.Printf("Loading level manifest %s", cfg.LevelPath)
		loader, err = level.LoadManifest(cfg.LevelPath)
	case cfg.SegmentDir != "":
		log.Printf("Loading segments from %s", cfg.SegmentDir)
		loader = level.FileLoader{Dir: cfg.SegmentDir}
	default:
		loader, err = level.ParseManifest(demoLevel)
	}
	if err != nil {
		return nil, err
	}
	lv, err := level.LoadLevel(loader, cfg.StartSegment)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return lv, nil
}
