package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"

	"github.com/lixenwraith/tile-raider/engine"
)

// ErrUnknownKind is returned when spawning a kind the catalog does not hold
var ErrUnknownKind = errors.New("content: unknown entity kind")

//go:embed defaults
var defaultsFS embed.FS

// Catalog maps kind names to blueprints and implements engine.Factory
type Catalog struct {
	blueprints map[string]*Blueprint
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{blueprints: make(map[string]*Blueprint)}
}

// Default returns the embedded built-in catalog
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub)
}

// LoadCatalog reads every *.json descriptor at the root of fsys
// Hitbox files are resolved relative to the descriptor
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	c := NewCatalog()
	for _, name := range names {
		b, err := loadBlueprint(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := c.Add(b); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		log.Printf("Discovered entity descriptor: %s (%s)", name, b.Kind)
	}
	if len(c.blueprints) == 0 {
		log.Printf("No entity descriptors found")
	}
	return c, nil
}

func loadBlueprint(fsys fs.FS, name string) (*Blueprint, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, err
	}

	if d.Hitboxes == "" {
		return NewBlueprint(d, nil)
	}
	f, err := fsys.Open(path.Join(path.Dir(name), d.Hitboxes))
	if err != nil {
		return nil, fmt.Errorf("hitboxes: %w", err)
	}
	defer f.Close()
	tpl, err := ParseHitboxes(f)
	if err != nil {
		return nil, err
	}
	return NewBlueprint(d, tpl)
}

// Add registers a blueprint; kinds are unique
func (c *Catalog) Add(b *Blueprint) error {
	if _, dup := c.blueprints[b.Kind]; dup {
		return fmt.Errorf("duplicate kind %q", b.Kind)
	}
	c.blueprints[b.Kind] = b
	return nil
}

// Blueprint returns the blueprint for kind
func (c *Catalog) Blueprint(kind string) (*Blueprint, bool) {
	b, ok := c.blueprints[kind]
	return b, ok
}

// Kinds returns the registered kind names in order
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.blueprints))
	for k := range c.blueprints {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Spawn implements engine.Factory
func (c *Catalog) Spawn(id engine.EntityID, kind string, x, y float64) (*engine.Entity, error) {
	b, ok := c.blueprints[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return b.Spawn(id, x, y)
}
