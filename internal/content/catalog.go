// Package content loads the prefab catalog: the sizes, collision spans and
// glyphs of every platform and decoration a map can place.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/games/climb/engine"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is a set of maps keyed by map id.
type Catalog struct {
	Maps map[string]MapDef `yaml:"maps"`
}

// MapDef is one tileset and the prefabs cut from it.
type MapDef struct {
	TileSize float64              `yaml:"tile_size"`
	Tileset  string               `yaml:"tileset"`
	Prefabs  map[string]PrefabDef `yaml:"prefabs"`
}

// PrefabDef describes a prefab in tile units.
type PrefabDef struct {
	Tiles    int          `yaml:"tiles"`
	Kind     string       `yaml:"kind"` // "platform" (default) or "decoration"
	Glyph    string       `yaml:"glyph"`
	Color    string       `yaml:"color"`
	Segments []SegmentDef `yaml:"segments"`
}

// SegmentDef is a collidable span along the prefab top.
type SegmentDef struct {
	From  int     `yaml:"from"`
	To    int     `yaml:"to"`
	Depth float64 `yaml:"depth"`
	Solid bool    `yaml:"solid"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// MustDefault is Default for callers that ship the embedded file.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: cannot read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("content: cannot parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects prefabs whose segments fall outside their width.
func (c *Catalog) Validate() error {
	if len(c.Maps) == 0 {
		return fmt.Errorf("content: catalog has no maps")
	}
	for id, m := range c.Maps {
		if m.TileSize <= 0 {
			return fmt.Errorf("content: map %q: tile_size must be positive", id)
		}
		for name, p := range m.Prefabs {
			if p.Tiles <= 0 {
				return fmt.Errorf("content: %s/%s: tiles must be positive", id, name)
			}
			switch p.Kind {
			case "", "platform", "decoration":
			default:
				return fmt.Errorf("content: %s/%s: unknown kind %q", id, name, p.Kind)
			}
			for i, s := range p.Segments {
				if s.From < 0 || s.To > p.Tiles || s.From >= s.To {
					return fmt.Errorf("content: %s/%s: segment %d spans [%d,%d) outside %d tiles", id, name, i, s.From, s.To, p.Tiles)
				}
				if s.Depth < 0 {
					return fmt.Errorf("content: %s/%s: segment %d has negative depth", id, name, i)
				}
			}
		}
	}
	return nil
}

// Check reports tuning that names prefabs the catalog does not have.
func (c *Catalog) Check(cfg config.ClimbConfig) error {
	mapID := cfg.World.MapID
	if _, ok := c.Maps[mapID]; !ok {
		return fmt.Errorf("content: unknown map %q", mapID)
	}
	names := []string{cfg.Generator.RescuePrefab}
	for _, p := range cfg.Generator.Prefabs {
		names = append(names, p.Name)
	}
	for _, d := range cfg.Generator.Decorations {
		names = append(names, d.Name)
	}
	for _, name := range names {
		if _, ok := c.Prefab(mapID, name); !ok {
			return fmt.Errorf("content: map %q has no prefab %q", mapID, name)
		}
	}
	return nil
}

// Prefab looks up a prefab definition.
func (c *Catalog) Prefab(mapID, name string) (PrefabDef, bool) {
	m, ok := c.Maps[mapID]
	if !ok {
		return PrefabDef{}, false
	}
	p, ok := m.Prefabs[name]
	return p, ok
}

// TileSize returns the tile edge of a map, or 0 for unknown maps.
func (c *Catalog) TileSize(mapID string) float64 {
	return c.Maps[mapID].TileSize
}

// Names lists the prefabs of a map in sorted order.
func (c *Catalog) Names(mapID string) []string {
	m := c.Maps[mapID]
	names := make([]string, 0, len(m.Prefabs))
	for name := range m.Prefabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrefabWidth implements engine.Content.
func (c *Catalog) PrefabWidth(mapID, name string, scale float64) float64 {
	p, ok := c.Prefab(mapID, name)
	if !ok {
		return 0
	}
	return float64(p.Tiles) * c.TileSize(mapID) * scale
}

// PrefabTopSolidSegments implements engine.Content. Prefabs without
// segments return nil and the generator falls back to the full bounds.
func (c *Catalog) PrefabTopSolidSegments(mapID, name string, scale float64) []engine.Segment {
	p, ok := c.Prefab(mapID, name)
	if !ok || len(p.Segments) == 0 {
		return nil
	}
	tile := c.TileSize(mapID) * scale
	out := make([]engine.Segment, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = engine.Segment{
			Start: float64(s.From) * tile,
			End:   float64(s.To) * tile,
			Depth: s.Depth * scale,
			Solid: s.Solid,
		}
	}
	return out
}

// Glyph returns the rune and colour name used to draw a prefab.
func (c *Catalog) Glyph(mapID, name string) (rune, string) {
	p, ok := c.Prefab(mapID, name)
	if !ok || p.Glyph == "" {
		return '?', ""
	}
	return []rune(p.Glyph)[0], p.Color
}

var _ engine.Content = (*Catalog)(nil)
