package tileset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/milk9111/tilecanvas/grid"
)

// Metadata is the optional JSON document shipped next to a tileset image.
type Metadata struct {
	Name       string                       `json:"name"`
	TileWidth  float64                      `json:"tile_width"`
	TileHeight float64                      `json:"tile_height"`
	Tiles      map[string]map[string]string `json:"tiles,omitempty"`

	props map[grid.Coord]map[string]string
}

// CellSize returns the tile size declared by the metadata, if any.
func (m *Metadata) CellSize() (grid.CellSize, bool) {
	if m == nil {
		return grid.CellSize{}, false
	}
	cs := grid.CellSize{W: m.TileWidth, H: m.TileHeight}
	return cs, cs.Valid()
}

// Properties returns the properties declared for a source cell.
func (m *Metadata) Properties(cell grid.Coord) map[string]string {
	if m == nil {
		return nil
	}
	return m.props[cell]
}

// ParseMetadata decodes a metadata document and validates its cell keys.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	m.props = make(map[grid.Coord]map[string]string, len(m.Tiles))
	for key, props := range m.Tiles {
		cell, err := grid.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("metadata tiles: %w", err)
		}
		m.props[cell] = props
	}
	return &m, nil
}

// MetadataLoader fetches tileset metadata.
type MetadataLoader interface {
	LoadMetadata(ctx context.Context, url string) (*Metadata, error)
}

// LoadMetadata reads and parses url.
func (l FSLoader) LoadMetadata(ctx context.Context, url string) (*Metadata, error) {
	b, err := l.ReadFile(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(b)
}
