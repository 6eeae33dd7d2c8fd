package tiles

import (
	"image"

	"github.com/milk9111/tilecanvas/grid"
)

// Tile is an immutable decoded tile image. Tiles are compared by pointer;
// the same *Tile may occupy several slots at once.
type Tile struct {
	img        image.Image
	SourceURL  string
	SourceCell grid.Coord
	Properties map[string]string
}

// New wraps a decoded image.
func New(img image.Image) *Tile {
	return &Tile{img: img}
}

// NewFromSource wraps an image cut from the tileset at url, cell.
func NewFromSource(img image.Image, url string, cell grid.Coord, props map[string]string) *Tile {
	return &Tile{img: img, SourceURL: url, SourceCell: cell, Properties: props}
}

// Image returns the decoded pixels.
func (t *Tile) Image() image.Image {
	if t == nil {
		return nil
	}
	return t.img
}

// Size returns the pixel dimensions of the tile.
func (t *Tile) Size() (int, int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Property returns a metadata property attached at slice time.
func (t *Tile) Property(key string) (string, bool) {
	if t == nil || t.Properties == nil {
		return "", false
	}
	v, ok := t.Properties[key]
	return v, ok
}
