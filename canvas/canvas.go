package canvas

import (
	"image"
	"image/color"
	"sync"

	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/surface"
	"github.com/milk9111/tilecanvas/tiles"
)

// Resizable is implemented by canvases whose cell size and surface size
// can change at runtime.
type Resizable interface {
	Geometry() grid.Geometry
	Resize(multiplier float64)
	SetSize(width, height int)
}

// Tileable is implemented by canvases holding layered tiles and a hover
// highlight.
type Tileable interface {
	Tile(layer tiles.Layer, row, col int) (*tiles.Tile, bool)
	UpdateTileByCoord(row, col int, layer tiles.Layer, t *tiles.Tile)
	ClearLayer(layer tiles.Layer)
	PointerMove(x, y float64)
	PointerLeave()
	Render(s surface.Surface)
}

// Selectable is implemented by canvases that turn drag gestures into tile
// selections.
type Selectable interface {
	MultiSelect(from, to grid.Point) Selection
}

var (
	_ Resizable = (*Canvas)(nil)
	_ Tileable  = (*Canvas)(nil)
)

// GridStyle controls the dashed grid mesh drawn over the tiles.
type GridStyle struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// DefaultGridStyle matches a 60% black, [4 2] dashed, 1px mesh.
var DefaultGridStyle = GridStyle{
	Color: color.NRGBA{A: 153},
	Width: 1,
	Dash:  []float64{4, 2},
}

// DefaultHoverColor is a 10% black wash.
var DefaultHoverColor color.Color = color.NRGBA{A: 26}

// HighlightFunc builds the hover overlay for a cell of the given pixel size.
type HighlightFunc func(w, h int) image.Image

// Options configures a Canvas. Zero values select the defaults.
type Options struct {
	CellSize    grid.CellSize
	Width       int
	Height      int
	ClearRender bool
	Grid        GridStyle
	HoverColor  color.Color
	Highlight   HighlightFunc
}

// Canvas is a tile grid with three layers, a hover highlight and a
// coalescing render scheduler.
type Canvas struct {
	*Emitter

	store *tiles.Store
	sched scheduler

	mu          sync.RWMutex
	geom        grid.Geometry
	clearRender bool
	gridStyle   GridStyle
	highlight   HighlightFunc
	hoverTile   *tiles.Tile
	hovering    bool
	hoverCell   grid.Coord
	current     Selection
}

// New creates a canvas. The hover overlay is built for the initial cell
// size and a first paint is requested.
func New(opts Options) *Canvas {
	if !opts.CellSize.Valid() {
		opts.CellSize = grid.DefaultCellSize
	}
	style := opts.Grid
	if style.Color == nil {
		style.Color = DefaultGridStyle.Color
	}
	if style.Width <= 0 {
		style.Width = DefaultGridStyle.Width
	}
	if style.Dash == nil {
		style.Dash = DefaultGridStyle.Dash
	}
	highlight := opts.Highlight
	if highlight == nil {
		hc := opts.HoverColor
		if hc == nil {
			hc = DefaultHoverColor
		}
		highlight = SolidHighlight(hc)
	}

	c := &Canvas{
		Emitter:     &Emitter{},
		store:       tiles.NewStore(),
		geom:        grid.NewGeometry(opts.Width, opts.Height, opts.CellSize),
		clearRender: opts.ClearRender,
		gridStyle:   style,
		highlight:   highlight,
	}
	c.rebuildHoverLocked()
	c.RequestRender()
	return c
}

// SolidHighlight returns a HighlightFunc filling the cell with col.
func SolidHighlight(col color.Color) HighlightFunc {
	return func(w, h int) image.Image {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, col)
			}
		}
		return img
	}
}

// Store exposes the underlying layered store.
func (c *Canvas) Store() *tiles.Store { return c.store }

// Geometry returns the current grid geometry.
func (c *Canvas) Geometry() grid.Geometry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geom
}

// Size returns the surface size the canvas renders at.
func (c *Canvas) Size() (int, int) {
	g := c.Geometry()
	return g.Width, g.Height
}

// SetSize changes the surface size, keeping the cell size.
func (c *Canvas) SetSize(width, height int) {
	c.mu.Lock()
	c.geom = c.geom.Resize(width, height)
	c.mu.Unlock()
	c.RequestRender()
}

// SetCellSize replaces the cell size and rebuilds the hover overlay.
func (c *Canvas) SetCellSize(cell grid.CellSize) {
	c.mu.Lock()
	c.geom = grid.NewGeometry(c.geom.Width, c.geom.Height, cell)
	c.rebuildHoverLocked()
	c.mu.Unlock()
	c.RequestRender()
}

// Resize multiplies both the cell size and the surface size by multiplier,
// rebuilds the hover overlay at the new cell size and schedules a paint.
func (c *Canvas) Resize(multiplier float64) {
	if multiplier <= 0 {
		return
	}
	c.mu.Lock()
	c.geom = c.geom.Scale(multiplier)
	c.rebuildHoverLocked()
	c.mu.Unlock()
	c.RequestRender()
}

// SetClearRender toggles the grid mesh off (true) or on (false).
func (c *Canvas) SetClearRender(clear bool) {
	c.mu.Lock()
	changed := c.clearRender != clear
	c.clearRender = clear
	c.mu.Unlock()
	if changed {
		c.RequestRender()
	}
}

// ClearRender reports whether the grid mesh is suppressed.
func (c *Canvas) ClearRender() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clearRender
}

// Tile returns the tile at (row, col) on layer.
func (c *Canvas) Tile(layer tiles.Layer, row, col int) (*tiles.Tile, bool) {
	return c.store.Get(layer, row, col)
}

// UpdateTileByCoord writes t at (row, col) on layer; nil erases. A paint is
// requested only when the layer actually changed.
func (c *Canvas) UpdateTileByCoord(row, col int, layer tiles.Layer, t *tiles.Tile) {
	if c.store.Set(layer, row, col, t) {
		c.RequestRender()
	}
}

// ClearLayer empties layer, or all layers for tiles.AllLayers.
func (c *Canvas) ClearLayer(layer tiles.Layer) {
	c.store.Clear(layer)
	if layer == tiles.AllLayers || layer == tiles.Foreground {
		c.mu.Lock()
		c.hovering = false
		c.mu.Unlock()
	}
	c.RequestRender()
}

// UpdateCurrentTiles replaces the current brush.
func (c *Canvas) UpdateCurrentTiles(sel Selection) {
	c.mu.Lock()
	c.current = sel
	c.mu.Unlock()
}

// CurrentTiles returns the current brush.
func (c *Canvas) CurrentTiles() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
