package canvas

import (
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/surface"
	"github.com/milk9111/tilecanvas/tiles"
)

// Render paints the canvas into s in one pass: clear, the three layers in
// paint order, the EventRender hook, then the grid mesh unless clear
// rendering is on. Errors raised by the surface are not recovered.
func (c *Canvas) Render(s surface.Surface) {
	c.mu.RLock()
	geom := c.geom
	clearRender := c.clearRender
	style := c.gridStyle
	c.mu.RUnlock()

	s.Clear()
	for _, layer := range tiles.PaintOrder {
		c.store.Each(layer, func(cell grid.Coord, t *tiles.Tile) {
			x, y, w, h := geom.CellRect(cell)
			s.DrawImage(t, x, y, w, h)
		})
	}

	c.Emit(Event{Type: EventRender, Data: RenderEvent{Surface: s, Geometry: geom}})

	if !clearRender {
		s.StrokePath(GridPath(geom), surface.StrokeStyle{
			Color: style.Color,
			Width: style.Width,
			Dash:  style.Dash,
		})
	}
}

// GridPath builds the mesh for geom as a single path: one vertical line per
// column boundary and one horizontal line per row boundary, both ends
// included.
func GridPath(geom grid.Geometry) *surface.Path {
	p := &surface.Path{}
	w := float64(geom.Width)
	h := float64(geom.Height)
	for i := 0; i <= geom.Cols; i++ {
		x := float64(i) * geom.Cell.W
		p.MoveTo(x, 0)
		p.LineTo(x, h)
	}
	for i := 0; i <= geom.Rows; i++ {
		y := float64(i) * geom.Cell.H
		p.MoveTo(0, y)
		p.LineTo(w, y)
	}
	return p
}
