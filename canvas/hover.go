package canvas

import (
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/tiles"
)

// PointerMove moves the hover highlight to the cell under (x, y). Moving
// within the hovered cell does nothing while the highlight is still shown
// there. Every other move clears the previous highlight cell, marks the new
// one and schedules one paint.
func (c *Canvas) PointerMove(x, y float64) {
	c.mu.Lock()
	cell := c.geom.ToGrid(x, y)
	hover := c.hoverTile
	if c.hovering && c.hoverCell == cell {
		if t, ok := c.store.Get(tiles.Foreground, cell.Row, cell.Col); ok && t == hover {
			c.mu.Unlock()
			return
		}
	}
	if c.hovering {
		c.store.DeleteIf(tiles.Foreground, c.hoverCell.Row, c.hoverCell.Col, hover)
	}
	c.store.Set(tiles.Foreground, cell.Row, cell.Col, hover)
	c.hovering = true
	c.hoverCell = cell
	c.mu.Unlock()
	c.RequestRender()
}

// PointerLeave removes the hover highlight from every foreground cell
// showing it, wherever it ended up, and schedules one paint.
func (c *Canvas) PointerLeave() {
	c.mu.Lock()
	c.store.Replace(tiles.Foreground, c.hoverTile, nil)
	c.hovering = false
	c.mu.Unlock()
	c.RequestRender()
}

// Hover returns the hovered cell, if any.
func (c *Canvas) Hover() (grid.Coord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hoverCell, c.hovering
}

// HoverTile returns the current hover overlay.
func (c *Canvas) HoverTile() *tiles.Tile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hoverTile
}

// rebuildHoverLocked regenerates the overlay at the current cell size and
// swaps it into any foreground cell still showing the old one.
func (c *Canvas) rebuildHoverLocked() {
	w, h := c.geom.Cell.Pixels()
	old := c.hoverTile
	c.hoverTile = tiles.New(c.highlight(w, h))
	if old != nil {
		c.store.Replace(tiles.Foreground, old, c.hoverTile)
	}
}
