package canvas

import (
	"sort"

	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/surface"
	"github.com/milk9111/tilecanvas/tiles"
)

// Selection is a block of tiles re-indexed so its first cell is (0,0).
// Cells that were empty are simply absent from Tiles.
type Selection struct {
	Rows  int
	Cols  int
	Tiles map[grid.Coord]*tiles.Tile
}

// Get returns the tile at the relative cell (row, col).
func (s Selection) Get(row, col int) (*tiles.Tile, bool) {
	t, ok := s.Tiles[grid.Coord{Row: row, Col: col}]
	return t, ok
}

// Len returns the number of tiles present.
func (s Selection) Len() int { return len(s.Tiles) }

// Empty reports whether the selection spans no cells.
func (s Selection) Empty() bool { return s.Rows == 0 || s.Cols == 0 }

// Cells returns the relative cells of the present tiles in row-major order.
func (s Selection) Cells() []grid.Coord {
	cells := make([]grid.Coord, 0, len(s.Tiles))
	for c := range s.Tiles {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// Keys returns the "row|col" keys of the present tiles in row-major order.
func (s Selection) Keys() []string {
	cells := s.Cells()
	keys := make([]string, len(cells))
	for i, c := range cells {
		keys[i] = c.String()
	}
	return keys
}

// Extent returns the rows and columns covered by the selection. When Rows
// or Cols were not recorded it is derived from the highest present key.
func (s Selection) Extent() (rows, cols int) {
	rows, cols = s.Rows, s.Cols
	if rows > 0 && cols > 0 {
		return rows, cols
	}
	for c := range s.Tiles {
		rows = max(rows, c.Row+1)
		cols = max(cols, c.Col+1)
	}
	return rows, cols
}

// ExtractSelection copies the base-layer tiles under the drag from..to.
// Both points go through geom.ToGrid; the row and column ranges run from
// the from cell to the to cell inclusive, in that order. A drag that ends
// before it starts on an axis selects nothing on that axis. The store is
// only read.
func ExtractSelection(store *tiles.Store, geom grid.Geometry, from, to grid.Point) Selection {
	start := geom.PointToGrid(from)
	end := geom.PointToGrid(to)

	sel := Selection{
		Rows:  max(end.Row-start.Row+1, 0),
		Cols:  max(end.Col-start.Col+1, 0),
		Tiles: make(map[grid.Coord]*tiles.Tile),
	}
	if sel.Empty() {
		return sel
	}
	for row, r := start.Row, 0; row <= end.Row; row, r = row+1, r+1 {
		for col, c := start.Col, 0; col <= end.Col; col, c = col+1, c+1 {
			if t, ok := store.Get(tiles.Base, row, col); ok {
				sel.Tiles[grid.Coord{Row: r, Col: c}] = t
			}
		}
	}
	return sel
}

// Stamp writes sel onto layer with its (0,0) cell at (row, col) and
// returns the number of cells that changed. Cells absent from sel are left
// alone.
func (c *Canvas) Stamp(layer tiles.Layer, row, col int, sel Selection) int {
	changed := 0
	anchor := grid.Coord{Row: row, Col: col}
	for rel, t := range sel.Tiles {
		at := anchor.Add(rel)
		if c.store.Set(layer, at.Row, at.Col, t) {
			changed++
		}
	}
	if changed > 0 {
		c.RequestRender()
	}
	return changed
}

// DrawSelection draws sel scaled into the box (x, y, w, h). With contain
// set, cells stay square by dividing the box by the longer side of the
// selection.
func DrawSelection(s surface.Surface, sel Selection, x, y, w, h float64, contain bool) {
	rows, cols := sel.Extent()
	if rows == 0 || cols == 0 {
		return
	}
	across, down := float64(cols), float64(rows)
	if contain {
		longest := float64(max(rows, cols))
		across, down = longest, longest
	}
	tw := w / across
	th := h / down
	for c, t := range sel.Tiles {
		s.DrawImage(t, x+float64(c.Col)*tw, y+float64(c.Row)*th, tw, th)
	}
}
