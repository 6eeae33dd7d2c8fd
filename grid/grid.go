package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultCellSize is the cell size used when none is configured.
var DefaultCellSize = CellSize{W: 16, H: 16}

// Coord is a cell position on the grid.
type Coord struct {
	Row int
	Col int
}

// String returns the canonical "row|col" key.
func (c Coord) String() string {
	return strconv.Itoa(c.Row) + "|" + strconv.Itoa(c.Col)
}

// Add returns c offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// ParseKey parses a "row|col" key.
func ParseKey(key string) (Coord, error) {
	rs, cs, ok := strings.Cut(key, "|")
	if !ok {
		return Coord{}, fmt.Errorf("grid: malformed key %q", key)
	}
	row, err := strconv.Atoi(rs)
	if err != nil {
		return Coord{}, fmt.Errorf("grid: row in key %q: %w", key, err)
	}
	col, err := strconv.Atoi(cs)
	if err != nil {
		return Coord{}, fmt.Errorf("grid: col in key %q: %w", key, err)
	}
	return Coord{Row: row, Col: col}, nil
}

// Point is a pixel offset on a surface.
type Point struct {
	X float64
	Y float64
}

// CellSize is the pixel size of one cell.
type CellSize struct {
	W float64
	H float64
}

// Valid reports whether both dimensions are positive.
func (s CellSize) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Pixels returns the cell size rounded up to whole pixels, at least 1x1.
func (s CellSize) Pixels() (int, int) {
	w := int(math.Ceil(s.W))
	h := int(math.Ceil(s.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Geometry is the cell size together with the surface size it divides.
// Values are never mutated; build a new one with NewGeometry or Scale.
type Geometry struct {
	Cell   CellSize
	Width  int
	Height int
	Cols   int
	Rows   int
}

// NewGeometry derives the column and row counts for a surface of the given
// size. An invalid cell size falls back to DefaultCellSize.
func NewGeometry(width, height int, cell CellSize) Geometry {
	if !cell.Valid() {
		cell = DefaultCellSize
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Geometry{
		Cell:   cell,
		Width:  width,
		Height: height,
		Cols:   int(float64(width) / cell.W),
		Rows:   int(float64(height) / cell.H),
	}
}

// Scale multiplies the cell size and the surface size by m.
func (g Geometry) Scale(m float64) Geometry {
	if m <= 0 {
		return g
	}
	cell := CellSize{W: g.Cell.W * m, H: g.Cell.H * m}
	return NewGeometry(int(math.Round(float64(g.Width)*m)), int(math.Round(float64(g.Height)*m)), cell)
}

// Resize keeps the cell size and swaps in a new surface size.
func (g Geometry) Resize(width, height int) Geometry {
	return NewGeometry(width, height, g.Cell)
}

// ToGrid maps a pixel offset to the cell containing it. No bounds are
// checked; negative offsets land on negative cells.
func (g Geometry) ToGrid(px, py float64) Coord {
	return Coord{
		Row: int(math.Floor(py / g.Cell.H)),
		Col: int(math.Floor(px / g.Cell.W)),
	}
}

// PointToGrid is ToGrid for a Point.
func (g Geometry) PointToGrid(p Point) Coord {
	return g.ToGrid(p.X, p.Y)
}

// CellRect returns the pixel rectangle covered by c.
func (g Geometry) CellRect(c Coord) (x, y, w, h float64) {
	return float64(c.Col) * g.Cell.W, float64(c.Row) * g.Cell.H, g.Cell.W, g.Cell.H
}

// Contains reports whether c lies inside the grid.
func (g Geometry) Contains(c Coord) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < g.Rows && c.Col < g.Cols
}

// Cells returns the number of cells in the grid.
func (g Geometry) Cells() int {
	return g.Rows * g.Cols
}
