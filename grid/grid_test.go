package grid

import (
	"math"
	"testing"
)

func TestToGridFloorsPixelOffsets(t *testing.T) {
	cases := []struct {
		name string
		cell CellSize
		x, y float64
		want Coord
	}{
		{"origin", CellSize{16, 16}, 0, 0, Coord{0, 0}},
		{"inside_first_cell", CellSize{16, 16}, 15.9, 15.9, Coord{0, 0}},
		{"cell_boundary", CellSize{16, 16}, 16, 32, Coord{2, 1}},
		{"fractional_drag", CellSize{16, 16}, 33.5, 47.25, Coord{2, 2}},
		{"non_square", CellSize{8, 24}, 20, 50, Coord{2, 2}},
		{"scaled_cell", CellSize{24, 24}, 47, 48, Coord{2, 1}},
		{"negative", CellSize{16, 16}, -1, -17, Coord{-2, -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGeometry(256, 256, c.cell)
			got := g.ToGrid(c.x, c.y)
			if got != c.want {
				t.Fatalf("ToGrid(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestToGridMatchesFloorDivision(t *testing.T) {
	for _, cell := range []CellSize{{16, 16}, {8, 12}, {7, 3}, {32, 16}} {
		g := NewGeometry(100, 100, cell)
		for x := 0.0; x < 100; x += 3.5 {
			for y := 0.0; y < 100; y += 4.25 {
				got := g.ToGrid(x, y)
				want := Coord{Row: int(math.Floor(y / cell.H)), Col: int(math.Floor(x / cell.W))}
				if got != want {
					t.Fatalf("cell %v point (%v,%v): got %v want %v", cell, x, y, got, want)
				}
			}
		}
	}
}

func TestNewGeometryCounts(t *testing.T) {
	g := NewGeometry(100, 50, CellSize{16, 16})
	if g.Cols != 6 || g.Rows != 3 {
		t.Fatalf("expected 6x3, got %dx%d", g.Cols, g.Rows)
	}
	if g.Cells() != 18 {
		t.Fatalf("expected 18 cells, got %d", g.Cells())
	}

	fallback := NewGeometry(32, 32, CellSize{})
	if fallback.Cell != DefaultCellSize {
		t.Fatalf("expected default cell size, got %v", fallback.Cell)
	}
}

func TestGeometryScale(t *testing.T) {
	g := NewGeometry(64, 32, CellSize{16, 16})

	up := g.Scale(2)
	if up.Cell != (CellSize{32, 32}) {
		t.Fatalf("expected 32x32 cells, got %v", up.Cell)
	}
	if up.Width != 128 || up.Height != 64 {
		t.Fatalf("expected 128x64 surface, got %dx%d", up.Width, up.Height)
	}
	if up.Cols != 4 || up.Rows != 2 {
		t.Fatalf("expected counts to survive scaling, got %dx%d", up.Cols, up.Rows)
	}
	if g.Cell != (CellSize{16, 16}) {
		t.Fatalf("Scale must not mutate the receiver")
	}

	if same := g.Scale(0); same != g {
		t.Fatalf("non-positive multiplier should be ignored")
	}
}

func TestCellRectAndContains(t *testing.T) {
	g := NewGeometry(64, 64, CellSize{16, 8})
	x, y, w, h := g.CellRect(Coord{Row: 2, Col: 3})
	if x != 48 || y != 16 || w != 16 || h != 8 {
		t.Fatalf("unexpected rect %v %v %v %v", x, y, w, h)
	}
	if !g.Contains(Coord{Row: 7, Col: 3}) {
		t.Fatalf("expected (7,3) inside")
	}
	if g.Contains(Coord{Row: 8, Col: 0}) || g.Contains(Coord{Row: 0, Col: -1}) {
		t.Fatalf("expected out-of-range coords to be outside")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, c := range []Coord{{0, 0}, {1, 1}, {12, 3}, {-1, -1}} {
		key := c.String()
		got, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", key, err)
		}
		if got != c {
			t.Fatalf("ParseKey(%q) = %v, want %v", key, got, c)
		}
	}
	if (Coord{Row: 1, Col: 2}).String() != "1|2" {
		t.Fatalf("key must be row first")
	}
	for _, bad := range []string{"", "1", "a|1", "1|b"} {
		if _, err := ParseKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
