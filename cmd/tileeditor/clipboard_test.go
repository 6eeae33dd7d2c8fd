package main

import (
	"image"
	"testing"

	"github.com/milk9111/tilecanvas/canvas"
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/tiles"
)

func TestSelectionText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	sel := canvas.Selection{
		Rows: 2,
		Cols: 2,
		Tiles: map[grid.Coord]*tiles.Tile{
			{Row: 1, Col: 0}: tiles.NewFromSource(img, "sheet.png", grid.Coord{Row: 4, Col: 2}, nil),
			{Row: 0, Col: 1}: tiles.NewFromSource(img, "sheet.png", grid.Coord{Row: 3, Col: 3}, map[string]string{"solid": "true", "a": "b"}),
		},
	}

	want := "# 2x2\n" +
		"0|1\tsheet.png\t3|3\ta=b\tsolid=true\n" +
		"1|0\tsheet.png\t4|2\n"
	if got := selectionText(sel); got != want {
		t.Fatalf("selectionText =\n%q\nwant\n%q", got, want)
	}

	if got := selectionText(canvas.Selection{}); got != "# 0x0\n" {
		t.Fatalf("empty selection: %q", got)
	}
}
