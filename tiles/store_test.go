package tiles

import (
	"image"
	"sync"
	"testing"

	"github.com/milk9111/tilecanvas/grid"
)

func newTestTile() *Tile {
	return New(image.NewRGBA(image.Rect(0, 0, 16, 16)))
}

func TestStoreSetSemantics(t *testing.T) {
	a := newTestTile()
	b := newTestTile()

	cases := []struct {
		name        string
		seed        map[grid.Coord]*Tile
		row, col    int
		tile        *Tile
		wantChanged bool
		wantLen     int
		want        *Tile
	}{
		{"insert_into_empty", nil, 1, 2, a, true, 1, a},
		{"same_tile_is_noop", map[grid.Coord]*Tile{{Row: 1, Col: 2}: a}, 1, 2, a, false, 1, a},
		{"different_tile_overwrites", map[grid.Coord]*Tile{{Row: 1, Col: 2}: a}, 1, 2, b, true, 1, b},
		{"nil_on_absent_is_noop", nil, 3, 3, nil, false, 0, nil},
		{"nil_on_present_deletes", map[grid.Coord]*Tile{{Row: 3, Col: 3}: a}, 3, 3, nil, true, 0, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore()
			for k, v := range c.seed {
				s.Set(Base, k.Row, k.Col, v)
			}
			if got := s.Set(Base, c.row, c.col, c.tile); got != c.wantChanged {
				t.Fatalf("Set changed = %v, want %v", got, c.wantChanged)
			}
			if s.Len(Base) != c.wantLen {
				t.Fatalf("expected %d tiles, got %d", c.wantLen, s.Len(Base))
			}
			got, ok := s.Get(Base, c.row, c.col)
			if c.want == nil {
				if ok {
					t.Fatalf("expected empty cell, got %p", got)
				}
				return
			}
			if !ok || got != c.want {
				t.Fatalf("expected %p at (%d,%d), got %p ok=%v", c.want, c.row, c.col, got, ok)
			}
		})
	}
}

func TestStoreLayersAreIndependent(t *testing.T) {
	s := NewStore()
	bg, base, fg := newTestTile(), newTestTile(), newTestTile()
	s.Set(Background, 0, 0, bg)
	s.Set(Base, 0, 0, base)
	s.Set(Foreground, 0, 0, fg)

	for layer, want := range map[Layer]*Tile{Background: bg, Base: base, Foreground: fg} {
		got, ok := s.Get(layer, 0, 0)
		if !ok || got != want {
			t.Fatalf("%s: expected %p, got %p", layer, want, got)
		}
	}

	s.Clear(Base)
	if s.Len(Base) != 0 || s.Len(Background) != 1 || s.Len(Foreground) != 1 {
		t.Fatalf("Clear(Base) touched other layers")
	}

	s.Clear(AllLayers)
	for _, l := range PaintOrder {
		if s.Len(l) != 0 {
			t.Fatalf("%s not cleared", l)
		}
	}
}

func TestStoreInvalidLayer(t *testing.T) {
	s := NewStore()
	if s.Set(Layer(7), 0, 0, newTestTile()) {
		t.Fatalf("write to unknown layer should be rejected")
	}
	if _, ok := s.Get(AllLayers, 0, 0); ok {
		t.Fatalf("AllLayers is not readable")
	}
}

func TestStoreNoBoundsChecks(t *testing.T) {
	s := NewStore()
	tile := newTestTile()
	if !s.Set(Base, -4, 10000, tile) {
		t.Fatalf("expected write outside any geometry to succeed")
	}
	if got, ok := s.Get(Base, -4, 10000); !ok || got != tile {
		t.Fatalf("expected tile back")
	}
}

func TestStoreFindAndReplace(t *testing.T) {
	s := NewStore()
	hover := newTestTile()
	other := newTestTile()
	s.Set(Foreground, 0, 0, hover)
	s.Set(Foreground, 1, 1, hover)
	s.Set(Foreground, 2, 2, other)

	if got := s.Find(Foreground, hover); len(got) != 2 {
		t.Fatalf("expected 2 cells holding hover, got %v", got)
	}

	repl := newTestTile()
	if got := s.Replace(Foreground, hover, repl); len(got) != 2 {
		t.Fatalf("expected 2 replacements, got %v", got)
	}
	if len(s.Find(Foreground, hover)) != 0 || len(s.Find(Foreground, repl)) != 2 {
		t.Fatalf("replace did not swap tiles")
	}
	if got, _ := s.Get(Foreground, 2, 2); got != other {
		t.Fatalf("replace touched an unrelated tile")
	}
}

func TestStoreEachAllowsWriteBack(t *testing.T) {
	s := NewStore()
	tile := newTestTile()
	for i := 0; i < 4; i++ {
		s.Set(Foreground, i, i, tile)
	}
	s.Each(Foreground, func(c grid.Coord, cur *Tile) {
		s.Set(Foreground, c.Row, c.Col, nil)
	})
	if s.Len(Foreground) != 0 {
		t.Fatalf("expected every cell cleared, got %d", s.Len(Foreground))
	}
}

func TestStoreConcurrentDistinctWrites(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			wg.Add(1)
			go func(r, c int) {
				defer wg.Done()
				s.Set(Base, r, c, newTestTile())
			}(r, c)
		}
	}
	wg.Wait()
	if s.Len(Base) != 64 {
		t.Fatalf("expected 64 tiles, got %d", s.Len(Base))
	}
}

func TestStoreDeleteIf(t *testing.T) {
	s := NewStore()
	mine, theirs := newTestTile(), newTestTile()
	s.Set(Foreground, 0, 0, theirs)

	if s.DeleteIf(Foreground, 0, 0, mine) {
		t.Fatalf("must not delete a different tile")
	}
	if !s.DeleteIf(Foreground, 0, 0, theirs) {
		t.Fatalf("expected matching tile to be deleted")
	}
	if s.DeleteIf(Foreground, 0, 0, theirs) {
		t.Fatalf("second delete should be a no-op")
	}
}
