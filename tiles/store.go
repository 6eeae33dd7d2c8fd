package tiles

import (
	"fmt"
	"sync"

	"github.com/milk9111/tilecanvas/grid"
)

// Layer identifies one of the three tile planes.
type Layer int

const (
	Background Layer = iota
	Base
	Foreground

	// AllLayers selects every layer in Store.Clear.
	AllLayers Layer = -1
)

// PaintOrder is the fixed draw order; later layers cover earlier ones.
var PaintOrder = [...]Layer{Background, Base, Foreground}

func (l Layer) String() string {
	switch l {
	case Background:
		return "background"
	case Base:
		return "base"
	case Foreground:
		return "foreground"
	case AllLayers:
		return "all"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// Valid reports whether l names a single layer.
func (l Layer) Valid() bool {
	return l >= Background && l <= Foreground
}

// Store holds three sparse coordinate-indexed tile maps. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	layers [len(PaintOrder)]map[grid.Coord]*Tile
}

// NewStore creates a store with all layers empty.
func NewStore() *Store {
	s := &Store{}
	for i := range s.layers {
		s.layers[i] = make(map[grid.Coord]*Tile)
	}
	return s
}

// Get returns the tile at (row, col) on layer.
func (s *Store) Get(layer Layer, row, col int) (*Tile, bool) {
	if !layer.Valid() {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.layers[layer][grid.Coord{Row: row, Col: col}]
	return t, ok
}

// Set writes t at (row, col) on layer. A nil tile deletes the cell. It
// reports whether the layer changed: writing the tile already stored there,
// or deleting an empty cell, is a no-op.
func (s *Store) Set(layer Layer, row, col int, t *Tile) bool {
	if !layer.Valid() {
		return false
	}
	key := grid.Coord{Row: row, Col: col}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.layers[layer]
	cur, ok := m[key]
	if t == nil {
		if !ok {
			return false
		}
		delete(m, key)
		return true
	}
	if ok && cur == t {
		return false
	}
	m[key] = t
	return true
}

// DeleteIf removes the tile at (row, col) on layer only if it is t.
func (s *Store) DeleteIf(layer Layer, row, col int, t *Tile) bool {
	if !layer.Valid() || t == nil {
		return false
	}
	key := grid.Coord{Row: row, Col: col}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.layers[layer][key]; !ok || cur != t {
		return false
	}
	delete(s.layers[layer], key)
	return true
}

// Clear empties layer, or every layer for AllLayers.
func (s *Store) Clear(layer Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if layer == AllLayers {
		for i := range s.layers {
			clear(s.layers[i])
		}
		return
	}
	if layer.Valid() {
		clear(s.layers[layer])
	}
}

// Len returns the number of occupied cells on layer.
func (s *Store) Len(layer Layer) int {
	if !layer.Valid() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers[layer])
}

// Each calls fn for every occupied cell on layer in unspecified order. fn
// runs on a snapshot, so it may write back into the store.
func (s *Store) Each(layer Layer, fn func(c grid.Coord, t *Tile)) {
	for c, t := range s.Snapshot(layer) {
		fn(c, t)
	}
}

// Snapshot copies the contents of layer.
func (s *Store) Snapshot(layer Layer) map[grid.Coord]*Tile {
	if !layer.Valid() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[grid.Coord]*Tile, len(s.layers[layer]))
	for c, t := range s.layers[layer] {
		out[c] = t
	}
	return out
}

// Find returns every cell on layer currently holding t.
func (s *Store) Find(layer Layer, t *Tile) []grid.Coord {
	if !layer.Valid() || t == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []grid.Coord
	for c, cur := range s.layers[layer] {
		if cur == t {
			out = append(out, c)
		}
	}
	return out
}

// Replace swaps every occurrence of old on layer for repl and returns the
// affected cells.
func (s *Store) Replace(layer Layer, old, repl *Tile) []grid.Coord {
	if !layer.Valid() || old == nil || old == repl {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.layers[layer]
	var out []grid.Coord
	for c, cur := range m {
		if cur != old {
			continue
		}
		if repl == nil {
			delete(m, c)
		} else {
			m[c] = repl
		}
		out = append(out, c)
	}
	return out
}
