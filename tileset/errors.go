package tileset

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilecanvas/grid"
)

var (
	// ErrSuperseded is returned by a load that was overtaken by a newer one.
	// Nothing it decoded reached the layers.
	ErrSuperseded = errors.New("tileset: load superseded by a newer load")
	// ErrNoImage is returned when there is no image URL to load.
	ErrNoImage = errors.New("tileset: no image url")
)

// LoadError reports that the source image or its metadata could not be
// fetched or decoded.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("tileset: load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DecodeError reports that one cell could not be cut from the source. The
// cell stays empty; other cells are unaffected.
type DecodeError struct {
	Cell grid.Coord
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tileset: decode cell %s: %v", e.Cell, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
