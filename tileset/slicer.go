package tileset

import (
	"context"
	"errors"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/milk9111/tilecanvas/grid"
	"golang.org/x/sync/errgroup"
)

// Source is a decoded tileset image and the geometry it is cut with.
type Source struct {
	Image    image.Image
	URL      string
	Geometry grid.Geometry
}

// CellRect returns the source pixels of cell, offset by the image origin.
func (s *Source) CellRect(cell grid.Coord) image.Rectangle {
	x, y, w, h := s.Geometry.CellRect(cell)
	r := image.Rect(
		int(math.Round(x)),
		int(math.Round(y)),
		int(math.Round(x+w)),
		int(math.Round(y+h)),
	)
	return r.Add(s.Image.Bounds().Min)
}

// Slice decodes every cell of src concurrently, at most limit at a time
// (limit <= 0 uses GOMAXPROCS), and hands each result to commit as soon as
// it is ready. Completion order is unspecified. A cell that fails to decode
// is skipped and reported as a *DecodeError in the joined error; the others
// still run. Cells not yet started when ctx is cancelled are skipped and
// ctx.Err() is joined into the result. Slice returns once every started
// decode has settled.
func Slice(ctx context.Context, src *Source, dec Decoder, limit int, commit func(cell grid.Coord, img image.Image)) error {
	if src == nil || src.Image == nil {
		return ErrNoImage
	}
	if dec == nil {
		dec = CopyDecoder{}
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(limit)

	for row := 0; row < src.Geometry.Rows; row++ {
		for col := 0; col < src.Geometry.Cols; col++ {
			cell := grid.Coord{Row: row, Col: col}
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				img, err := dec.Decode(ctx, src.Image, src.CellRect(cell))
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					mu.Lock()
					errs = append(errs, &DecodeError{Cell: cell, Err: err})
					mu.Unlock()
					return nil
				}
				commit(cell, img)
				return nil
			})
		}
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
