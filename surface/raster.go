package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/tilecanvas/tiles"
	"golang.org/x/image/draw"
)

// Raster is a CPU surface backed by an *image.RGBA.
type Raster struct {
	img    *image.RGBA
	scaler draw.Scaler
}

var _ Surface = (*Raster)(nil)

// NewRaster creates a transparent raster surface of the given size.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		scaler: draw.NearestNeighbor,
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image with a transparent one of the new size.
func (r *Raster) Resize(width, height int) {
	if w, h := r.Size(); w == width && h == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DrawImage scales the tile into the rectangle (x, y, w, h) with
// nearest-neighbour sampling, compositing over what is already there.
func (r *Raster) DrawImage(t *tiles.Tile, x, y, w, h float64) {
	src := t.Image()
	if src == nil || w <= 0 || h <= 0 {
		return
	}
	dst := image.Rect(
		int(math.Floor(x)),
		int(math.Floor(y)),
		int(math.Floor(x+w)),
		int(math.Floor(y+h)),
	)
	if dst.Empty() {
		return
	}
	r.scaler.Scale(r.img, dst, src, src.Bounds(), draw.Over, nil)
}

// StrokePath rasterises every dash of p as a square pen of style.Width.
func (r *Raster) StrokePath(p *Path, style StrokeStyle) {
	if style.Color == nil {
		style.Color = color.Black
	}
	pen := int(math.Max(1, math.Round(style.Width)))
	src := image.NewUniform(style.Color)
	for _, s := range p.Dashes(style.Dash) {
		r.strokeSegment(s, pen, src)
	}
}

func (r *Raster) strokeSegment(s Segment, pen int, src image.Image) {
	dx := s.X1 - s.X0
	dy := s.Y1 - s.Y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	seen := make(map[image.Point]struct{}, steps)
	// the end point is exclusive so adjoining dashes do not double-blend
	for i := 0; i < steps; i++ {
		f := float64(i) / float64(steps)
		pt := image.Pt(int(math.Floor(s.X0+dx*f)), int(math.Floor(s.Y0+dy*f)))
		if _, ok := seen[pt]; ok {
			continue
		}
		seen[pt] = struct{}{}
		rect := image.Rect(pt.X, pt.Y, pt.X+pen, pt.Y+pen).Intersect(r.img.Bounds())
		if rect.Empty() {
			continue
		}
		draw.Draw(r.img, rect, src, image.Point{}, draw.Over)
	}
}
