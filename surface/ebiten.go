package surface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilecanvas/tiles"
)

// Ebiten paints into an offscreen *ebiten.Image. Tile pixels are uploaded
// to the GPU on first use and cached per tile; tiles that were not drawn
// during the previous paint are released at the next Clear.
type Ebiten struct {
	target *ebiten.Image
	images map[*tiles.Tile]*cachedImage
	frame  uint64
}

type cachedImage struct {
	img      *ebiten.Image
	lastUsed uint64
}

var _ Surface = (*Ebiten)(nil)

// NewEbiten allocates an offscreen target of the given size.
func NewEbiten(width, height int) *Ebiten {
	return &Ebiten{
		target: ebiten.NewImage(max(width, 1), max(height, 1)),
		images: map[*tiles.Tile]*cachedImage{},
	}
}

// Target returns the offscreen image to blit onto the screen.
func (e *Ebiten) Target() *ebiten.Image { return e.target }

func (e *Ebiten) Size() (int, int) {
	b := e.target.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the offscreen target when the size changes.
func (e *Ebiten) Resize(width, height int) {
	if w, h := e.Size(); w == width && h == height {
		return
	}
	e.target.Deallocate()
	e.target = ebiten.NewImage(max(width, 1), max(height, 1))
}

func (e *Ebiten) Clear() {
	e.target.Clear()
	e.frame++
	for t, c := range e.images {
		if c.lastUsed+1 < e.frame {
			c.img.Deallocate()
			delete(e.images, t)
		}
	}
}

func (e *Ebiten) DrawImage(t *tiles.Tile, x, y, w, h float64) {
	img := e.image(t)
	if img == nil {
		return
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(iw), h/float64(ih))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	e.target.DrawImage(img, op)
}

func (e *Ebiten) StrokePath(p *Path, style StrokeStyle) {
	var clr color.Color = color.Black
	if style.Color != nil {
		clr = style.Color
	}
	width := float32(style.Width)
	if width <= 0 {
		width = 1
	}
	for _, s := range p.Dashes(style.Dash) {
		vector.StrokeLine(e.target, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), width, clr, false)
	}
}

func (e *Ebiten) image(t *tiles.Tile) *ebiten.Image {
	if c, ok := e.images[t]; ok {
		c.lastUsed = e.frame
		return c.img
	}
	src := t.Image()
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	e.images[t] = &cachedImage{img: img, lastUsed: e.frame}
	return img
}
