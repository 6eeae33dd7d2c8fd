package tileset

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Decoder cuts one rectangle out of a source image into an independent
// image.
type Decoder interface {
	Decode(ctx context.Context, src image.Image, r image.Rectangle) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, src image.Image, r image.Rectangle) (image.Image, error)

func (f DecoderFunc) Decode(ctx context.Context, src image.Image, r image.Rectangle) (image.Image, error) {
	return f(ctx, src, r)
}

// CopyDecoder copies the rectangle into a fresh *image.RGBA with its origin
// at (0,0), so the result shares no pixels with the source.
type CopyDecoder struct{}

func (CopyDecoder) Decode(ctx context.Context, src image.Image, r image.Rectangle) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Empty() {
		return nil, fmt.Errorf("empty rectangle %v", r)
	}
	if !r.In(src.Bounds()) {
		return nil, fmt.Errorf("rectangle %v outside source %v", r, src.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, src, r, draw.Src, nil)
	return dst, nil
}
