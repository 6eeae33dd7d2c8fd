package surface

import (
	"image/color"
	"math"

	"github.com/milk9111/tilecanvas/tiles"
)

// Surface is the raster target a canvas paints into.
type Surface interface {
	Size() (int, int)
	Clear()
	DrawImage(t *tiles.Tile, x, y, w, h float64)
	StrokePath(p *Path, style StrokeStyle)
}

// StrokeStyle describes how a Path is stroked. Dash alternates on/off
// lengths in pixels; an empty Dash draws solid lines.
type StrokeStyle struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// Segment is one straight line of a path.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Path is a list of straight line segments built with MoveTo/LineTo and
// stroked in one call.
type Path struct {
	segments []Segment
	penX     float64
	penY     float64
}

// MoveTo lifts the pen to (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.penX, p.penY = x, y
}

// LineTo adds a segment from the pen to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.segments = append(p.segments, Segment{X0: p.penX, Y0: p.penY, X1: x, Y1: y})
	p.penX, p.penY = x, y
}

// Segments returns the recorded segments.
func (p *Path) Segments() []Segment {
	if p == nil {
		return nil
	}
	return p.segments
}

// Dashes splits every segment of p into the "on" pieces of dash. The dash
// pattern restarts at the beginning of each segment.
func (p *Path) Dashes(dash []float64) []Segment {
	segs := p.Segments()
	if !validDash(dash) {
		return segs
	}
	var out []Segment
	for _, s := range segs {
		out = append(out, dashSegment(s, dash)...)
	}
	return out
}

func validDash(dash []float64) bool {
	if len(dash) == 0 {
		return false
	}
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}

func dashSegment(s Segment, dash []float64) []Segment {
	// odd-length patterns repeat doubled, as canvas line dashes do
	if len(dash)%2 == 1 {
		dash = append(append([]float64(nil), dash...), dash...)
	}
	dx := s.X1 - s.X0
	dy := s.Y1 - s.Y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length

	var out []Segment
	pos := 0.0
	for i := 0; pos < length; i = (i + 1) % len(dash) {
		end := math.Min(pos+dash[i], length)
		if i%2 == 0 && end > pos {
			out = append(out, Segment{
				X0: s.X0 + ux*pos,
				Y0: s.Y0 + uy*pos,
				X1: s.X0 + ux*end,
				Y1: s.Y0 + uy*end,
			})
		}
		pos = end
	}
	return out
}
