package swmask

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/gr"
)

// flattenTolerance is the curve flattening tolerance in pixels.
const flattenTolerance = 0.1

// superSamples is the per-axis sample count for anti-aliased even-odd fills.
const superSamples = 4

// newAlpha allocates a coverage bitmap addressed in area coordinates.
func newAlpha(area gr.IRect) *image.Alpha {
	a := image.NewAlpha(image.Rect(0, 0, area.Width(), area.Height()))
	a.Rect = image.Rect(area.Left, area.Top, area.Right, area.Bottom)
	return a
}

// RasterizeRect returns the coverage of r over area. Anti-aliased coverage
// is the exact pixel overlap; otherwise pixels whose centre lies inside r
// are fully covered.
func RasterizeRect(r gr.Rect, area gr.IRect, aa bool) *image.Alpha {
	out := newAlpha(area)
	if area.IsEmpty() || r.IsEmpty() {
		return out
	}
	span := r.RoundOut().Intersect(area)
	for y := span.Top; y < span.Bottom; y++ {
		row := out.Pix[out.PixOffset(span.Left, y):]
		for x := span.Left; x < span.Right; x++ {
			var cov float64
			if aa {
				w := math.Min(r.Right, float64(x+1)) - math.Max(r.Left, float64(x))
				h := math.Min(r.Bottom, float64(y+1)) - math.Max(r.Top, float64(y))
				if w > 0 && h > 0 {
					cov = w * h
				}
			} else {
				cx, cy := float64(x)+0.5, float64(y)+0.5
				if cx >= r.Left && cx < r.Right && cy >= r.Top && cy < r.Bottom {
					cov = 1
				}
			}
			row[x-span.Left] = toByte(cov)
		}
	}
	return out
}

// RasterizePath returns the coverage of p over area under p's fill rule,
// inverse fills included. Anti-aliased non-zero fills use the vector
// rasterizer; anti-aliased even-odd fills are supersampled; aliased fills
// sample pixel centres.
func RasterizePath(p *gr.Path, area gr.IRect, aa bool) *image.Alpha {
	fill := p.FillType()
	if aa && !fill.IsEvenOdd() {
		out := rasterizeVector(p, area)
		if fill.IsInverse() {
			for i, v := range out.Pix {
				out.Pix[i] = 0xff - v
			}
		}
		return out
	}

	out := newAlpha(area)
	polys := p.Flatten(flattenTolerance)
	for y := area.Top; y < area.Bottom; y++ {
		row := out.Pix[out.PixOffset(area.Left, y):]
		for x := area.Left; x < area.Right; x++ {
			var cov float64
			if aa {
				hits := 0
				for sy := range superSamples {
					for sx := range superSamples {
						pt := gr.Pt(float64(x)+(float64(sx)+0.5)/superSamples, float64(y)+(float64(sy)+0.5)/superSamples)
						if fill.Fills(gr.WindingNumber(polys, pt)) {
							hits++
						}
					}
				}
				cov = float64(hits) / (superSamples * superSamples)
			} else if fill.Fills(gr.WindingNumber(polys, gr.Pt(float64(x)+0.5, float64(y)+0.5))) {
				cov = 1
			}
			row[x-area.Left] = toByte(cov)
		}
	}
	return out
}

func rasterizeVector(p *gr.Path, area gr.IRect) *image.Alpha {
	out := newAlpha(area)
	w, h := area.Width(), area.Height()
	if w <= 0 || h <= 0 {
		return out
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	ox, oy := float64(area.Left), float64(area.Top)
	pt := func(q gr.Point) (float32, float32) {
		return float32(q.X - ox), float32(q.Y - oy)
	}
	open := false
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gr.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(e.Point))
			open = true
		case gr.LineTo:
			z.LineTo(pt(e.Point))
		case gr.QuadTo:
			cx, cy := pt(e.Control)
			x, y := pt(e.Point)
			z.QuadTo(cx, cy, x, y)
		case gr.CubicTo:
			c1x, c1y := pt(e.Control1)
			c2x, c2y := pt(e.Control2)
			x, y := pt(e.Point)
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case gr.Close:
			if open {
				z.ClosePath()
			}
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	// The rasterizer writes into a zero-origin view of out.
	view := &image.Alpha{Pix: out.Pix, Stride: out.Stride, Rect: image.Rect(0, 0, w, h)}
	z.Draw(view, view.Rect, image.Opaque, image.Point{})
	return out
}

func toByte(cov float64) uint8 {
	switch {
	case cov <= 0:
		return 0
	case cov >= 1:
		return 0xff
	}
	return uint8(cov*255 + 0.5)
}
