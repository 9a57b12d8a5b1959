package effects

import (
	"fmt"
	"math"

	"github.com/gogpu/gr"
)

// minRRectRadius is the smallest corner radius RRectEffect renders.
const minRRectRadius = 0.5

// RRectEffect computes coverage for a rounded rectangle whose four corners
// share the same radii.
type RRectEffect struct {
	edgeType EdgeType
	rr       gr.RRect
	rx, ry   float64
}

// NewRRectEffect returns false when the corners differ or a radius is
// below half a pixel.
func NewRRectEffect(edgeType EdgeType, rr gr.RRect) (*RRectEffect, bool) {
	r0 := rr.Radii[0]
	for _, r := range rr.Radii[1:] {
		if r != r0 {
			return nil, false
		}
	}
	if r0.X < minRRectRadius || r0.Y < minRRectRadius || rr.IsEmpty() {
		return nil, false
	}
	return &RRectEffect{edgeType: edgeType, rr: rr, rx: r0.X, ry: r0.Y}, true
}

// Name implements gpu.Processor.
func (e *RRectEffect) Name() string {
	return fmt.Sprintf("RRect(%v,%gx%g)", e.edgeType, e.rx, e.ry)
}

// EdgeType returns the effect's edge type.
func (e *RRectEffect) EdgeType() EdgeType { return e.edgeType }

// Eval implements gpu.Processor.
func (e *RRectEffect) Eval(p gr.Point) float64 {
	if !e.edgeType.IsAA() {
		if e.rr.ContainsPoint(p) {
			return finish(e.edgeType, 1)
		}
		return finish(e.edgeType, 0)
	}
	return finish(e.edgeType, e.coverage(p))
}

func (e *RRectEffect) coverage(p gr.Point) float64 {
	r := e.rr.Rect
	// Offset from the inner rectangle whose corners are the ellipse centres.
	dx := math.Max(r.Left+e.rx-p.X, p.X-(r.Right-e.rx))
	dy := math.Max(r.Top+e.ry-p.Y, p.Y-(r.Bottom-e.ry))
	if dx <= 0 || dy <= 0 {
		ex := math.Min(p.X-r.Left, r.Right-p.X)
		ey := math.Min(p.Y-r.Top, r.Bottom-p.Y)
		return edgeCoverage(true, ex) * edgeCoverage(true, ey)
	}
	// Approximate the signed distance to the corner ellipse by f/|grad f|.
	f := dx*dx/(e.rx*e.rx) + dy*dy/(e.ry*e.ry) - 1
	gx := 2 * dx / (e.rx * e.rx)
	gy := 2 * dy / (e.ry * e.ry)
	g := math.Hypot(gx, gy)
	if g < 1e-9 {
		return 1
	}
	return edgeCoverage(true, -f/g)
}
