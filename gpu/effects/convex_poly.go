package effects

import (
	"fmt"

	"github.com/gogpu/gr"
)

// MaxConvexEdges is the largest polygon ConvexPolyEffect accepts.
const MaxConvexEdges = 8

// ConvexPolyEffect computes coverage for a convex polygon from the signed
// distance to each of its edges.
type ConvexPolyEffect struct {
	edgeType EdgeType
	// edges are a*x + b*y + c with (a,b) unit length, positive inside.
	edges [][3]float64
}

// NewConvexPolyEffect builds an effect for a convex, line-only path with at
// most MaxConvexEdges edges, translated by offset. An inverse-filled path
// inverts edgeType. It returns false when the path is not representable.
func NewConvexPolyEffect(edgeType EdgeType, p *gr.Path, offset gr.Point) (*ConvexPolyEffect, bool) {
	for _, el := range p.Elements() {
		switch el.(type) {
		case gr.MoveTo, gr.LineTo, gr.Close:
		default:
			return nil, false
		}
	}
	poly, ok := p.ConvexPolygon()
	if !ok || len(poly) < 3 || len(poly) > MaxConvexEdges {
		return nil, false
	}
	if p.IsInverseFillType() {
		edgeType = edgeType.Inverse()
	}
	e := &ConvexPolyEffect{edgeType: edgeType}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		a, b = a.Add(offset), b.Add(offset)
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		nx, ny := -d.Y/l, d.X/l
		e.edges = append(e.edges, [3]float64{nx, ny, -(nx*a.X + ny*a.Y)})
	}
	if len(e.edges) < 3 {
		return nil, false
	}
	return e, true
}

// NewConvexPolyRectEffect builds an effect for an axis-aligned rectangle.
func NewConvexPolyRectEffect(edgeType EdgeType, r gr.Rect) *ConvexPolyEffect {
	return &ConvexPolyEffect{
		edgeType: edgeType,
		edges: [][3]float64{
			{1, 0, -r.Left},
			{-1, 0, r.Right},
			{0, 1, -r.Top},
			{0, -1, r.Bottom},
		},
	}
}

// Name implements gpu.Processor.
func (e *ConvexPolyEffect) Name() string {
	return fmt.Sprintf("ConvexPoly(%v,%d)", e.edgeType, len(e.edges))
}

// EdgeType returns the effect's edge type.
func (e *ConvexPolyEffect) EdgeType() EdgeType { return e.edgeType }

// NumEdges returns the number of polygon edges.
func (e *ConvexPolyEffect) NumEdges() int { return len(e.edges) }

// Eval implements gpu.Processor.
func (e *ConvexPolyEffect) Eval(p gr.Point) float64 {
	aa := e.edgeType.IsAA()
	cov := 1.0
	for _, ed := range e.edges {
		cov *= edgeCoverage(aa, ed[0]*p.X+ed[1]*p.Y+ed[2])
		if cov == 0 {
			break
		}
	}
	return finish(e.edgeType, cov)
}
