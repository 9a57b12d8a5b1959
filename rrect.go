package gr

import "math"

// Corner indices into RRect.Radii, clockwise from top-left.
const (
	UpperLeft = iota
	UpperRight
	LowerRight
	LowerLeft
)

// kappa is the cubic Bezier control distance for a quarter ellipse.
const kappa = 0.5522847498307936

// RRect is a rounded rectangle: a Rect with elliptical corners.
// Radii holds (rx, ry) per corner, indexed by UpperLeft..LowerLeft.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectXY creates a rounded rectangle with the same radii on every corner.
// Radii are clamped to half the rectangle size.
func RRectXY(r Rect, rx, ry float64) RRect {
	rx = math.Max(0, math.Min(rx, r.Width()/2))
	ry = math.Max(0, math.Min(ry, r.Height()/2))
	rr := RRect{Rect: r}
	for i := range rr.Radii {
		rr.Radii[i] = Pt(rx, ry)
	}
	return rr
}

// IsEmpty reports whether the rounded rectangle has no area.
func (rr RRect) IsEmpty() bool { return rr.Rect.IsEmpty() }

// IsRect reports whether every corner radius is zero.
func (rr RRect) IsRect() bool {
	for _, r := range rr.Radii {
		if r.X > 0 && r.Y > 0 {
			return false
		}
	}
	return true
}

// Bounds returns the enclosing rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// Offset returns rr translated by (dx, dy).
func (rr RRect) Offset(dx, dy float64) RRect {
	rr.Rect = rr.Rect.Offset(dx, dy)
	return rr
}

// ContainsPoint reports whether p lies inside the rounded rectangle.
func (rr RRect) ContainsPoint(p Point) bool {
	if !rr.Rect.ContainsPoint(p) {
		return false
	}
	return rr.insideCorners(p)
}

// Contains reports whether r lies entirely inside the rounded rectangle.
func (rr RRect) Contains(r Rect) bool {
	if !rr.Rect.Contains(r) {
		return false
	}
	for _, c := range r.Corners() {
		if !rr.insideCorners(c) {
			return false
		}
	}
	return true
}

// insideCorners tests p against the corner ellipses only; p is assumed to be
// inside Rect.
func (rr RRect) insideCorners(p Point) bool {
	r := rr.Rect
	centers := [4]Point{
		{X: r.Left + rr.Radii[UpperLeft].X, Y: r.Top + rr.Radii[UpperLeft].Y},
		{X: r.Right - rr.Radii[UpperRight].X, Y: r.Top + rr.Radii[UpperRight].Y},
		{X: r.Right - rr.Radii[LowerRight].X, Y: r.Bottom - rr.Radii[LowerRight].Y},
		{X: r.Left + rr.Radii[LowerLeft].X, Y: r.Bottom - rr.Radii[LowerLeft].Y},
	}
	for i, c := range centers {
		rad := rr.Radii[i]
		if rad.X <= 0 || rad.Y <= 0 {
			continue
		}
		inX := (i == UpperLeft || i == LowerLeft) && p.X < c.X ||
			(i == UpperRight || i == LowerRight) && p.X > c.X
		inY := (i == UpperLeft || i == UpperRight) && p.Y < c.Y ||
			(i == LowerLeft || i == LowerRight) && p.Y > c.Y
		if !inX || !inY {
			continue
		}
		dx := (p.X - c.X) / rad.X
		dy := (p.Y - c.Y) / rad.Y
		if dx*dx+dy*dy > 1+1e-9 {
			return false
		}
	}
	return true
}

// Path returns the outline of the rounded rectangle as a closed path.
func (rr RRect) Path() *Path {
	p := NewPath()
	p.AddRRect(rr)
	return p
}
