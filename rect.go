package gr

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle with float64 edges.
// Left/Top are inclusive, Right/Bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectXYWH creates a Rect from position and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// RectLTRB creates a Rect from its edges.
func RectLTRB(l, t, r, b float64) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Contains reports whether other lies entirely inside r.
// An empty rectangle is never contained.
func (r Rect) Contains(other Rect) bool {
	return !r.IsEmpty() && !other.IsEmpty() &&
		r.Left <= other.Left && r.Top <= other.Top &&
		r.Right >= other.Right && r.Bottom >= other.Bottom
}

// ContainsPoint reports whether p is inside r (left/top inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersects reports whether the two rectangles share any area.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && other.Left < r.Right &&
		r.Top < other.Bottom && other.Top < r.Bottom
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rectangle if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing both. Empty inputs are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() IRect {
	return IRect{
		Left:   int(math.Floor(r.Left)),
		Top:    int(math.Floor(r.Top)),
		Right:  int(math.Ceil(r.Right)),
		Bottom: int(math.Ceil(r.Bottom)),
	}
}

// Corners returns the four corners clockwise from top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}

// IRect is an axis-aligned rectangle with integer edges, used for device,
// scissor and mask bounds.
type IRect struct {
	Left, Top, Right, Bottom int
}

// IRectWH returns the rectangle (0, 0, w, h).
func IRectWH(w, h int) IRect {
	return IRect{Right: w, Bottom: h}
}

// IRectLTRB creates an IRect from its edges.
func IRectLTRB(l, t, r, b int) IRect {
	return IRect{Left: l, Top: t, Right: r, Bottom: b}
}

// Width returns Right - Left.
func (r IRect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r IRect) Height() int { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle has no area.
func (r IRect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Offset returns r translated by p.
func (r IRect) Offset(p IPoint) IRect {
	return IRect{Left: r.Left + p.X, Top: r.Top + p.Y, Right: r.Right + p.X, Bottom: r.Bottom + p.Y}
}

// Intersect returns the intersection, or the zero IRect if disjoint.
func (r IRect) Intersect(other IRect) IRect {
	out := IRect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return IRect{}
	}
	return out
}

// Contains reports whether other lies entirely inside r.
func (r IRect) Contains(other IRect) bool {
	return !r.IsEmpty() && !other.IsEmpty() &&
		r.Left <= other.Left && r.Top <= other.Top &&
		r.Right >= other.Right && r.Bottom >= other.Bottom
}

// Rect converts r to a float rectangle.
func (r IRect) Rect() Rect {
	return Rect{Left: float64(r.Left), Top: float64(r.Top), Right: float64(r.Right), Bottom: float64(r.Bottom)}
}

func (r IRect) String() string {
	return fmt.Sprintf("[%d,%d %d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}
