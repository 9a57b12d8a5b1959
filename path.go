package gr

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// FillType selects the rule deciding which points are inside a path.
type FillType uint8

const (
	// FillWinding fills points with a non-zero winding number.
	FillWinding FillType = iota
	// FillEvenOdd fills points with an odd winding number.
	FillEvenOdd
	// FillInverseWinding fills points outside the winding interior.
	FillInverseWinding
	// FillInverseEvenOdd fills points outside the even-odd interior.
	FillInverseEvenOdd
)

// IsInverse reports whether the fill covers the outside of the path.
func (f FillType) IsInverse() bool { return f == FillInverseWinding || f == FillInverseEvenOdd }

// IsEvenOdd reports whether the fill uses the even-odd rule.
func (f FillType) IsEvenOdd() bool { return f == FillEvenOdd || f == FillInverseEvenOdd }

// Fills reports whether a point with winding number w is filled.
func (f FillType) Fills(w int) bool {
	in := w != 0
	if f.IsEvenOdd() {
		in = w&1 != 0
	}
	return in != f.IsInverse()
}

// ToggleInverse swaps between the inverse and normal variant of the rule.
func (f FillType) ToggleInverse() FillType { return f ^ 2 }

// String returns the fill type name.
func (f FillType) String() string {
	switch f {
	case FillWinding:
		return "Winding"
	case FillEvenOdd:
		return "EvenOdd"
	case FillInverseWinding:
		return "InverseWinding"
	case FillInverseEvenOdd:
		return "InverseEvenOdd"
	default:
		return "Unknown"
	}
}

// Path represents a vector path with a fill rule.
type Path struct {
	elements []PathElement
	fill     FillType
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// AddRect adds a closed clockwise rectangle subpath.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
}

// AddRRect adds a closed clockwise rounded rectangle subpath.
func (p *Path) AddRRect(rr RRect) {
	if rr.IsRect() {
		p.AddRect(rr.Rect)
		return
	}
	r := rr.Rect
	ul, ur, lr, ll := rr.Radii[UpperLeft], rr.Radii[UpperRight], rr.Radii[LowerRight], rr.Radii[LowerLeft]

	p.MoveTo(r.Left+ul.X, r.Top)
	p.LineTo(r.Right-ur.X, r.Top)
	p.CubicTo(r.Right-ur.X+ur.X*kappa, r.Top, r.Right, r.Top+ur.Y-ur.Y*kappa, r.Right, r.Top+ur.Y)
	p.LineTo(r.Right, r.Bottom-lr.Y)
	p.CubicTo(r.Right, r.Bottom-lr.Y+lr.Y*kappa, r.Right-lr.X+lr.X*kappa, r.Bottom, r.Right-lr.X, r.Bottom)
	p.LineTo(r.Left+ll.X, r.Bottom)
	p.CubicTo(r.Left+ll.X-ll.X*kappa, r.Bottom, r.Left, r.Bottom-ll.Y+ll.Y*kappa, r.Left, r.Bottom-ll.Y)
	p.LineTo(r.Left, r.Top+ul.Y)
	p.CubicTo(r.Left, r.Top+ul.Y-ul.Y*kappa, r.Left+ul.X-ul.X*kappa, r.Top, r.Left+ul.X, r.Top)
	p.Close()
}

// AddCircle adds a closed circle subpath.
func (p *Path) AddCircle(cx, cy, radius float64) {
	p.AddRRect(RRectXY(RectLTRB(cx-radius, cy-radius, cx+radius, cy+radius), radius, radius))
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// FillType returns the fill rule.
func (p *Path) FillType() FillType { return p.fill }

// SetFillType sets the fill rule.
func (p *Path) SetFillType(f FillType) { p.fill = f }

// IsInverseFillType reports whether the path fills its outside.
func (p *Path) IsInverseFillType() bool { return p.fill.IsInverse() }

// ToggleInverseFillType switches between inverse and normal fill.
func (p *Path) ToggleInverseFillType() { p.fill = p.fill.ToggleInverse() }

// IsEmpty reports whether the path has no drawing elements.
func (p *Path) IsEmpty() bool {
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); !ok {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	elements := make([]PathElement, len(p.elements))
	copy(elements, p.elements)
	return &Path{
		elements: elements,
		fill:     p.fill,
		start:    p.start,
		current:  p.current,
	}
}

// Transform returns a new path with all points transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	result := &Path{elements: make([]PathElement, 0, len(p.elements)), fill: p.fill}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			result.elements = append(result.elements, MoveTo{Point: m.TransformPoint(e.Point)})
		case LineTo:
			result.elements = append(result.elements, LineTo{Point: m.TransformPoint(e.Point)})
		case QuadTo:
			result.elements = append(result.elements, QuadTo{
				Control: m.TransformPoint(e.Control),
				Point:   m.TransformPoint(e.Point),
			})
		case CubicTo:
			result.elements = append(result.elements, CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			})
		case Close:
			result.elements = append(result.elements, Close{})
		}
	}
	result.start = m.TransformPoint(p.start)
	result.current = m.TransformPoint(p.current)
	return result
}

// Offset returns a copy of the path translated by (dx, dy).
func (p *Path) Offset(dx, dy float64) *Path {
	return p.Transform(Translate(dx, dy))
}

// Bounds returns the bounds of all points, including curve control points.
// The result is a conservative bound of the filled area of a non-inverse path.
func (p *Path) Bounds() Rect {
	first := true
	var b Rect
	add := func(pt Point) {
		if first {
			b = Rect{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y}
			first = false
			return
		}
		b.Left = math.Min(b.Left, pt.X)
		b.Top = math.Min(b.Top, pt.Y)
		b.Right = math.Max(b.Right, pt.X)
		b.Bottom = math.Max(b.Bottom, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return b
}

// Flatten converts the path into closed polygons, one per subpath, with
// curves approximated to within tolerance. Subpaths with fewer than three
// points are dropped.
func (p *Path) Flatten(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var (
		polys [][]Point
		cur   []Point
		last  Point
	)
	flush := func() {
		if len(cur) > 1 && cur[0] == cur[len(cur)-1] {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = append(cur, e.Point)
			last = e.Point
		case LineTo:
			if cur == nil {
				cur = append(cur, last)
			}
			cur = append(cur, e.Point)
			last = e.Point
		case QuadTo:
			if cur == nil {
				cur = append(cur, last)
			}
			n := segments(last.Sub(e.Control).Length()+e.Control.Sub(e.Point).Length(), tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				a := last.Lerp(e.Control, t)
				b := e.Control.Lerp(e.Point, t)
				cur = append(cur, a.Lerp(b, t))
			}
			last = e.Point
		case CubicTo:
			if cur == nil {
				cur = append(cur, last)
			}
			n := segments(last.Sub(e.Control1).Length()+e.Control1.Sub(e.Control2).Length()+
				e.Control2.Sub(e.Point).Length(), tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur = append(cur, cubicAt(last, e.Control1, e.Control2, e.Point, t))
			}
			last = e.Point
		case Close:
			if len(cur) > 0 {
				last = cur[0]
			}
			flush()
		}
	}
	flush()
	return polys
}

func segments(length, tolerance float64) int {
	n := int(math.Ceil(math.Sqrt(length / tolerance)))
	return max(2, min(n, 100))
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	c := p2.Lerp(p3, t)
	return a.Lerp(b, t).Lerp(b.Lerp(c, t), t)
}

// Winding returns the winding number of the path around pt.
func (p *Path) Winding(pt Point) int {
	return WindingNumber(p.Flatten(0.1), pt)
}

// WindingNumber returns the winding number of closed polygons around pt.
// Callers sampling many points flatten once and use this directly.
func WindingNumber(polys [][]Point, pt Point) int {
	w := 0
	for _, poly := range polys {
		w += polygonWinding(poly, pt)
	}
	return w
}

func polygonWinding(poly []Point, pt Point) int {
	w := 0
	n := len(poly)
	for i := range n {
		a := poly[i]
		b := poly[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && b.Sub(a).Cross(pt.Sub(a)) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && b.Sub(a).Cross(pt.Sub(a)) < 0 {
			w--
		}
	}
	return w
}

// Contains reports whether pt is filled by the path under its fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.fill.Fills(p.Winding(pt))
}

// convexPolygon returns the single flattened contour of a convex path and
// its orientation sign (+1 clockwise in y-down space, -1 counter-clockwise).
func (p *Path) convexPolygon() ([]Point, float64, bool) {
	polys := p.Flatten(0.1)
	if len(polys) != 1 {
		return nil, 0, false
	}
	poly := polys[0]
	n := len(poly)
	var sign, turning float64
	for i := range n {
		e0 := poly[(i+1)%n].Sub(poly[i])
		e1 := poly[(i+2)%n].Sub(poly[(i+1)%n])
		if e0.Length() == 0 || e1.Length() == 0 {
			continue
		}
		c := e0.Cross(e1)
		if math.Abs(c) > 1e-9 {
			s := math.Copysign(1, c)
			if sign == 0 {
				sign = s
			} else if s != sign {
				return nil, 0, false
			}
		}
		turning += math.Atan2(c, e0.Dot(e1))
	}
	if sign == 0 || math.Abs(turning) > 2*math.Pi+1e-6 {
		return nil, 0, false
	}
	return poly, sign, true
}

// IsConvex reports whether the path is a single convex contour.
// Fill type is ignored.
func (p *Path) IsConvex() bool {
	_, _, ok := p.convexPolygon()
	return ok
}

// ConvexPolygon returns the flattened contour of a convex path, oriented
// clockwise (positive cross products in y-down space).
func (p *Path) ConvexPolygon() ([]Point, bool) {
	poly, sign, ok := p.convexPolygon()
	if !ok {
		return nil, false
	}
	if sign < 0 {
		rev := make([]Point, len(poly))
		for i, pt := range poly {
			rev[len(poly)-1-i] = pt
		}
		poly = rev
	}
	return poly, true
}

// ConservativelyContainsRect reports whether r is certainly inside the
// filled area of a convex path. Non-convex paths always report false.
// Fill type is ignored.
func (p *Path) ConservativelyContainsRect(r Rect) bool {
	poly, ok := p.ConvexPolygon()
	if !ok || r.IsEmpty() {
		return false
	}
	n := len(poly)
	for i := range n {
		a := poly[i]
		e := poly[(i+1)%n].Sub(a)
		for _, c := range r.Corners() {
			if e.Cross(c.Sub(a)) < 0 {
				return false
			}
		}
	}
	return true
}

// AsRect reports whether the path is a single axis-aligned rectangle built
// from line segments, and returns it.
func (p *Path) AsRect() (Rect, bool) {
	for _, e := range p.elements {
		switch e.(type) {
		case QuadTo, CubicTo:
			return Rect{}, false
		}
	}
	polys := p.Flatten(0.1)
	if len(polys) != 1 || len(polys[0]) != 4 {
		return Rect{}, false
	}
	q := polys[0]
	for i := range 4 {
		a, b := q[i], q[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return Rect{}, false
		}
	}
	r := Rect{
		Left:   math.Min(q[0].X, q[2].X),
		Top:    math.Min(q[0].Y, q[2].Y),
		Right:  math.Max(q[0].X, q[2].X),
		Bottom: math.Max(q[0].Y, q[2].Y),
	}
	if r.IsEmpty() {
		return Rect{}, false
	}
	return r, true
}
