package clip

import (
	"sync/atomic"

	"github.com/gogpu/gr"
)

// Op is a set operator combining a clip element with the clip below it.
type Op uint8

const (
	// OpDifference removes the element from the clip.
	OpDifference Op = iota
	// OpIntersect keeps the part of the clip inside the element.
	OpIntersect
	// OpUnion adds the element to the clip.
	OpUnion
	// OpXOR keeps what is in exactly one of the clip and the element.
	OpXOR
	// OpReverseDifference keeps the part of the element outside the clip.
	OpReverseDifference
	// OpReplace discards the clip and uses the element.
	OpReplace
)

var opNames = [...]string{
	OpDifference:        "Difference",
	OpIntersect:         "Intersect",
	OpUnion:             "Union",
	OpXOR:               "XOR",
	OpReverseDifference: "ReverseDifference",
	OpReplace:           "Replace",
}

// String returns the operator name.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "Unknown"
}

// ElementType tags the shape held by an Element.
type ElementType uint8

const (
	// TypeEmpty marks an element that clips out everything.
	TypeEmpty ElementType = iota
	// TypeRect is an axis-aligned rectangle.
	TypeRect
	// TypeRRect is a rounded rectangle.
	TypeRRect
	// TypePath is an arbitrary path, possibly inverse filled.
	TypePath
)

// String returns the type name.
func (t ElementType) String() string {
	switch t {
	case TypeEmpty:
		return "Empty"
	case TypeRect:
		return "Rect"
	case TypeRRect:
		return "RRect"
	case TypePath:
		return "Path"
	default:
		return "Unknown"
	}
}

// Reserved generation ids.
const (
	InvalidGenID  uint32 = 0
	EmptyGenID    uint32 = 1
	WideOpenGenID uint32 = 2
)

var lastGenID atomic.Uint32

// NextGenID returns a fresh, process-wide unique generation id.
func NextGenID() uint32 {
	return lastGenID.Add(1) + WideOpenGenID
}

// BoundsType describes how an element's finite bound relates to the clip.
type BoundsType uint8

const (
	// BoundsNormal means every pixel inside the clip is inside the bound.
	BoundsNormal BoundsType = iota
	// BoundsInsideOut means every pixel outside the bound is inside the clip.
	BoundsInsideOut
)

// Element is one entry of a clip stack. Elements are immutable once pushed;
// the stack owns them and reduced lists refer to them.
type Element struct {
	kind  ElementType
	rect  gr.Rect
	rrect gr.RRect
	path  *gr.Path
	op    Op
	aa    bool
	genID uint32

	saveCount   int
	finiteBound gr.Rect
	boundType   BoundsType
	iior        bool
}

// NewRectElement creates a detached rectangle element with no generation id.
func NewRectElement(r gr.Rect, op Op, aa bool) *Element {
	return &Element{kind: TypeRect, rect: r, op: op, aa: aa}
}

// NewRRectElement creates a detached rounded-rectangle element.
func NewRRectElement(rr gr.RRect, op Op, aa bool) *Element {
	if rr.IsRect() {
		return NewRectElement(rr.Rect, op, aa)
	}
	return &Element{kind: TypeRRect, rrect: rr, op: op, aa: aa}
}

// NewPathElement creates a detached path element. The path is copied.
func NewPathElement(p *gr.Path, op Op, aa bool) *Element {
	return &Element{kind: TypePath, path: p.Clone(), op: op, aa: aa}
}

// Type returns the shape tag.
func (e *Element) Type() ElementType { return e.kind }

// Op returns the set operator.
func (e *Element) Op() Op { return e.op }

// IsAA reports whether the element is antialiased.
func (e *Element) IsAA() bool { return e.aa }

// GenID returns the generation id assigned when the element was pushed.
func (e *Element) GenID() uint32 { return e.genID }

// Rect returns the rectangle of a TypeRect element.
func (e *Element) Rect() gr.Rect { return e.rect }

// RRect returns the rounded rectangle of a TypeRRect element.
func (e *Element) RRect() gr.RRect { return e.rrect }

// Path returns the path of a TypePath element. Callers must not modify it.
func (e *Element) Path() *gr.Path { return e.path }

// IsInverseFilled reports whether the element covers the outside of its shape.
func (e *Element) IsInverseFilled() bool {
	return e.kind == TypePath && e.path.IsInverseFillType()
}

// AsPath returns a fresh path for the element's shape, including inverse fill.
func (e *Element) AsPath() *gr.Path {
	switch e.kind {
	case TypeRect:
		p := gr.NewPath()
		p.AddRect(e.rect)
		return p
	case TypeRRect:
		return e.rrect.Path()
	case TypePath:
		return e.path.Clone()
	default:
		return gr.NewPath()
	}
}

// Bounds returns the bounds of the shape, ignoring inverse fill.
func (e *Element) Bounds() gr.Rect {
	switch e.kind {
	case TypeRect:
		return e.rect
	case TypeRRect:
		return e.rrect.Bounds()
	case TypePath:
		return e.path.Bounds()
	default:
		return gr.Rect{}
	}
}

// Contains reports whether r is certainly inside the shape, ignoring
// inverse fill.
func (e *Element) Contains(r gr.Rect) bool {
	switch e.kind {
	case TypeRect:
		return e.rect.Contains(r)
	case TypeRRect:
		return e.rrect.Contains(r)
	case TypePath:
		return e.path.ConservativelyContainsRect(r)
	default:
		return false
	}
}

// withOp returns a copy carrying a different operator.
func (e *Element) withOp(op Op) *Element {
	c := *e
	c.op = op
	return &c
}

// withInvertedFill returns a copy with the path fill inverted.
func (e *Element) withInvertedFill() *Element {
	c := *e
	if c.kind == TypePath {
		c.path = e.path.Clone()
		c.path.ToggleInverseFillType()
	}
	return &c
}

// IsIntersectionOfRects reports whether the clip up to and including this
// element is a single rectangle.
func (e *Element) IsIntersectionOfRects() bool { return e.iior }

// rectRectIntersectAllowed reports whether a new rect intersected with this
// one can be represented as a single rect with one AA flag.
func (e *Element) rectRectIntersectAllowed(r gr.Rect, aa bool) bool {
	if e.aa == aa || !e.rect.Intersects(r) {
		return true
	}
	return e.rect.Contains(r) || r.Contains(e.rect)
}

// updateBoundAndGenID assigns a generation id and folds this element's shape
// bound into the clip bound of the element below it.
func (e *Element) updateBoundAndGenID(prior *Element) {
	e.genID = NextGenID()
	e.iior = false

	switch e.kind {
	case TypeRect:
		e.finiteBound = e.rect
		e.boundType = BoundsNormal
		if e.op == OpReplace || (e.op == OpIntersect && prior == nil) ||
			(e.op == OpIntersect && prior.iior && prior.rectRectIntersectAllowed(e.rect, e.aa)) {
			e.iior = true
		}
	case TypeRRect:
		e.finiteBound = e.rrect.Bounds()
		e.boundType = BoundsNormal
	case TypePath:
		e.finiteBound = e.path.Bounds()
		e.boundType = BoundsNormal
		if e.path.IsInverseFillType() {
			e.boundType = BoundsInsideOut
		}
	}

	// No prior clip: every pixel can be drawn.
	prevBound, prevType := gr.Rect{}, BoundsInsideOut
	if prior != nil {
		prevBound, prevType = prior.finiteBound, prior.boundType
	}

	switch e.op {
	case OpIntersect:
		e.finiteBound, e.boundType = intersectBounds(prevBound, prevType, e.finiteBound, e.boundType)
	case OpDifference:
		e.finiteBound, e.boundType = intersectBounds(prevBound, prevType, e.finiteBound, flip(e.boundType))
	case OpReverseDifference:
		e.finiteBound, e.boundType = intersectBounds(prevBound, flip(prevType), e.finiteBound, e.boundType)
	case OpUnion:
		e.finiteBound, e.boundType = unionBounds(prevBound, prevType, e.finiteBound, e.boundType)
	case OpXOR:
		e.finiteBound = prevBound.Union(e.finiteBound)
		if prevType == e.boundType {
			e.boundType = BoundsNormal
		} else {
			e.boundType = BoundsInsideOut
		}
	case OpReplace:
	}

	if e.finiteBound.IsEmpty() {
		e.finiteBound = gr.Rect{}
		if e.boundType == BoundsNormal {
			e.genID = EmptyGenID
		} else {
			e.genID = WideOpenGenID
		}
	}
}

func flip(t BoundsType) BoundsType {
	if t == BoundsNormal {
		return BoundsInsideOut
	}
	return BoundsNormal
}

func intersectBounds(pb gr.Rect, pt BoundsType, cb gr.Rect, ct BoundsType) (gr.Rect, BoundsType) {
	switch {
	case pt == BoundsNormal && ct == BoundsNormal:
		return pb.Intersect(cb), BoundsNormal
	case pt == BoundsNormal:
		return pb, BoundsNormal
	case ct == BoundsNormal:
		return cb, BoundsNormal
	default:
		return pb.Union(cb), BoundsInsideOut
	}
}

func unionBounds(pb gr.Rect, pt BoundsType, cb gr.Rect, ct BoundsType) (gr.Rect, BoundsType) {
	switch {
	case pt == BoundsNormal && ct == BoundsNormal:
		return pb.Union(cb), BoundsNormal
	case pt == BoundsNormal:
		return cb, BoundsInsideOut
	case ct == BoundsNormal:
		return pb, BoundsInsideOut
	default:
		return pb.Intersect(cb), BoundsInsideOut
	}
}
