package clip

import "github.com/gogpu/gr"

// Stack manages hierarchical clip elements with save/restore scoping.
// The zero value is not usable; create stacks with NewStack.
type Stack struct {
	elements  []*Element
	saveCount int
}

// NewStack creates an empty (wide open) clip stack.
func NewStack() *Stack {
	return &Stack{
		elements: make([]*Element, 0, 8), // Pre-allocate for common case
	}
}

// Save starts a new scope. Elements pushed after Save are removed by the
// matching Restore.
func (s *Stack) Save() {
	s.saveCount++
}

// Restore removes every element pushed since the matching Save.
// Restoring with no open scope is a no-op.
func (s *Stack) Restore() {
	if s.saveCount == 0 {
		return
	}
	s.saveCount--
	s.restoreTo(s.saveCount)
}

func (s *Stack) restoreTo(saveCount int) {
	n := len(s.elements)
	for n > 0 && s.elements[n-1].saveCount > saveCount {
		n--
	}
	clear(s.elements[n:])
	s.elements = s.elements[:n]
}

// SaveCount returns the number of open Save scopes.
func (s *Stack) SaveCount() int { return s.saveCount }

// Len returns the number of elements on the stack.
func (s *Stack) Len() int { return len(s.elements) }

// Elements returns the elements from bottom to top. Callers must not modify
// the returned slice.
func (s *Stack) Elements() []*Element { return s.elements }

// Reset removes every element and closes every scope.
func (s *Stack) Reset() {
	clear(s.elements)
	s.elements = s.elements[:0]
	s.saveCount = 0
}

// ClipRect combines a rectangle with the current clip.
func (s *Stack) ClipRect(r gr.Rect, op Op, aa bool) {
	s.push(NewRectElement(r, op, aa))
}

// ClipRRect combines a rounded rectangle with the current clip.
func (s *Stack) ClipRRect(rr gr.RRect, op Op, aa bool) {
	s.push(NewRRectElement(rr, op, aa))
}

// ClipPath combines a path with the current clip. The path is copied.
// A path that is exactly a non-inverse rectangle is stored as a rectangle.
func (s *Stack) ClipPath(p *gr.Path, op Op, aa bool) {
	if r, ok := p.AsRect(); ok && !p.IsInverseFillType() {
		s.ClipRect(r, op, aa)
		return
	}
	s.push(NewPathElement(p, op, aa))
}

// ClipEmpty clips out everything in the current scope.
func (s *Stack) ClipEmpty() {
	if n := len(s.elements); n > 0 {
		top := s.elements[n-1]
		if top.saveCount == s.saveCount && top.kind == TypeEmpty {
			return
		}
	}
	s.elements = append(s.elements, s.newEmpty())
}

func (s *Stack) newEmpty() *Element {
	return &Element{
		kind:      TypeEmpty,
		op:        OpIntersect,
		genID:     EmptyGenID,
		saveCount: s.saveCount,
		boundType: BoundsNormal,
	}
}

// push places a detached element on the stack, folding it into the top
// element when the result can be expressed by one element.
func (s *Stack) push(e *Element) {
	e.saveCount = s.saveCount

	var prior *Element
	if n := len(s.elements); n > 0 {
		prior = s.elements[n-1]
	}
	if prior != nil {
		switch {
		case prior.kind == TypeEmpty && (e.op == OpIntersect || e.op == OpDifference):
			return
		case prior.saveCount == s.saveCount && prior.op == OpIntersect && e.op == OpIntersect:
			if s.intersectInPlace(prior, e) {
				return
			}
		case e.op == OpReplace:
			s.restoreTo(s.saveCount - 1)
			prior = nil
			if n := len(s.elements); n > 0 {
				prior = s.elements[n-1]
			}
		}
	}

	e.updateBoundAndGenID(prior)
	s.elements = append(s.elements, e)
}

// intersectInPlace merges e into the top element prior. It reports whether
// e was consumed.
func (s *Stack) intersectInPlace(prior, e *Element) bool {
	top := len(s.elements) - 1
	if prior.kind == TypeRect && e.kind == TypeRect {
		if !prior.rectRectIntersectAllowed(e.rect, e.aa) {
			return false
		}
		isect := prior.rect.Intersect(e.rect)
		if isect.IsEmpty() {
			s.elements[top] = s.newEmpty()
			return true
		}
		aa := e.aa
		if e.rect.Contains(prior.rect) {
			aa = prior.aa
		}
		merged := NewRectElement(isect, OpIntersect, aa)
		merged.saveCount = prior.saveCount
		var below *Element
		if top > 0 {
			below = s.elements[top-1]
		}
		merged.updateBoundAndGenID(below)
		s.elements[top] = merged
		return true
	}
	if prior.IsInverseFilled() || e.IsInverseFilled() {
		return false
	}
	if !prior.Bounds().Intersects(e.Bounds()) {
		s.elements[top] = s.newEmpty()
		return true
	}
	return false
}

// Bounds returns the conservative bound of the whole clip, its type, and
// whether the clip is a single rectangle.
func (s *Stack) Bounds() (bound gr.Rect, boundType BoundsType, isIntersectionOfRects bool) {
	n := len(s.elements)
	if n == 0 {
		return gr.Rect{}, BoundsInsideOut, false
	}
	top := s.elements[n-1]
	return top.finiteBound, top.boundType, top.iior
}

// TopmostGenID returns the generation id of the top element, or
// WideOpenGenID for an empty stack.
func (s *Stack) TopmostGenID() uint32 {
	n := len(s.elements)
	if n == 0 {
		return WideOpenGenID
	}
	return s.elements[n-1].genID
}

// IsWideOpen reports whether the clip excludes nothing.
func (s *Stack) IsWideOpen() bool {
	return s.TopmostGenID() == WideOpenGenID
}

// Data pairs a clip stack with the offset of the device origin in clip
// space: device pixel (x, y) is clip-space point (x+Origin.X, y+Origin.Y).
type Data struct {
	Stack  *Stack
	Origin gr.IPoint
}
