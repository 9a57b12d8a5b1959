package clip

import "github.com/gogpu/gr"

// InitialState is the clip state of pixels not touched by any reduced element.
type InitialState uint8

const (
	// AllIn means untouched pixels are inside the clip.
	AllIn InitialState = iota
	// AllOut means untouched pixels are outside the clip.
	AllOut
)

// String returns the state name.
func (s InitialState) String() string {
	if s == AllIn {
		return "AllIn"
	}
	return "AllOut"
}

// Reduced is the result of reducing a clip stack against query bounds.
// Elements are applied in order, starting from InitialState, and are only
// meaningful inside Bounds. Elements may refer to the stack's elements and
// are only valid until the stack changes.
type Reduced struct {
	Elements     []*Element
	InitialState InitialState
	Bounds       gr.IRect
	GenID        uint32
	RequiresAA   bool
}

// Reduce computes the minimal element list that reproduces the clip of s
// inside query. Bounds in the result is query, tightened where the stack
// bound allows it.
func Reduce(s *Stack, query gr.IRect) Reduced {
	res := Reduced{Bounds: query, GenID: s.TopmostGenID()}
	if s.IsWideOpen() {
		res.InitialState = AllIn
		return res
	}

	scalarQuery := query.Rect()
	stackBound, boundType, iior := s.Bounds()

	if boundType == BoundsNormal && !stackBound.Intersects(scalarQuery) {
		res.InitialState = AllOut
		res.GenID = EmptyGenID
		return res
	}
	if boundType == BoundsInsideOut && !stackBound.Intersects(scalarQuery) {
		res.InitialState = AllIn
		res.GenID = WideOpenGenID
		return res
	}

	if iior {
		// The top element is the intersection of every rect on the stack.
		if stackBound.Contains(scalarQuery) {
			res.InitialState = AllIn
			return res
		}
		isect := stackBound.Intersect(scalarQuery)
		res.Bounds = isect.RoundOut()
		if res.Bounds.Rect() == isect {
			// Rounding out added no area outside the clip rect.
			res.InitialState = AllIn
			return res
		}
		top := s.elements[len(s.elements)-1]
		res.InitialState = AllOut
		res.Elements = []*Element{NewRectElement(isect, OpReplace, top.aa)}
		res.RequiresAA = top.aa
		return res
	}

	if boundType == BoundsNormal {
		res.Bounds = query.Intersect(stackBound.RoundOut())
	}
	reduceWalk(s, res.Bounds.Rect(), &res)
	return res
}

// reduceWalk walks the stack from the top down until the state of the
// query rectangle is known, keeping elements that still affect it, then
// simplifies the head of the kept list.
func reduceWalk(s *Stack, bounds gr.Rect, res *Reduced) {
	const unknown InitialState = 0xff

	var (
		state      = unknown
		embiggens  bool // an element may turn outside pixels inside
		emsmallens bool // an element may turn inside pixels outside
		numAA      int
		kept       []*Element // top of stack first
	)

	for i := len(s.elements) - 1; state == unknown; i-- {
		if i < 0 {
			state = AllIn
			break
		}
		e := s.elements[i]
		switch e.genID {
		case EmptyGenID:
			state = AllOut
			continue
		case WideOpenGenID:
			state = AllIn
			continue
		}

		inverse := e.IsInverseFilled()
		contains := e.Contains(bounds)
		disjoint := !e.Bounds().Intersects(bounds)
		skippable, isFlip := false, false

		switch e.op {
		case OpDifference:
			if inverse {
				if contains {
					skippable = true
				} else if disjoint {
					state, skippable = AllOut, true
				}
			} else {
				if contains {
					state, skippable = AllOut, true
				} else if disjoint {
					skippable = true
				}
			}
			if !skippable {
				emsmallens = true
			}
		case OpIntersect:
			if inverse {
				if contains {
					state, skippable = AllOut, true
				} else if disjoint {
					skippable = true
				}
			} else {
				if contains {
					skippable = true
				} else if disjoint {
					state, skippable = AllOut, true
				}
			}
			if !skippable {
				emsmallens = true
			}
		case OpUnion:
			if inverse {
				if contains {
					skippable = true
				} else if disjoint {
					state, skippable = AllIn, true
				}
			} else {
				if contains {
					state, skippable = AllIn, true
				} else if disjoint {
					skippable = true
				}
			}
			if !skippable {
				embiggens = true
			}
		case OpXOR:
			if inverse {
				if contains {
					skippable = true
				} else if disjoint {
					isFlip = true
				}
			} else {
				if contains {
					isFlip = true
				} else if disjoint {
					skippable = true
				}
			}
			if !skippable {
				emsmallens, embiggens = true, true
			}
		case OpReverseDifference:
			if inverse {
				if contains {
					state, skippable = AllOut, true
				} else if disjoint {
					isFlip = true
				}
			} else {
				if contains {
					isFlip = true
				} else if disjoint {
					state, skippable = AllOut, true
				}
			}
			if !skippable {
				emsmallens, embiggens = true, true
			}
		case OpReplace:
			// Replace always ends the walk.
			if inverse {
				if contains {
					state, skippable = AllOut, true
				} else if disjoint {
					state, skippable = AllIn, true
				}
			} else {
				if contains {
					state, skippable = AllIn, true
				} else if disjoint {
					state, skippable = AllOut, true
				}
			}
			if !skippable {
				state = AllOut
				emsmallens, embiggens = true, true
			}
		}

		if skippable {
			continue
		}
		if len(kept) == 0 {
			res.GenID = e.genID
		}
		if isFlip {
			// Flipping every pixel of the bounds is a reverse difference
			// with a rect covering them.
			kept = append(kept, NewRectElement(bounds, OpReverseDifference, false))
			continue
		}
		ne := e
		if ne.aa {
			numAA++
		}
		// Intersecting an inverse shape is differencing the shape. Replacing
		// with an inverse shape is starting all in and differencing it.
		if inverse && (ne.op == OpIntersect || ne.op == OpReplace) {
			if ne.op == OpReplace {
				state = AllIn
			}
			ne = ne.withInvertedFill().withOp(OpDifference)
		}
		kept = append(kept, ne)
	}

	// Reverse to bottom-to-top order.
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}

	if (state == AllOut && !embiggens) || (state == AllIn && !emsmallens) {
		kept = nil
		numAA = 0
	} else {
		for len(kept) > 0 {
			e := kept[0]
			skippable := false
			switch e.op {
			case OpDifference:
				// Subtracting from the empty set yields the empty set.
				skippable = state == AllOut
			case OpIntersect:
				if state == AllOut {
					skippable = true
				} else {
					state = AllOut
					kept[0] = e.withOp(OpReplace)
				}
			case OpUnion:
				if state == AllIn {
					skippable = true
				} else {
					kept[0] = e.withOp(OpReplace)
				}
			case OpXOR:
				if state == AllOut {
					kept[0] = e.withOp(OpReplace)
				}
			case OpReverseDifference:
				if state == AllIn {
					// Subtracting the whole plane yields the empty set.
					skippable = true
					state = AllOut
				} else {
					if e.IsInverseFilled() {
						skippable = !e.Bounds().Intersects(bounds)
					} else {
						skippable = e.Contains(bounds)
					}
					if skippable {
						state = AllIn
					} else {
						kept[0] = e.withOp(OpReplace)
					}
				}
			case OpReplace:
			}
			if !skippable {
				break
			}
			if e.aa {
				numAA--
			}
			kept = kept[1:]
		}
	}

	res.Elements = kept
	res.InitialState = state
	res.RequiresAA = numAA > 0
	if len(kept) == 0 {
		if state == AllIn {
			res.GenID = WideOpenGenID
		} else {
			res.GenID = EmptyGenID
		}
	}
}
