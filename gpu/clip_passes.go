package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr/clip"
)

// MaxStencilClipPasses is the largest number of passes ClipPasses returns.
const MaxStencilClipPasses = 2

const (
	opKeep    = gputypes.StencilOperationKeep
	opZero    = gputypes.StencilOperationZero
	opReplace = gputypes.StencilOperationReplace
	opInvert  = gputypes.StencilOperationInvert
	opIncr    = gputypes.StencilOperationIncrementClamp
)

// StencilInElement writes 0xffff into the stencil wherever the element is
// drawn, regardless of the stored value.
var StencilInElement = SameStencil(opReplace, opReplace, StencilAlways, 0xffff, 0xffff, 0xffff)

// StencilDrawOutsideElement passes where the stencil is zero and zeroes
// everything it touches.
var StencilDrawOutsideElement = SameStencil(opZero, opZero, StencilEqual, 0xffff, 0x0000, 0xffff)

// StencilCountElement increments the stored value once per covered sample.
// It is the first pass of an element that cannot be drawn directly to the
// clip bit.
var StencilCountElement = SameStencil(opIncr, opIncr, StencilAlways, 0xffff, 0x0000, 0xffff)

// ClipPasses returns the stencil settings that combine an element into the
// clip bit with op. clipBit is the single clip bit of the buffer.
//
// When direct is true every pass draws the element itself. Otherwise the
// element has already been counted into the user bits with
// StencilCountElement and every pass draws the clip bounds; invertedFill
// then selects the pixels whose user bits are zero. Every sequence leaves
// the user bits zero.
func ClipPasses(op clip.Op, canBeDirect bool, clipBit uint16, invertedFill bool) (passes []StencilSettings, direct bool) {
	c := clipBit
	u := 0xffff &^ c

	if canBeDirect && !invertedFill {
		switch op {
		case clip.OpReplace, clip.OpUnion:
			return []StencilSettings{SameStencil(opReplace, opReplace, StencilAlways, 0xffff, c, c)}, true
		case clip.OpXOR:
			return []StencilSettings{SameStencil(opInvert, opInvert, StencilAlways, 0xffff, 0, c)}, true
		case clip.OpDifference:
			return []StencilSettings{SameStencil(opZero, opZero, StencilAlways, 0xffff, 0, c)}, true
		}
	}

	pick := func(normal, inverted StencilFunc) StencilFunc {
		if invertedFill {
			return inverted
		}
		return normal
	}

	switch op {
	case clip.OpReplace:
		return []StencilSettings{
			SameStencil(opReplace, opZero, pick(StencilLess, StencilEqual), u, c, 0xffff),
		}, false
	case clip.OpIntersect:
		return []StencilSettings{
			SameStencil(opReplace, opZero, pick(StencilLess, StencilEqual), 0xffff, c, 0xffff),
		}, false
	case clip.OpDifference:
		return []StencilSettings{
			SameStencil(opReplace, opZero, pick(StencilEqual, StencilLess), 0xffff, c, 0xffff),
		}, false
	case clip.OpUnion:
		if invertedFill {
			return []StencilSettings{
				SameStencil(opReplace, opKeep, StencilEqual, u, c, c),
				SameStencil(opZero, opZero, StencilAlways, 0xffff, 0, u),
			}, false
		}
		return []StencilSettings{
			SameStencil(opReplace, opKeep, StencilLEqual, u, c|1, 0xffff),
			SameStencil(opReplace, opZero, StencilLEqual, 0xffff, c, 0xffff),
		}, false
	case clip.OpXOR:
		return []StencilSettings{
			SameStencil(opInvert, opKeep, StencilEqual, u, 0, 0xffff),
			SameStencil(opReplace, opZero, pick(StencilGreater, StencilLess), 0xffff, c, 0xffff),
		}, false
	case clip.OpReverseDifference:
		if invertedFill {
			return []StencilSettings{
				SameStencil(opInvert, opZero, StencilEqual, 0xffff, 0, c),
				SameStencil(opZero, opZero, StencilAlways, 0xffff, 0, u),
			}, false
		}
		return []StencilSettings{
			SameStencil(opInvert, opZero, StencilLess, u, c, 0xffff),
			SameStencil(opReplace, opZero, StencilEqual, c, c, 0xffff),
		}, false
	}
	return nil, false
}
