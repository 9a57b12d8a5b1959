package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// StencilFunc is a stencil comparison. The basic functions compare
// (ref & mask) against (stencil & mask). The clip-relative functions also
// require the pixel to be inside the stencil clip and must be resolved by
// the clip-mask manager before a draw.
type StencilFunc uint8

const (
	StencilAlways StencilFunc = iota
	StencilNever
	StencilGreater
	StencilGEqual
	StencilLess
	StencilLEqual
	StencilEqual
	StencilNotEqual

	StencilAlwaysIfInClip
	StencilEqualIfInClip
	StencilLessIfInClip
	StencilLEqualIfInClip
	StencilNonZeroIfInClip
)

var stencilFuncNames = [...]string{
	StencilAlways:          "Always",
	StencilNever:           "Never",
	StencilGreater:         "Greater",
	StencilGEqual:          "GEqual",
	StencilLess:            "Less",
	StencilLEqual:          "LEqual",
	StencilEqual:           "Equal",
	StencilNotEqual:        "NotEqual",
	StencilAlwaysIfInClip:  "AlwaysIfInClip",
	StencilEqualIfInClip:   "EqualIfInClip",
	StencilLessIfInClip:    "LessIfInClip",
	StencilLEqualIfInClip:  "LEqualIfInClip",
	StencilNonZeroIfInClip: "NonZeroIfInClip",
}

func (f StencilFunc) String() string {
	if int(f) < len(stencilFuncNames) {
		return stencilFuncNames[f]
	}
	return "Unknown"
}

// IsClipRelative reports whether f depends on the stencil clip.
func (f StencilFunc) IsClipRelative() bool { return f >= StencilAlwaysIfInClip }

// Compare returns the WebGPU comparison for a basic function.
// Clip-relative functions map to CompareFunctionUndefined.
func (f StencilFunc) Compare() gputypes.CompareFunction {
	switch f {
	case StencilAlways:
		return gputypes.CompareFunctionAlways
	case StencilNever:
		return gputypes.CompareFunctionNever
	case StencilGreater:
		return gputypes.CompareFunctionGreater
	case StencilGEqual:
		return gputypes.CompareFunctionGreaterEqual
	case StencilLess:
		return gputypes.CompareFunctionLess
	case StencilLEqual:
		return gputypes.CompareFunctionLessEqual
	case StencilEqual:
		return gputypes.CompareFunctionEqual
	case StencilNotEqual:
		return gputypes.CompareFunctionNotEqual
	default:
		return gputypes.CompareFunctionUndefined
	}
}

// Test evaluates the comparison for a stored stencil value. Unresolved
// clip-relative functions behave as if the pixel were inside the clip.
func (f StencilFunc) Test(ref, mask, value uint16) bool {
	r, v := ref&mask, value&mask
	switch f {
	case StencilAlways, StencilAlwaysIfInClip:
		return true
	case StencilNever:
		return false
	case StencilGreater:
		return r > v
	case StencilGEqual:
		return r >= v
	case StencilLess, StencilLessIfInClip:
		return r < v
	case StencilLEqual, StencilLEqualIfInClip:
		return r <= v
	case StencilEqual, StencilEqualIfInClip:
		return r == v
	case StencilNotEqual, StencilNonZeroIfInClip:
		return r != v
	default:
		return false
	}
}

// ApplyStencilOp computes the new stencil value for op. maxValue is the
// largest value the buffer can hold. The write mask is applied by the caller.
func ApplyStencilOp(op gputypes.StencilOperation, value, ref, maxValue uint16) uint16 {
	switch op {
	case gputypes.StencilOperationZero:
		return 0
	case gputypes.StencilOperationReplace:
		return ref
	case gputypes.StencilOperationInvert:
		return ^value & maxValue
	case gputypes.StencilOperationIncrementClamp:
		if value >= maxValue {
			return maxValue
		}
		return value + 1
	case gputypes.StencilOperationDecrementClamp:
		if value == 0 {
			return 0
		}
		return value - 1
	case gputypes.StencilOperationIncrementWrap:
		if value >= maxValue {
			return 0
		}
		return value + 1
	case gputypes.StencilOperationDecrementWrap:
		if value == 0 {
			return maxValue
		}
		return value - 1
	default:
		return value
	}
}

// StencilFace holds the stencil state of one polygon face.
type StencilFace struct {
	PassOp    gputypes.StencilOperation
	FailOp    gputypes.StencilOperation
	Func      StencilFunc
	FuncMask  uint16
	FuncRef   uint16
	WriteMask uint16
}

func (f StencilFace) String() string {
	return fmt.Sprintf("{%v %v %v mask=%#04x ref=%#04x write=%#04x}",
		f.PassOp, f.FailOp, f.Func, f.FuncMask, f.FuncRef, f.WriteMask)
}

// StencilSettings is the stencil state of a draw. The zero value disables
// the stencil test.
type StencilSettings struct {
	Front StencilFace
	Back  StencilFace
}

// DisabledStencil is the stencil state of a draw that ignores the stencil.
var DisabledStencil StencilSettings

// SameStencil returns settings with identical front and back faces.
func SameStencil(pass, fail gputypes.StencilOperation, fn StencilFunc, funcMask, funcRef, writeMask uint16) StencilSettings {
	face := StencilFace{
		PassOp:    pass,
		FailOp:    fail,
		Func:      fn,
		FuncMask:  funcMask,
		FuncRef:   funcRef,
		WriteMask: writeMask,
	}
	return StencilSettings{Front: face, Back: face}
}

// IsDisabled reports whether the stencil test is off.
func (s StencilSettings) IsDisabled() bool { return s == StencilSettings{} }

// IsTwoSided reports whether the faces differ.
func (s StencilSettings) IsTwoSided() bool { return s.Front != s.Back }

// DoesWrite reports whether a draw with these settings can modify the
// stencil buffer.
func (s StencilSettings) DoesWrite() bool {
	writes := func(f StencilFace) bool {
		if f.WriteMask == 0 {
			return false
		}
		return f.PassOp != gputypes.StencilOperationKeep || f.FailOp != gputypes.StencilOperationKeep
	}
	return !s.IsDisabled() && (writes(s.Front) || writes(s.Back))
}

// UsesWrapOp reports whether any face uses a wrapping increment or decrement.
func (s StencilSettings) UsesWrapOp() bool {
	wrap := func(op gputypes.StencilOperation) bool {
		return op == gputypes.StencilOperationIncrementWrap || op == gputypes.StencilOperationDecrementWrap
	}
	return wrap(s.Front.PassOp) || wrap(s.Front.FailOp) || wrap(s.Back.PassOp) || wrap(s.Back.FailOp)
}

// IsResolved reports whether no face uses a clip-relative function.
func (s StencilSettings) IsResolved() bool {
	return !s.Front.Func.IsClipRelative() && !s.Back.Func.IsClipRelative()
}

func (s StencilSettings) String() string {
	if s.IsDisabled() {
		return "stencil(disabled)"
	}
	if !s.IsTwoSided() {
		return "stencil" + s.Front.String()
	}
	return fmt.Sprintf("stencil(front=%v back=%v)", s.Front, s.Back)
}

// DepthStencilState lowers resolved settings to a WebGPU depth-stencil
// state and the stencil reference to set on the render pass. WebGPU shares
// masks and reference between faces, so the front face values are used.
func (s StencilSettings) DepthStencilState(format gputypes.TextureFormat) (gputypes.DepthStencilState, uint32, error) {
	if !s.IsResolved() {
		return gputypes.DepthStencilState{}, 0, fmt.Errorf("gpu: stencil has unresolved clip-relative function: %v", s)
	}
	face := func(f StencilFace) gputypes.StencilFaceState {
		return gputypes.StencilFaceState{
			Compare:     f.Func.Compare(),
			FailOp:      f.FailOp,
			DepthFailOp: gputypes.StencilOperationKeep,
			PassOp:      f.PassOp,
		}
	}
	state := gputypes.DepthStencilState{
		Format:       format,
		DepthCompare: gputypes.CompareFunctionAlways,
	}
	if s.IsDisabled() {
		state.StencilFront = gputypes.DefaultStencilFaceState()
		state.StencilBack = gputypes.DefaultStencilFaceState()
		return state, 0, nil
	}
	state.StencilFront = face(s.Front)
	state.StencilBack = face(s.Back)
	state.StencilReadMask = uint32(s.Front.FuncMask)
	state.StencilWriteMask = uint32(s.Front.WriteMask)
	return state, uint32(s.Front.FuncRef), nil
}
