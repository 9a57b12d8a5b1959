package clipmask

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr/gpu"
)

// MaskType is the representation chosen for a clip.
type MaskType uint8

const (
	// MaskNone means the clip needs no mask: it is absent, a scissor, or
	// a set of coverage processors.
	MaskNone MaskType = iota
	// MaskAlpha means an alpha mask texture is sampled as coverage.
	MaskAlpha
	// MaskStencil means the clip is held in the stencil clip bit.
	MaskStencil
)

// String returns the type name.
func (t MaskType) String() string {
	switch t {
	case MaskNone:
		return "None"
	case MaskAlpha:
		return "Alpha"
	case MaskStencil:
		return "Stencil"
	default:
		return "Unknown"
	}
}

// StencilClipMode says how draws treat the stencil clip bit.
type StencilClipMode uint8

const (
	// StencilIgnoreClip draws use only the user bits; clip-relative
	// functions behave as if every pixel were inside the clip.
	StencilIgnoreClip StencilClipMode = iota
	// StencilRespectClip draws only touch pixels with the clip bit set.
	StencilRespectClip
	// StencilModifyClip draws write the clip bit; their settings are used
	// unchanged.
	StencilModifyClip
)

// String returns the mode name.
func (m StencilClipMode) String() string {
	switch m {
	case StencilIgnoreClip:
		return "IgnoreClip"
	case StencilRespectClip:
		return "RespectClip"
	case StencilModifyClip:
		return "ModifyClip"
	default:
		return "Unknown"
	}
}

// clipRelativeToBasic maps each clip-relative function, in declaration
// order from StencilAlwaysIfInClip, to a basic one. The first row applies
// when the clip is ignored, the second when it is respected.
var clipRelativeToBasic = [2][5]gpu.StencilFunc{
	{gpu.StencilAlways, gpu.StencilEqual, gpu.StencilLess, gpu.StencilLEqual, gpu.StencilNotEqual},
	// NonZeroIfInClip becomes clipBit < clipBit|user.
	{gpu.StencilEqual, gpu.StencilEqual, gpu.StencilLess, gpu.StencilLEqual, gpu.StencilLess},
}

// AdjustStencilParams resolves clip-relative stencil functions for a
// buffer with stencilBits bits and confines masks and writes to the user
// bits. In StencilModifyClip mode settings are returned unchanged. A buffer
// without bits has no clip bit, so functions resolve as if the clip were
// ignored and masks are kept. Without two-sided support the resolved front
// face is copied to the back.
func AdjustStencilParams(settings gpu.StencilSettings, mode StencilClipMode, stencilBits int, twoSided bool) gpu.StencilSettings {
	if mode == StencilModifyClip {
		return settings
	}
	adjust := func(f gpu.StencilFace) gpu.StencilFace {
		f.Func = basicFunc(f.Func, false)
		return f
	}
	if stencilBits > 0 {
		clipBit := uint16(1) << (stencilBits - 1)
		respect := mode == StencilRespectClip
		adjust = func(f gpu.StencilFace) gpu.StencilFace {
			return adjustFace(f, respect, clipBit, clipBit-1)
		}
	}

	settings.Front = adjust(settings.Front)
	if twoSided {
		settings.Back = adjust(settings.Back)
	} else {
		settings.Back = settings.Front
	}
	return settings
}

// basicFunc maps fn to the function used when the clip is respected or
// ignored. Basic functions are returned as is.
func basicFunc(fn gpu.StencilFunc, respect bool) gpu.StencilFunc {
	if !fn.IsClipRelative() {
		return fn
	}
	row := 0
	if respect {
		row = 1
	}
	return clipRelativeToBasic[row][fn-gpu.StencilAlwaysIfInClip]
}

func adjustFace(f gpu.StencilFace, respect bool, clipBit, userBits uint16) gpu.StencilFace {
	f.WriteMask &= userBits
	if !f.Func.IsClipRelative() {
		f.FuncMask &= userBits
		f.FuncRef &= userBits
		return f
	}
	if respect {
		switch f.Func {
		case gpu.StencilAlwaysIfInClip:
			f.FuncMask = clipBit
			f.FuncRef = clipBit
		case gpu.StencilNonZeroIfInClip:
			f.FuncMask = f.FuncMask&userBits | clipBit
			f.FuncRef = clipBit
		default:
			f.FuncMask = f.FuncMask&userBits | clipBit
			f.FuncRef = f.FuncRef&userBits | clipBit
		}
	} else {
		f.FuncMask &= userBits
		f.FuncRef &= userBits
	}
	f.Func = basicFunc(f.Func, respect)
	return f
}

// applyClipSettings tests against the stencil clip and ignores the user
// bits.
var applyClipSettings = gpu.SameStencil(
	gputypes.StencilOperationKeep, gputypes.StencilOperationKeep, gpu.StencilAlwaysIfInClip, 0, 0, 0)
