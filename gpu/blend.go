package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr/clip"
)

// Blend is a pair of blend coefficients: out = src*Src + dst*Dst.
type Blend struct {
	Src gputypes.BlendFactor
	Dst gputypes.BlendFactor
}

// BlendReplace overwrites the destination.
var BlendReplace = Blend{Src: gputypes.BlendFactorOne, Dst: gputypes.BlendFactorZero}

// ClipOpBlend returns the coefficients that combine a coverage value into
// an alpha mask with op.
func ClipOpBlend(op clip.Op) Blend {
	switch op {
	case clip.OpIntersect:
		return Blend{Src: gputypes.BlendFactorDstAlpha, Dst: gputypes.BlendFactorZero}
	case clip.OpUnion:
		return Blend{Src: gputypes.BlendFactorOne, Dst: gputypes.BlendFactorOneMinusSrcAlpha}
	case clip.OpXOR:
		return Blend{Src: gputypes.BlendFactorOneMinusDstAlpha, Dst: gputypes.BlendFactorOneMinusSrcAlpha}
	case clip.OpDifference:
		return Blend{Src: gputypes.BlendFactorZero, Dst: gputypes.BlendFactorOneMinusSrcAlpha}
	case clip.OpReverseDifference:
		return Blend{Src: gputypes.BlendFactorOneMinusDstAlpha, Dst: gputypes.BlendFactorZero}
	default:
		return BlendReplace
	}
}

// BlendState lowers the coefficients to a WebGPU blend state applied to
// every channel.
func (b Blend) BlendState() gputypes.BlendState {
	c := gputypes.BlendComponent{SrcFactor: b.Src, DstFactor: b.Dst, Operation: gputypes.BlendOperationAdd}
	return gputypes.BlendState{Color: c, Alpha: c}
}

// Factor evaluates a blend factor for alpha-only colours.
func Factor(f gputypes.BlendFactor, srcAlpha, dstAlpha float64) float64 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc, gputypes.BlendFactorSrcAlpha:
		return srcAlpha
	case gputypes.BlendFactorOneMinusSrc, gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - srcAlpha
	case gputypes.BlendFactorDst, gputypes.BlendFactorDstAlpha:
		return dstAlpha
	case gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dstAlpha
	default:
		return 0
	}
}

// Apply blends alpha values in [0,1].
func (b Blend) Apply(src, dst float64) float64 {
	out := src*Factor(b.Src, src, dst) + dst*Factor(b.Dst, src, dst)
	switch {
	case out < 0:
		return 0
	case out > 1:
		return 1
	}
	return out
}
