package clipmask

import (
	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// Setup describes how SetupClipping changed a draw state. Restore undoes
// every change.
type Setup struct {
	// MaskType is the mask the draw is clipped by.
	MaskType MaskType
	// StencilMode is the mode the draw's stencil settings were resolved
	// with.
	StencilMode StencilClipMode

	// HasScissor reports whether a scissor was installed.
	HasScissor bool
	// Scissor is the installed scissor in device space.
	Scissor gr.IRect

	// Mask is the alpha mask sampled by the draw when MaskType is
	// MaskAlpha. It is owned by the manager's cache.
	Mask gpu.Texture

	// Coverage is the number of coverage processors added to the draw.
	Coverage int

	twoSided bool

	effects gpu.EffectsGuard
	stencil gpu.StencilGuard
	scissor gpu.ScissorGuard
}

func newSetup(ds *gpu.DrawState, twoSided bool) *Setup {
	return &Setup{
		twoSided: twoSided,
		effects:  ds.SaveEffects(),
		stencil:  ds.SaveStencil(),
		scissor:  ds.SaveScissor(),
	}
}

// Restore removes the clip from the draw state: added processors are
// dropped and the stencil settings and scissor are put back. It is safe
// to call more than once.
func (s *Setup) Restore() {
	if s == nil {
		return
	}
	s.effects.Restore()
	s.stencil.Restore()
	s.scissor.Restore()
}

// AdjustPathStencilParams resolves settings a path renderer writes directly
// to the stencil buffer so they honour the clip this setup installed. It
// does nothing without a stencil buffer.
func (s *Setup) AdjustPathStencilParams(sb *gpu.StencilBuffer, settings *gpu.StencilSettings) {
	if sb == nil {
		return
	}
	*settings = AdjustStencilParams(*settings, s.StencilMode, sb.Bits(), s.twoSided)
}

func (s *Setup) setScissor(ds *gpu.DrawState, r gr.IRect) {
	ds.SetScissor(r)
	s.HasScissor = true
	s.Scissor = r
}
