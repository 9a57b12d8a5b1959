package gpu

import (
	"github.com/gogpu/gr"
)

// Processor is a fragment stage that modulates a draw. Eval returns a
// factor in [0,1] for the device-space sample point p (a pixel centre).
type Processor interface {
	Name() string
	Eval(p gr.Point) float64
}

// DrawState is the per-draw pipeline state: target, transform, colour,
// blend, stencil, scissor and the colour and coverage processor stages.
type DrawState struct {
	RenderTarget RenderTarget
	ViewMatrix   gr.Matrix

	// Alpha is the draw colour; masks only carry alpha.
	Alpha uint8
	Blend Blend

	Stencil StencilSettings

	ScissorEnabled bool
	Scissor        gr.IRect

	// ClipEnabled asks the clip-mask manager to apply the current clip.
	ClipEnabled bool

	// NoColorWrites disables writes to the colour attachment.
	NoColorWrites bool

	color    []Processor
	coverage []Processor
}

// NewDrawState returns a state targeting rt with an identity view matrix,
// opaque alpha and replace blending.
func NewDrawState(rt RenderTarget) *DrawState {
	return &DrawState{
		RenderTarget: rt,
		ViewMatrix:   gr.Identity(),
		Alpha:        0xff,
		Blend:        BlendReplace,
	}
}

// AddColorProcessor appends a colour stage.
func (ds *DrawState) AddColorProcessor(p Processor) {
	ds.color = append(ds.color, p)
}

// AddCoverageProcessor appends a coverage stage.
func (ds *DrawState) AddCoverageProcessor(p Processor) {
	ds.coverage = append(ds.coverage, p)
}

// ColorProcessors returns the colour stages in order.
func (ds *DrawState) ColorProcessors() []Processor { return ds.color }

// CoverageProcessors returns the coverage stages in order.
func (ds *DrawState) CoverageProcessors() []Processor { return ds.coverage }

// NumProcessors returns the total number of stages.
func (ds *DrawState) NumProcessors() int { return len(ds.color) + len(ds.coverage) }

// Clone returns a copy that does not share processor storage with ds.
func (ds *DrawState) Clone() *DrawState {
	c := *ds
	c.color = append([]Processor(nil), ds.color...)
	c.coverage = append([]Processor(nil), ds.coverage...)
	return &c
}

// EffectsGuard restores the processor stages of a DrawState to the point
// where it was taken.
type EffectsGuard struct {
	ds       *DrawState
	color    int
	coverage int
}

// SaveEffects records the current processor stages.
func (ds *DrawState) SaveEffects() EffectsGuard {
	return EffectsGuard{ds: ds, color: len(ds.color), coverage: len(ds.coverage)}
}

// Restore drops every stage added since SaveEffects. It is safe to call
// more than once and on the zero guard.
func (g *EffectsGuard) Restore() {
	if g.ds == nil {
		return
	}
	clear(g.ds.color[g.color:])
	clear(g.ds.coverage[g.coverage:])
	g.ds.color = g.ds.color[:g.color]
	g.ds.coverage = g.ds.coverage[:g.coverage]
	g.ds = nil
}

// StencilGuard restores the stencil settings of a DrawState.
type StencilGuard struct {
	ds    *DrawState
	saved StencilSettings
}

// SaveStencil records the current stencil settings.
func (ds *DrawState) SaveStencil() StencilGuard {
	return StencilGuard{ds: ds, saved: ds.Stencil}
}

// Restore reinstates the recorded settings. It is safe to call more than
// once and on the zero guard.
func (g *StencilGuard) Restore() {
	if g.ds == nil {
		return
	}
	g.ds.Stencil = g.saved
	g.ds = nil
}

// SetScissor enables the scissor test with r.
func (ds *DrawState) SetScissor(r gr.IRect) {
	ds.ScissorEnabled = true
	ds.Scissor = r
}

// ScissorGuard restores the scissor of a DrawState.
type ScissorGuard struct {
	ds      *DrawState
	enabled bool
	rect    gr.IRect
}

// SaveScissor records the current scissor.
func (ds *DrawState) SaveScissor() ScissorGuard {
	return ScissorGuard{ds: ds, enabled: ds.ScissorEnabled, rect: ds.Scissor}
}

// Restore reinstates the recorded scissor.
func (g *ScissorGuard) Restore() {
	if g.ds == nil {
		return
	}
	g.ds.ScissorEnabled = g.enabled
	g.ds.Scissor = g.rect
	g.ds = nil
}
