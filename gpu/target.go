package gpu

import (
	"github.com/gogpu/gr"
)

// Caps describes optional device features.
type Caps struct {
	// TwoSidedStencil reports per-face stencil state support.
	TwoSidedStencil bool
	// StencilWrapOps reports support for wrapping increment and decrement.
	StencilWrapOps bool
	// MaxTextureSize bounds both texture dimensions; zero means unbounded.
	MaxTextureSize int
}

// Target executes draws. Geometry passed to DrawRect, DrawPath and
// StencilPath is transformed by the state's view matrix.
type Target interface {
	Caps() Caps

	// Clear writes color (0xAARRGGBB) to rect of rt, ignoring all state.
	Clear(rt RenderTarget, rect gr.IRect, color uint32) error
	// ClearStencilClip sets every stencil value in rect to the clip bit
	// when insideClip is true and to zero otherwise.
	ClearStencilClip(rt RenderTarget, rect gr.IRect, insideClip bool) error

	DrawRect(ds *DrawState, r gr.Rect, aa bool) error
	DrawPath(ds *DrawState, p *gr.Path, aa bool) error
	// StencilPath increments the user stencil bits inside p, with the
	// path's fill rule, without touching colour.
	StencilPath(ds *DrawState, p *gr.Path) error
}
