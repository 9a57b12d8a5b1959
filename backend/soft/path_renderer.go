package soft

import (
	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// DefaultPathRenderers returns the chain used when WithPathRenderers is
// not given: anti-aliased convex paths, then aliased paths of any shape.
// Anti-aliased concave paths have no renderer.
func DefaultPathRenderers() *gpu.PathRendererChain {
	return gpu.NewPathRendererChain(AAConvexRenderer{}, DefaultRenderer{})
}

// AAConvexRenderer draws anti-aliased convex paths. It cannot stencil.
type AAConvexRenderer struct{}

// Name implements gpu.PathRenderer.
func (AAConvexRenderer) Name() string { return "aaconvex" }

// CanDrawPath implements gpu.PathRenderer.
func (AAConvexRenderer) CanDrawPath(p *gr.Path, aa bool) bool {
	return aa && !p.IsInverseFillType() && p.IsConvex()
}

// StencilSupport implements gpu.PathRenderer.
func (AAConvexRenderer) StencilSupport(*gr.Path) gpu.StencilSupport { return gpu.StencilNone }

// DrawPath implements gpu.PathRenderer.
func (AAConvexRenderer) DrawPath(t gpu.Target, ds *gpu.DrawState, p *gr.Path, aa bool) error {
	return t.DrawPath(ds, p, aa)
}

// StencilPath implements gpu.PathRenderer.
func (AAConvexRenderer) StencilPath(gpu.Target, *gpu.DrawState, *gr.Path) error {
	return ErrStencilUnsupported
}

// DefaultRenderer draws aliased paths. Convex paths honour any stencil
// settings; other paths can only be stencilled.
type DefaultRenderer struct{}

// Name implements gpu.PathRenderer.
func (DefaultRenderer) Name() string { return "default" }

// CanDrawPath implements gpu.PathRenderer.
func (DefaultRenderer) CanDrawPath(_ *gr.Path, aa bool) bool { return !aa }

// StencilSupport implements gpu.PathRenderer.
func (DefaultRenderer) StencilSupport(p *gr.Path) gpu.StencilSupport {
	if !p.IsInverseFillType() && p.IsConvex() {
		return gpu.StencilNoRestriction
	}
	return gpu.StencilOnlySupport
}

// DrawPath implements gpu.PathRenderer.
func (DefaultRenderer) DrawPath(t gpu.Target, ds *gpu.DrawState, p *gr.Path, _ bool) error {
	return t.DrawPath(ds, p, false)
}

// StencilPath implements gpu.PathRenderer.
func (DefaultRenderer) StencilPath(t gpu.Target, ds *gpu.DrawState, p *gr.Path) error {
	return t.StencilPath(ds, p)
}

// AnyRenderer draws every path, anti-aliased or not, with no stencil
// restriction. It models a device with a fully general path renderer.
type AnyRenderer struct{}

// Name implements gpu.PathRenderer.
func (AnyRenderer) Name() string { return "any" }

// CanDrawPath implements gpu.PathRenderer.
func (AnyRenderer) CanDrawPath(*gr.Path, bool) bool { return true }

// StencilSupport implements gpu.PathRenderer.
func (AnyRenderer) StencilSupport(*gr.Path) gpu.StencilSupport { return gpu.StencilNoRestriction }

// DrawPath implements gpu.PathRenderer.
func (AnyRenderer) DrawPath(t gpu.Target, ds *gpu.DrawState, p *gr.Path, aa bool) error {
	return t.DrawPath(ds, p, aa)
}

// StencilPath implements gpu.PathRenderer.
func (AnyRenderer) StencilPath(t gpu.Target, ds *gpu.DrawState, p *gr.Path) error {
	return t.StencilPath(ds, p)
}
