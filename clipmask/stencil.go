package clipmask

import (
	"fmt"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
)

// createStencilClipMask renders elements into the clip bit of rt's stencil
// buffer over bounds, a clip-space rectangle; offset maps clip space to
// device space. The user bits are zero afterwards. Nothing is drawn when
// the buffer already holds this clip.
func (m *Manager) createStencilClipMask(rt gpu.RenderTarget, genID uint32, initial clip.InitialState, elements []*clip.Element, bounds gr.IRect, offset gr.IPoint) (err error) {
	sb := rt.StencilBuffer()
	if sb == nil {
		return ErrNoStencilBuffer
	}
	if !sb.MustRenderClip(genID, bounds, offset) {
		m.logger().Debug("clipmask: stencil clip reused", "genID", genID, "bounds", bounds)
		return nil
	}
	defer func() {
		if err != nil {
			sb.InvalidateClip()
			return
		}
		sb.SetLastClip(genID, bounds, offset)
	}()

	matrix := gr.Translate(float64(offset.X), float64(offset.Y))
	stencilBounds := bounds.Offset(offset)
	clipBit := sb.ClipBit()
	twoSided := m.target.Caps().TwoSidedStencil

	if err := m.target.ClearStencilClip(rt, stencilBounds, initial == clip.AllIn); err != nil {
		return err
	}
	// Counting into the user bits ignores the clip.
	countElement := AdjustStencilParams(gpu.StencilCountElement, StencilIgnoreClip, sb.Bits(), twoSided)

	for _, e := range elements {
		ds := maskDrawState(rt, matrix, stencilBounds)
		ds.NoColorWrites = true

		var (
			pr           gpu.PathRenderer
			path         *gr.Path
			support      = gpu.StencilNoRestriction
			fillInverted bool
		)
		if !rectLike(e) {
			path = e.AsPath()
			fillInverted = path.IsInverseFillType()
			if fillInverted {
				path.ToggleInverseFillType()
			}
			pr, support = m.chain.Lookup(path, gpu.DrawStencilOnly)
			if pr == nil {
				return noRenderer(e, gpu.DrawStencilOnly)
			}
		}

		canRenderDirect := support == gpu.StencilNoRestriction
		passes, direct := gpu.ClipPasses(e.Op(), canRenderDirect, clipBit, fillInverted)

		if !direct {
			ds.Stencil = countElement
			switch {
			case path == nil:
				err = m.target.DrawRect(ds, e.Rect(), false)
			case path.IsEmpty():
			case canRenderDirect:
				err = pr.DrawPath(m.target, ds, path, false)
			default:
				err = pr.StencilPath(m.target, ds, path)
			}
			if err != nil {
				return fmt.Errorf("clipmask: stencil %v element: %w", e.Type(), err)
			}
		}

		// Pass settings write the clip bit and are used as given.
		for _, pass := range passes {
			pds := ds.Clone()
			pds.Stencil = pass
			switch {
			case !direct:
				err = m.target.DrawRect(pds, bounds.Rect(), false)
			case path == nil:
				err = m.target.DrawRect(pds, e.Rect(), false)
			default:
				err = pr.DrawPath(m.target, pds, path, false)
			}
			if err != nil {
				return fmt.Errorf("clipmask: %v clip pass: %w", e.Op(), err)
			}
		}
	}
	return nil
}
