package clipmask

import (
	"fmt"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/gpu/effects"
)

const (
	clearOpaque      uint32 = 0xffffffff
	clearTransparent uint32 = 0x00000000
)

// createAlphaClipMask renders elements into an alpha mask texture whose
// top-left texel is the top-left of bounds, a clip-space rectangle. The
// mask is cached under genID and bounds.
func (m *Manager) createAlphaClipMask(genID uint32, initial clip.InitialState, elements []*clip.Element, bounds gr.IRect) (_ gpu.Texture, err error) {
	log := m.logger()
	if tex, ok := m.cache.Lookup(genID, bounds); ok {
		log.Debug("clipmask: alpha mask cache hit", "genID", genID, "bounds", bounds)
		return tex, nil
	}

	desc := gpu.TextureDesc{
		Width:      bounds.Width(),
		Height:     bounds.Height(),
		Format:     m.maskFormat(false),
		Renderable: true,
	}
	result, err := m.cache.Store(genID, bounds, desc)
	if err != nil {
		return nil, err
	}
	var temp gpu.Texture
	defer func() {
		if temp != nil {
			m.provider.RecycleTexture(temp)
		}
		if err != nil {
			m.cache.Reset()
		}
	}()

	rt := result.RenderTarget()
	if rt == nil {
		return nil, fmt.Errorf("%w: mask %v is not renderable", ErrTextureAlloc, result.Desc())
	}
	log.Debug("clipmask: rendering alpha mask", "genID", genID, "bounds", bounds, "elements", len(elements))

	clipToMask := gr.Translate(-float64(bounds.Left), -float64(bounds.Top))
	// The texture may be larger than the mask; only this part is used.
	maskBounds := gr.IRectWH(bounds.Width(), bounds.Height())
	clearColor := clearTransparent
	if initial == clip.AllIn {
		clearColor = clearOpaque
	}
	if err := m.target.Clear(rt, maskBounds, clearColor); err != nil {
		return nil, err
	}
	twoSided := m.target.Caps().TwoSidedStencil

	for _, e := range elements {
		op := e.Op()
		invert := e.IsInverseFilled()
		ds := maskDrawState(rt, clipToMask, maskBounds)

		if !invert && op != clip.OpIntersect && op != clip.OpReverseDifference {
			// These ops only change pixels inside the shape.
			ds.Blend = gpu.ClipOpBlend(op)
			if err := m.drawElement(ds, e, nil); err != nil {
				return nil, err
			}
			continue
		}

		// Stencil marks are all-or-nothing per pixel, so anti-aliased
		// elements keep their edge coverage only through a temporary mask.
		var (
			pr     gpu.PathRenderer
			direct bool
		)
		sb := rt.StencilBuffer()
		if sb != nil && !e.IsAA() {
			pr, direct = m.stencilAndDrawRenderer(e)
		}

		// elementBounds is the part of the temporary mask the element is
		// drawn into, in mask space.
		var elementBounds gr.IRect
		if direct {
			// Mark the element's pixels in the user stencil bits.
			ds.Stencil = AdjustStencilParams(gpu.StencilInElement, StencilIgnoreClip, sb.Bits(), twoSided)
			ds.Blend = gpu.ClipOpBlend(op)
		} else {
			if invert {
				elementBounds = maskBounds
			} else {
				elementBounds = e.Bounds().Offset(clipToMask.C, clipToMask.F).RoundOut().Intersect(maskBounds)
			}
			if temp == nil {
				temp, err = m.provider.AcquireScratchTexture(gpu.TextureDesc{
					Width:      maskBounds.Right,
					Height:     maskBounds.Bottom,
					Format:     desc.Format,
					Renderable: true,
				})
				if err != nil {
					return nil, fmt.Errorf("%w: temporary mask: %w", ErrTextureAlloc, err)
				}
			}
			ds.RenderTarget = temp.RenderTarget()
			tempClear := clearTransparent
			if invert {
				tempClear = clearOpaque
			}
			if err := m.target.Clear(ds.RenderTarget, elementBounds, tempClear); err != nil {
				return nil, err
			}
			ds.Blend = gpu.BlendReplace
		}
		ds.Alpha = 0xff
		if invert {
			ds.Alpha = 0
		}

		// Renderers may consume the state.
		backup := ds.Clone()
		if err := m.drawElement(ds, e, pr); err != nil {
			return nil, err
		}

		if !direct {
			if err := m.mergeMask(backup, rt, temp, op, maskBounds, elementBounds); err != nil {
				return nil, err
			}
			continue
		}
		// Draw the pixels the element missed, resetting the stencil
		// marks on the way.
		backup.Alpha = 0
		if invert {
			backup.Alpha = 0xff
		}
		backup.Stencil = AdjustStencilParams(gpu.StencilDrawOutsideElement, StencilIgnoreClip, sb.Bits(), twoSided)
		if err := m.target.DrawRect(backup, bounds.Rect(), false); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// mergeMask combines srcBound of srcMask into dstBound of dst with the
// blend of op. Texels outside srcBound read as zero.
func (m *Manager) mergeMask(ds *gpu.DrawState, dst gpu.RenderTarget, srcMask gpu.Texture, op clip.Op, dstBound, srcBound gr.IRect) error {
	ds.ViewMatrix = gr.Identity()
	ds.RenderTarget = dst
	ds.Blend = gpu.ClipOpBlend(op)
	ds.Alpha = 0xff
	ds.Stencil = gpu.DisabledStencil

	d := srcMask.Desc()
	ds.AddColorProcessor(effects.NewTextureDomainEffect(
		srcMask,
		gr.IDiv(d.Width, d.Height),
		effects.TexelDomain(srcMask, srcBound),
	))
	return m.target.DrawRect(ds, dstBound.Rect(), false)
}

// drawElement draws e, with inverse fill removed, using ds. pr is used for
// paths when not nil; otherwise a colour renderer is looked up.
func (m *Manager) drawElement(ds *gpu.DrawState, e *clip.Element, pr gpu.PathRenderer) error {
	switch e.Type() {
	case clip.TypeEmpty:
		return nil
	case clip.TypeRect:
		return m.target.DrawRect(ds, e.Rect(), e.IsAA())
	}
	p := fillPath(e)
	if pr == nil {
		dt := colorDrawType(e.IsAA())
		if pr, _ = m.chain.Lookup(p, dt); pr == nil {
			return noRenderer(e, dt)
		}
	}
	return pr.DrawPath(m.target, ds, p, e.IsAA())
}

// stencilAndDrawRenderer returns the renderer able to draw the aliased
// element e with arbitrary stencil settings. Rects need none. ok is false
// when no renderer can.
func (m *Manager) stencilAndDrawRenderer(e *clip.Element) (pr gpu.PathRenderer, ok bool) {
	if rectLike(e) {
		return nil, true
	}
	pr, _ = m.chain.Lookup(fillPath(e), gpu.DrawStencilAndColor)
	return pr, pr != nil
}
