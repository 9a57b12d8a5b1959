package clipmask

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/gpu/effects"
)

// Manager turns clip stacks into draw state. It draws masks through a
// Target, allocates them from a TextureProvider and finds path renderers
// in a PathRendererChain.
type Manager struct {
	target   gpu.Target
	provider gpu.TextureProvider
	chain    *gpu.PathRendererChain
	cache    *MaskCache
	opts     options
}

// New creates a manager.
func New(target gpu.Target, provider gpu.TextureProvider, chain *gpu.PathRendererChain, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		target:   target,
		provider: provider,
		chain:    chain,
		cache:    NewMaskCache(provider),
		opts:     o,
	}
}

// SetClipTarget switches the target, provider and chain used to build
// masks. The cached mask is released.
func (m *Manager) SetClipTarget(target gpu.Target, provider gpu.TextureProvider, chain *gpu.PathRendererChain) {
	m.target = target
	m.provider = provider
	m.chain = chain
	m.cache.SetProvider(provider)
}

// PurgeResources releases the cached mask texture.
func (m *Manager) PurgeResources() {
	m.cache.Purge()
}

// Cache returns the alpha mask cache.
func (m *Manager) Cache() *MaskCache { return m.cache }

func (m *Manager) logger() *slog.Logger {
	if m.opts.logger != nil {
		return m.opts.logger
	}
	return gr.Logger()
}

// SetupClipping installs the clip of cd on ds. devBounds, when not nil, is
// a conservative device-space bound of the draw and lets the manager skip
// work the draw cannot see. On error ds is left unchanged and the draw
// must be skipped.
func (m *Manager) SetupClipping(ds *gpu.DrawState, cd *clip.Data, devBounds *gr.Rect) (_ *Setup, err error) {
	rt := ds.RenderTarget
	if rt == nil {
		return nil, errors.New("clipmask: draw state has no render target")
	}
	setup := newSetup(ds, m.target.Caps().TwoSidedStencil)
	defer func() {
		if err != nil {
			setup.Restore()
		}
	}()
	log := m.logger()

	ignoreClip := !ds.ClipEnabled || cd == nil || cd.Stack == nil || cd.Stack.IsWideOpen()
	var red clip.Reduced
	if !ignoreClip {
		clipSpaceRT := gpu.Bounds(rt).Offset(cd.Origin)
		red = clip.Reduce(cd.Stack, clipSpaceRT)
		if len(red.Elements) == 0 {
			if red.InitialState == clip.AllOut {
				return nil, ErrClipEmpty
			}
			ignoreClip = red.Bounds == clipSpaceRT
		}
	}
	if ignoreClip {
		m.setDrawStateStencil(ds, setup)
		return setup, nil
	}

	// Clip space to device space.
	offset := cd.Origin.Neg()
	devClip := red.Bounds.Offset(offset)
	coverageBefore := len(ds.CoverageProcessors())

	if len(red.Elements) <= m.opts.fastPathThreshold &&
		(len(red.Elements) == 0 || (red.RequiresAA && m.installClipEffects(ds, red.Elements, offset, devBounds))) {
		if devBounds == nil || !devClip.Rect().Contains(*devBounds) {
			setup.setScissor(ds, devClip)
		}
		setup.Coverage = len(ds.CoverageProcessors()) - coverageBefore
		log.Debug("clipmask: fast path",
			"elements", len(red.Elements), "scissor", setup.HasScissor, "processors", setup.Coverage)
		m.setDrawStateStencil(ds, setup)
		return setup, nil
	}

	var alphaErr error
	useAlpha := rt.SampleCount() <= 1 && red.RequiresAA && m.opts.alphaMasks
	if useAlpha && !m.fitsTexture(red.Bounds) {
		log.Debug("clipmask: mask larger than the maximum texture size, using stencil", "bounds", red.Bounds)
		useAlpha = false
	}
	if useAlpha {
		var mask gpu.Texture
		if m.opts.softwareOnly || m.useSWOnlyPath(red.Elements) {
			mask, alphaErr = m.createSoftwareClipMask(red.GenID, red.InitialState, red.Elements, red.Bounds)
		} else {
			mask, alphaErr = m.createAlphaClipMask(red.GenID, red.InitialState, red.Elements, red.Bounds)
		}
		if alphaErr == nil {
			setupDrawStateAAClip(devClip, ds, mask)
			setup.MaskType = MaskAlpha
			setup.Mask = mask
			setup.Coverage = 1
			m.setDrawStateStencil(ds, setup)
			return setup, nil
		}
		log.Warn("clipmask: alpha mask failed, using stencil", "err", alphaErr)
	}

	// The stencil clip replaces any cached alpha mask.
	m.cache.Reset()
	if err := m.createStencilClipMask(rt, red.GenID, red.InitialState, red.Elements, red.Bounds, offset); err != nil {
		return nil, errors.Join(alphaErr, err)
	}
	setup.setScissor(ds, devClip)
	setup.MaskType = MaskStencil
	setup.StencilMode = StencilRespectClip
	log.Debug("clipmask: stencil clip", "elements", len(red.Elements), "genID", red.GenID, "bounds", devClip)
	m.setDrawStateStencil(ds, setup)
	return setup, nil
}

// installClipEffects adds one coverage processor per element. It installs
// all of them or none.
func (m *Manager) installClipEffects(ds *gpu.DrawState, elements []*clip.Element, offset gr.IPoint, devBounds *gr.Rect) bool {
	guard := ds.SaveEffects()
	var clipBounds gr.Rect
	if devBounds != nil {
		clipBounds = devBounds.Offset(-float64(offset.X), -float64(offset.Y))
	}
	multisampled := ds.RenderTarget.SampleCount() > 1
	dx, dy := float64(offset.X), float64(offset.Y)

	for _, e := range elements {
		var invert bool
		switch e.Op() {
		case clip.OpReplace, clip.OpIntersect:
			if devBounds != nil && e.Contains(clipBounds) {
				continue
			}
		case clip.OpDifference:
			invert = true
		default:
			guard.Restore()
			return false
		}
		if e.IsAA() && multisampled {
			// Coverage anti-aliasing does not mix with MSAA.
			guard.Restore()
			return false
		}
		edgeType := effects.EdgeTypeFor(e.IsAA(), invert)

		var (
			fp gpu.Processor
			ok bool
		)
		switch e.Type() {
		case clip.TypePath:
			fp, ok = effects.NewConvexPolyEffect(edgeType, e.Path(), gr.Pt(dx, dy))
		case clip.TypeRRect:
			fp, ok = effects.NewRRectEffect(edgeType, e.RRect().Offset(dx, dy))
		case clip.TypeRect:
			fp, ok = effects.NewConvexPolyRectEffect(edgeType, e.Rect().Offset(dx, dy)), true
		}
		if !ok {
			guard.Restore()
			return false
		}
		ds.AddCoverageProcessor(fp)
	}
	return true
}

// setupDrawStateAAClip samples mask as coverage. devBound is the device
// rectangle the mask's top-left texels cover.
func setupDrawStateAAClip(devBound gr.IRect, ds *gpu.DrawState, mask gpu.Texture) {
	d := mask.Desc()
	mat := gr.IDiv(d.Width, d.Height).PreTranslate(-float64(devBound.Left), -float64(devBound.Top))
	texels := gr.IRectWH(devBound.Width(), devBound.Height())
	ds.AddCoverageProcessor(effects.NewTextureDomainEffect(mask, mat, effects.TexelDomain(mask, texels)))
}

// setDrawStateStencil resolves the draw's stencil settings for the clip
// mode of setup, enabling the stencil test when a stencil clip must be
// respected.
func (m *Manager) setDrawStateStencil(ds *gpu.DrawState, setup *Setup) {
	settings := ds.Stencil
	if settings.IsDisabled() {
		if setup.StencilMode != StencilRespectClip {
			return
		}
		settings = applyClipSettings
	}
	bits := 0
	if sb := ds.RenderTarget.StencilBuffer(); sb != nil {
		bits = sb.Bits()
	}
	ds.Stencil = AdjustStencilParams(settings, setup.StencilMode, bits, setup.twoSided)
}

// fitsTexture reports whether a mask covering bounds fits in one texture
// of the target.
func (m *Manager) fitsTexture(bounds gr.IRect) bool {
	limit := m.target.Caps().MaxTextureSize
	return limit <= 0 || (bounds.Width() <= limit && bounds.Height() <= limit)
}

// useSWOnlyPath reports whether some element has no GPU path renderer, in
// which case the whole mask is rasterized in software.
func (m *Manager) useSWOnlyPath(elements []*clip.Element) bool {
	for _, e := range elements {
		if rectLike(e) {
			continue
		}
		if pr, _ := m.chain.Lookup(fillPath(e), colorDrawType(e.IsAA())); pr == nil {
			return true
		}
	}
	return false
}

// maskFormat picks the alpha mask format. Uploaded masks are always 8-bit;
// rendered masks fall back to RGBA when 8-bit targets are unsupported.
func (m *Manager) maskFormat(willUpload bool) gputypes.TextureFormat {
	if willUpload || m.provider.IsRenderable(gputypes.TextureFormatR8Unorm) {
		return gputypes.TextureFormatR8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// maskDrawState returns a draw state for mask construction: opaque
// replace blending, matrix as view matrix, and scissored to scissor.
func maskDrawState(rt gpu.RenderTarget, matrix gr.Matrix, scissor gr.IRect) *gpu.DrawState {
	ds := gpu.NewDrawState(rt)
	ds.ViewMatrix = matrix
	ds.SetScissor(scissor)
	return ds
}

func rectLike(e *clip.Element) bool {
	return e.Type() == clip.TypeRect || e.Type() == clip.TypeEmpty
}

// fillPath returns the element's shape as a path with inverse fill removed.
func fillPath(e *clip.Element) *gr.Path {
	p := e.AsPath()
	if p.IsInverseFillType() {
		p.ToggleInverseFillType()
	}
	return p
}

func colorDrawType(aa bool) gpu.DrawType {
	if aa {
		return gpu.DrawColorAA
	}
	return gpu.DrawColor
}

func noRenderer(e *clip.Element, dt gpu.DrawType) error {
	return fmt.Errorf("%w: %v element, draw type %v", ErrNoPathRenderer, e.Type(), dt)
}
