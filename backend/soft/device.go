package soft

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/internal/cache"
	"github.com/gogpu/gr/internal/swmask"
)

// Errors returned by the device.
var (
	ErrNotSoftTarget   = errors.New("soft: target was not created by this package")
	ErrNoStencil       = errors.New("soft: stencil settings on a target without a stencil buffer")
	ErrTextureTooLarge = errors.New("soft: texture exceeds the maximum size")
	ErrNotRenderable   = errors.New("soft: format is not renderable")
	ErrDestroyed       = errors.New("soft: texture was destroyed")

	ErrStencilUnsupported = errors.New("soft: renderer cannot stencil paths")
	ErrNoStencilWrap      = errors.New("soft: wrapping stencil operations are not supported")
)

func init() {
	backend.Register(backend.Soft, func() backend.Device { return New() })
}

// Stats counts device activity.
type Stats struct {
	TexturesCreated uint64
	Draws           uint64
	StencilDraws    uint64
	Clears          uint64
	Pool            cache.Stats
}

// Device is the software Target, TextureProvider and path renderer source.
type Device struct {
	opts  options
	caps  gpu.Caps
	chain *gpu.PathRendererChain
	pool  *cache.Pool[gpu.TextureDesc, *Surface]

	created      atomic.Uint64
	draws        atomic.Uint64
	stencilDraws atomic.Uint64
	clears       atomic.Uint64
}

var _ backend.Device = (*Device)(nil)

// New creates a device.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		opts: o,
		caps: gpu.Caps{
			TwoSidedStencil: o.twoSidedStencil,
			StencilWrapOps:  o.stencilWrapOps,
			MaxTextureSize:  o.maxTextureSize,
		},
	}
	if o.renderers != nil {
		d.chain = gpu.NewPathRendererChain(o.renderers...)
	} else {
		d.chain = DefaultPathRenderers()
	}
	d.pool = cache.NewPool[gpu.TextureDesc, *Surface](o.textureBudget, func(s *Surface) {
		d.DestroyTexture(s)
	})
	return d
}

// Name implements backend.Device.
func (d *Device) Name() string { return backend.Soft }

// Caps implements gpu.Target.
func (d *Device) Caps() gpu.Caps { return d.caps }

// PathRenderers implements backend.Device.
func (d *Device) PathRenderers() *gpu.PathRendererChain { return d.chain }

// NewRenderTarget implements backend.Device.
func (d *Device) NewRenderTarget(width, height int) (gpu.RenderTarget, error) {
	return d.NewSurface(width, height)
}

// NewSurface creates an RGBA8 render target.
func (d *Device) NewSurface(width, height int) (*Surface, error) {
	desc := gpu.TextureDesc{
		Width:      width,
		Height:     height,
		Format:     gputypes.TextureFormatRGBA8Unorm,
		Renderable: true,
	}
	if err := d.checkSize(desc); err != nil {
		return nil, err
	}
	d.created.Add(1)
	return newSurface(desc, d.opts.stencilBits, d.opts.sampleCount), nil
}

// Close implements backend.Device.
func (d *Device) Close() {
	d.pool.Purge()
}

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	return Stats{
		TexturesCreated: d.created.Load(),
		Draws:           d.draws.Load(),
		StencilDraws:    d.stencilDraws.Load(),
		Clears:          d.clears.Load(),
		Pool:            d.pool.Stats(),
	}
}

func surfaceOf(rt gpu.RenderTarget) (*Surface, error) {
	s, ok := rt.(*Surface)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSoftTarget, rt)
	}
	if s.destroyed {
		return nil, ErrDestroyed
	}
	return s, nil
}

// Clear implements gpu.Target.
func (d *Device) Clear(rt gpu.RenderTarget, rect gr.IRect, color uint32) error {
	s, err := surfaceOf(rt)
	if err != nil {
		return err
	}
	d.clears.Add(1)
	a := uint8(color >> 24)
	r := rect.Intersect(s.bounds())
	for y := r.Top; y < r.Bottom; y++ {
		row := s.alpha.Pix[y*s.alpha.Stride:]
		for x := r.Left; x < r.Right; x++ {
			row[x] = a
		}
	}
	return nil
}

// ClearStencilClip implements gpu.Target.
func (d *Device) ClearStencilClip(rt gpu.RenderTarget, rect gr.IRect, insideClip bool) error {
	s, err := surfaceOf(rt)
	if err != nil {
		return err
	}
	if s.sb == nil {
		return ErrNoStencil
	}
	d.clears.Add(1)
	var v uint16
	if insideClip {
		v = s.sb.ClipBit()
	}
	r := rect.Intersect(s.bounds())
	for y := r.Top; y < r.Bottom; y++ {
		row := s.stencil[y*s.desc.Width:]
		for x := r.Left; x < r.Right; x++ {
			row[x] = v
		}
	}
	return nil
}

// DrawRect implements gpu.Target.
func (d *Device) DrawRect(ds *gpu.DrawState, r gr.Rect, aa bool) error {
	m := ds.ViewMatrix
	if m.B != 0 || m.D != 0 {
		p := gr.NewPath()
		p.AddRect(r)
		return d.DrawPath(ds, p, aa)
	}
	return d.shade(ds, func(area gr.IRect) *image.Alpha {
		return swmask.RasterizeRect(m.MapRect(r), area, aa)
	}, true)
}

// DrawPath implements gpu.Target.
func (d *Device) DrawPath(ds *gpu.DrawState, p *gr.Path, aa bool) error {
	dp := p.Transform(ds.ViewMatrix)
	return d.shade(ds, func(area gr.IRect) *image.Alpha {
		return swmask.RasterizePath(dp, area, aa)
	}, true)
}

// StencilPath implements gpu.Target. It runs the state's stencil settings
// over the aliased interior of p and writes no colour.
func (d *Device) StencilPath(ds *gpu.DrawState, p *gr.Path) error {
	if ds.Stencil.IsDisabled() {
		return errors.New("soft: StencilPath without stencil settings")
	}
	d.stencilDraws.Add(1)
	dp := p.Transform(ds.ViewMatrix)
	return d.shade(ds, func(area gr.IRect) *image.Alpha {
		return swmask.RasterizePath(dp, area, false)
	}, false)
}

// shade runs the per-pixel pipeline over the coverage produced by raster.
func (d *Device) shade(ds *gpu.DrawState, raster func(gr.IRect) *image.Alpha, writeColor bool) error {
	s, err := surfaceOf(ds.RenderTarget)
	if err != nil {
		return err
	}
	stencil := !ds.Stencil.IsDisabled()
	if stencil && s.sb == nil {
		return ErrNoStencil
	}
	if stencil && !d.caps.StencilWrapOps && ds.Stencil.UsesWrapOp() {
		return fmt.Errorf("%w: %v", ErrNoStencilWrap, ds.Stencil)
	}
	area := s.bounds()
	if ds.ScissorEnabled {
		area = area.Intersect(ds.Scissor)
	}
	if area.IsEmpty() {
		return nil
	}
	d.draws.Add(1)

	cov := raster(area)
	face := ds.Stencil.Front
	var maxValue uint16
	if s.sb != nil {
		maxValue = s.sb.MaxValue()
	}
	writeColor = writeColor && !ds.NoColorWrites
	src := float64(ds.Alpha) / 255

	for y := area.Top; y < area.Bottom; y++ {
		covRow := cov.Pix[cov.PixOffset(area.Left, y):]
		for x := area.Left; x < area.Right; x++ {
			c := covRow[x-area.Left]
			if c == 0 {
				continue
			}
			if stencil {
				i := y*s.desc.Width + x
				v := s.stencil[i]
				pass := face.Func.Test(face.FuncRef, face.FuncMask, v)
				op := face.FailOp
				if pass {
					op = face.PassOp
				}
				next := gpu.ApplyStencilOp(op, v, face.FuncRef, maxValue)
				s.stencil[i] = (v &^ face.WriteMask) | (next & face.WriteMask & maxValue)
				if !pass {
					continue
				}
			}
			if !writeColor {
				continue
			}
			pt := gr.Pt(float64(x)+0.5, float64(y)+0.5)
			sa := src
			for _, p := range ds.ColorProcessors() {
				sa *= p.Eval(pt)
			}
			cf := float64(c) / 255
			for _, p := range ds.CoverageProcessors() {
				cf *= p.Eval(pt)
			}
			if cf <= 0 {
				continue
			}
			j := y*s.alpha.Stride + x
			da := float64(s.alpha.Pix[j]) / 255
			out := cf*ds.Blend.Apply(sa, da) + (1-cf)*da
			s.alpha.Pix[j] = uint8(out*255 + 0.5)
		}
	}
	return nil
}
