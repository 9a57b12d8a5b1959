package soft

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// IsRenderable implements gpu.TextureProvider.
func (d *Device) IsRenderable(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return true
	case gputypes.TextureFormatR8Unorm:
		return d.opts.alpha8Renderable
	default:
		return false
	}
}

func (d *Device) checkSize(desc gpu.TextureDesc) error {
	if desc.Width <= 0 || desc.Height <= 0 {
		return fmt.Errorf("soft: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if m := d.opts.maxTextureSize; m > 0 && (desc.Width > m || desc.Height > m) {
		return fmt.Errorf("%w: %dx%d > %d", ErrTextureTooLarge, desc.Width, desc.Height, m)
	}
	return nil
}

// AcquireScratchTexture implements gpu.TextureProvider. Requests are
// rounded up to power-of-two buckets so similar masks share textures. A
// reused texture keeps its colour contents; its stencil plane is zeroed.
func (d *Device) AcquireScratchTexture(desc gpu.TextureDesc) (gpu.Texture, error) {
	if err := d.checkSize(desc); err != nil {
		return nil, err
	}
	if desc.Renderable && !d.IsRenderable(desc.Format) {
		return nil, fmt.Errorf("%w: %v", ErrNotRenderable, desc.Format)
	}
	key := desc.Approx()
	if m := d.opts.maxTextureSize; m > 0 {
		key.Width = min(key.Width, m)
		key.Height = min(key.Height, m)
	}
	if s, ok := d.pool.Take(key); ok {
		s.resetStencil()
		return s, nil
	}
	d.created.Add(1)
	gr.Logger().Debug("soft: scratch texture created", "desc", key)
	return newSurface(key, d.opts.stencilBits, d.opts.sampleCount), nil
}

// RecycleTexture implements gpu.TextureProvider.
func (d *Device) RecycleTexture(tex gpu.Texture) {
	s, ok := tex.(*Surface)
	if !ok || s.destroyed {
		return
	}
	d.pool.Put(s.desc, s, s.sizeBytes())
}

// DestroyTexture implements gpu.TextureProvider.
func (d *Device) DestroyTexture(tex gpu.Texture) {
	s, ok := tex.(*Surface)
	if !ok {
		return
	}
	s.destroyed = true
	s.alpha = nil
	s.stencil = nil
}

// WriteAlpha implements gpu.TextureProvider.
func (d *Device) WriteAlpha(tex gpu.Texture, width, height int, pixels []byte, stride int) error {
	s, ok := tex.(*Surface)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotSoftTarget, tex)
	}
	if s.destroyed {
		return ErrDestroyed
	}
	if width > s.desc.Width || height > s.desc.Height {
		return fmt.Errorf("soft: upload %dx%d exceeds texture %dx%d", width, height, s.desc.Width, s.desc.Height)
	}
	if height > 0 && len(pixels) < (height-1)*stride+width {
		return fmt.Errorf("soft: upload needs %d bytes, got %d", (height-1)*stride+width, len(pixels))
	}
	for y := range height {
		copy(s.alpha.Pix[y*s.alpha.Stride:y*s.alpha.Stride+width], pixels[y*stride:y*stride+width])
	}
	return nil
}
