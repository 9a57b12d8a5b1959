package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gr/gpu"
)

// Texture is a mask texture on a HAL device.
type Texture struct {
	desc    gpu.TextureDesc
	raw     hal.Texture
	stencil hal.Texture
	sb      *gpu.StencilBuffer
	samples int

	destroyed bool
}

// Desc implements gpu.Texture.
func (t *Texture) Desc() gpu.TextureDesc { return t.desc }

// RenderTarget implements gpu.Texture.
func (t *Texture) RenderTarget() gpu.RenderTarget {
	if !t.desc.Renderable {
		return nil
	}
	return t
}

// Width implements gpu.RenderTarget.
func (t *Texture) Width() int { return t.desc.Width }

// Height implements gpu.RenderTarget.
func (t *Texture) Height() int { return t.desc.Height }

// SampleCount implements gpu.RenderTarget.
func (t *Texture) SampleCount() int { return t.samples }

// StencilBuffer implements gpu.RenderTarget.
func (t *Texture) StencilBuffer() *gpu.StencilBuffer { return t.sb }

// Destroyed reports whether the texture's memory has been released.
func (t *Texture) Destroyed() bool { return t.destroyed }
