package soft

import (
	"image"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// Surface is a texture and, when renderable, a render target. The colour
// plane stores alpha only.
type Surface struct {
	desc    gpu.TextureDesc
	samples int

	alpha   *image.Alpha
	stencil []uint16
	sb      *gpu.StencilBuffer

	destroyed bool
}

var (
	_ gpu.Texture      = (*Surface)(nil)
	_ gpu.RenderTarget = (*Surface)(nil)
	_ gpu.TexelReader  = (*Surface)(nil)
)

func newSurface(desc gpu.TextureDesc, stencilBits, samples int) *Surface {
	s := &Surface{
		desc:    desc,
		samples: samples,
		alpha:   image.NewAlpha(image.Rect(0, 0, desc.Width, desc.Height)),
	}
	if desc.Renderable && stencilBits > 0 {
		s.stencil = make([]uint16, desc.Width*desc.Height)
		s.sb = gpu.NewStencilBuffer(stencilBits)
	}
	return s
}

// Desc implements gpu.Texture.
func (s *Surface) Desc() gpu.TextureDesc { return s.desc }

// RenderTarget implements gpu.Texture.
func (s *Surface) RenderTarget() gpu.RenderTarget {
	if !s.desc.Renderable {
		return nil
	}
	return s
}

// Width implements gpu.RenderTarget.
func (s *Surface) Width() int { return s.desc.Width }

// Height implements gpu.RenderTarget.
func (s *Surface) Height() int { return s.desc.Height }

// SampleCount implements gpu.RenderTarget.
func (s *Surface) SampleCount() int { return s.samples }

// StencilBuffer implements gpu.RenderTarget.
func (s *Surface) StencilBuffer() *gpu.StencilBuffer { return s.sb }

// AlphaAt implements gpu.TexelReader. Out of range reads return zero.
func (s *Surface) AlphaAt(x, y int) uint8 {
	if s.alpha == nil || !image.Pt(x, y).In(s.alpha.Rect) {
		return 0
	}
	return s.alpha.Pix[y*s.alpha.Stride+x]
}

// StencilAt returns the stencil value at (x, y).
func (s *Surface) StencilAt(x, y int) uint16 {
	if s.stencil == nil || x < 0 || y < 0 || x >= s.desc.Width || y >= s.desc.Height {
		return 0
	}
	return s.stencil[y*s.desc.Width+x]
}

// Image returns the colour plane.
func (s *Surface) Image() *image.Alpha { return s.alpha }

// Fill sets every colour value to a.
func (s *Surface) Fill(a uint8) {
	for i := range s.alpha.Pix {
		s.alpha.Pix[i] = a
	}
}

func (s *Surface) bounds() gr.IRect { return gr.IRectWH(s.desc.Width, s.desc.Height) }

func (s *Surface) resetStencil() {
	clear(s.stencil)
	if s.sb != nil {
		s.sb.InvalidateClip()
	}
}

func (s *Surface) sizeBytes() uint64 {
	n := s.desc.SizeBytes()
	n += uint64(len(s.stencil)) * 2
	return n
}
