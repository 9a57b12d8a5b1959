package gpu

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr"
)

// TextureDesc describes a 2D texture.
type TextureDesc struct {
	Width  int
	Height int
	Format gputypes.TextureFormat

	// Renderable textures can be bound as a render target and carry a
	// stencil attachment.
	Renderable bool
}

// BytesPerPixel returns the texel size of the mask formats; other formats
// are assumed to be four bytes.
func (d TextureDesc) BytesPerPixel() int {
	if d.Format == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

// SizeBytes returns the memory footprint of the colour plane.
func (d TextureDesc) SizeBytes() uint64 {
	return uint64(d.Width) * uint64(d.Height) * uint64(d.BytesPerPixel())
}

func (d TextureDesc) String() string {
	return fmt.Sprintf("%dx%d %v renderable=%v", d.Width, d.Height, d.Format, d.Renderable)
}

// minScratchSize is the smallest edge of an approximately matched texture.
const minScratchSize = 16

// Approx rounds the dimensions up to the next power of two (at least 16)
// so scratch textures can be shared between similar requests.
func (d TextureDesc) Approx() TextureDesc {
	round := func(v int) int {
		if v <= minScratchSize {
			return minScratchSize
		}
		return 1 << bits.Len(uint(v-1))
	}
	d.Width = round(d.Width)
	d.Height = round(d.Height)
	return d
}

// Fits reports whether a texture described by d can serve a request for want.
func (d TextureDesc) Fits(want TextureDesc) bool {
	return d.Format == want.Format && d.Renderable == want.Renderable &&
		d.Width >= want.Width && d.Height >= want.Height
}

// Texture is a GPU texture handle.
type Texture interface {
	Desc() TextureDesc
	// RenderTarget returns nil when the texture is not renderable.
	RenderTarget() RenderTarget
}

// RenderTarget is a drawable surface.
type RenderTarget interface {
	Width() int
	Height() int
	SampleCount() int
	// StencilBuffer returns nil when the target has no stencil attachment.
	StencilBuffer() *StencilBuffer
}

// Bounds returns the device rectangle of rt.
func Bounds(rt RenderTarget) gr.IRect {
	return gr.IRect{Right: rt.Width(), Bottom: rt.Height()}
}

// TexelReader is implemented by textures whose texels can be read back on
// the CPU.
type TexelReader interface {
	AlphaAt(x, y int) uint8
}

// TextureProvider allocates, uploads and recycles textures.
type TextureProvider interface {
	// AcquireScratchTexture returns a texture whose description fits desc.
	// It may be larger than requested.
	AcquireScratchTexture(desc TextureDesc) (Texture, error)
	// RecycleTexture returns a scratch texture for reuse.
	RecycleTexture(tex Texture)
	// DestroyTexture releases the texture's memory.
	DestroyTexture(tex Texture)
	// WriteAlpha uploads width x height coverage bytes to the top-left of tex.
	WriteAlpha(tex Texture, width, height int, pixels []byte, stride int) error
	// IsRenderable reports whether format can be used as a render target.
	IsRenderable(format gputypes.TextureFormat) bool
}
