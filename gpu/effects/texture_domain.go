package effects

import (
	"fmt"
	"math"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

var (
	_ gpu.Processor = (*ConvexPolyEffect)(nil)
	_ gpu.Processor = (*RRectEffect)(nil)
	_ gpu.Processor = (*TextureDomainEffect)(nil)
)

// TextureDomainEffect samples the alpha of a texture through a matrix that
// maps device coordinates to normalized texture coordinates. Samples
// outside the domain read as zero.
type TextureDomainEffect struct {
	tex    gpu.Texture
	matrix gr.Matrix
	domain gr.Rect
}

// NewTextureDomainEffect returns a decal lookup into tex restricted to
// domain, in normalized coordinates.
func NewTextureDomainEffect(tex gpu.Texture, matrix gr.Matrix, domain gr.Rect) *TextureDomainEffect {
	return &TextureDomainEffect{tex: tex, matrix: matrix, domain: domain}
}

// TexelDomain converts a texel rectangle of tex to normalized coordinates.
func TexelDomain(tex gpu.Texture, texels gr.IRect) gr.Rect {
	d := tex.Desc()
	w, h := float64(d.Width), float64(d.Height)
	return gr.Rect{
		Left:   float64(texels.Left) / w,
		Top:    float64(texels.Top) / h,
		Right:  float64(texels.Right) / w,
		Bottom: float64(texels.Bottom) / h,
	}
}

// Name implements gpu.Processor.
func (e *TextureDomainEffect) Name() string {
	d := e.tex.Desc()
	return fmt.Sprintf("TextureDomain(%dx%d,decal)", d.Width, d.Height)
}

// Texture returns the sampled texture.
func (e *TextureDomainEffect) Texture() gpu.Texture { return e.tex }

// Matrix returns the device to texture coordinate transform.
func (e *TextureDomainEffect) Matrix() gr.Matrix { return e.matrix }

// Eval implements gpu.Processor. Textures without CPU access evaluate to
// zero.
func (e *TextureDomainEffect) Eval(p gr.Point) float64 {
	uv := e.matrix.TransformPoint(p)
	if uv.X < e.domain.Left || uv.X >= e.domain.Right || uv.Y < e.domain.Top || uv.Y >= e.domain.Bottom {
		return 0
	}
	reader, ok := e.tex.(gpu.TexelReader)
	if !ok {
		return 0
	}
	d := e.tex.Desc()
	x := int(math.Floor(uv.X * float64(d.Width)))
	y := int(math.Floor(uv.Y * float64(d.Height)))
	return float64(reader.AlphaAt(x, y)) / 255
}
