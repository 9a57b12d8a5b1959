package swmask

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
)

// ErrEmptyBounds is returned by Init for an empty result rectangle.
var ErrEmptyBounds = errors.New("swmask: empty mask bounds")

// Helper accumulates clip elements into an 8-bit coverage bitmap. Each draw
// combines its coverage with the bitmap through the element's set
// operator: out = cov*mode(src, dst) + (1-cov)*dst.
type Helper struct {
	matrix gr.Matrix
	mask   *image.Alpha
}

// New returns an uninitialized helper.
func New() *Helper { return &Helper{} }

// Init sizes the bitmap to resultBounds. matrix maps draw coordinates into
// the space of resultBounds, in the row-major layout x/image/draw uses.
func (h *Helper) Init(resultBounds gr.IRect, matrix f64.Aff3) error {
	if resultBounds.IsEmpty() {
		return fmt.Errorf("%w: %v", ErrEmptyBounds, resultBounds)
	}
	h.matrix = gr.Translate(-float64(resultBounds.Left), -float64(resultBounds.Top)).Multiply(gr.MatrixFromAff3(matrix))
	h.mask = image.NewAlpha(image.Rect(0, 0, resultBounds.Width(), resultBounds.Height()))
	return nil
}

// Bounds returns the bitmap rectangle, anchored at the origin.
func (h *Helper) Bounds() gr.IRect {
	if h.mask == nil {
		return gr.IRect{}
	}
	return gr.IRectWH(h.mask.Rect.Dx(), h.mask.Rect.Dy())
}

// Mask returns the bitmap.
func (h *Helper) Mask() *image.Alpha { return h.mask }

// AlphaAt returns the coverage byte at (x, y).
func (h *Helper) AlphaAt(x, y int) uint8 { return h.mask.AlphaAt(x, y).A }

// Clear fills the whole bitmap with alpha.
func (h *Helper) Clear(alpha uint8) {
	for i := range h.mask.Pix {
		h.mask.Pix[i] = alpha
	}
}

// DrawRect combines r with the bitmap using op and source alpha.
func (h *Helper) DrawRect(r gr.Rect, op clip.Op, aa bool, alpha uint8) {
	if h.matrix.B != 0 || h.matrix.D != 0 {
		p := gr.NewPath()
		p.AddRect(r)
		h.DrawPath(p, op, aa, alpha)
		return
	}
	h.combine(RasterizeRect(h.matrix.MapRect(r), h.Bounds(), aa), op, alpha)
}

// DrawPath combines p, with its fill rule, with the bitmap using op and
// source alpha.
func (h *Helper) DrawPath(p *gr.Path, op clip.Op, aa bool, alpha uint8) {
	h.combine(RasterizePath(p.Transform(h.matrix), h.Bounds(), aa), op, alpha)
}

// Upload writes the bitmap to the top-left corner of tex.
func (h *Helper) Upload(tp gpu.TextureProvider, tex gpu.Texture) error {
	b := h.Bounds()
	if err := tp.WriteAlpha(tex, b.Width(), b.Height(), h.mask.Pix, h.mask.Stride); err != nil {
		return fmt.Errorf("swmask: upload: %w", err)
	}
	return nil
}

func (h *Helper) combine(cov *image.Alpha, op clip.Op, alpha uint8) {
	s := float64(alpha) / 255
	for i, c := range cov.Pix {
		if c == 0 {
			continue
		}
		d := float64(h.mask.Pix[i]) / 255
		cf := float64(c) / 255
		h.mask.Pix[i] = toByte(cf*mode(op, s, d) + (1-cf)*d)
	}
}

// mode applies the transfer mode used for op to alpha-only colours.
func mode(op clip.Op, s, d float64) float64 {
	switch op {
	case clip.OpDifference: // dst-out
		return d * (1 - s)
	case clip.OpIntersect: // modulate
		return s * d
	case clip.OpUnion: // src-over
		return s + d*(1-s)
	case clip.OpXOR:
		return s*(1-d) + d*(1-s)
	case clip.OpReverseDifference: // clear
		return 0
	default: // src
		return s
	}
}
