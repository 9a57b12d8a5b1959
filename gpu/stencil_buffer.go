package gpu

import (
	"github.com/gogpu/gr"
)

// StencilBuffer is a stencil attachment. It remembers which clip it last
// held so an unchanged clip is not rendered twice.
type StencilBuffer struct {
	bits int

	lastGenID  uint32
	lastBounds gr.IRect
	lastOrigin gr.IPoint
	hasClip    bool
}

// NewStencilBuffer returns a buffer with the given number of bits per sample.
func NewStencilBuffer(bits int) *StencilBuffer {
	return &StencilBuffer{bits: bits}
}

// Bits returns the number of stencil bits.
func (sb *StencilBuffer) Bits() int { return sb.bits }

// ClipBit returns the most significant stencil bit, which holds the clip.
func (sb *StencilBuffer) ClipBit() uint16 {
	if sb.bits <= 0 {
		return 0
	}
	return 1 << (sb.bits - 1)
}

// UserBits returns the bits available to path rendering.
func (sb *StencilBuffer) UserBits() uint16 {
	if sb.bits <= 0 {
		return 0
	}
	return sb.ClipBit() - 1
}

// MaxValue returns the largest storable value.
func (sb *StencilBuffer) MaxValue() uint16 {
	if sb.bits <= 0 {
		return 0
	}
	return uint16(1<<sb.bits - 1)
}

// MustRenderClip reports whether the buffer does not already hold the clip
// identified by genID over bounds at origin.
func (sb *StencilBuffer) MustRenderClip(genID uint32, bounds gr.IRect, origin gr.IPoint) bool {
	return !sb.hasClip || sb.lastGenID != genID || sb.lastBounds != bounds || sb.lastOrigin != origin
}

// SetLastClip records the clip the buffer now holds.
func (sb *StencilBuffer) SetLastClip(genID uint32, bounds gr.IRect, origin gr.IPoint) {
	sb.lastGenID = genID
	sb.lastBounds = bounds
	sb.lastOrigin = origin
	sb.hasClip = true
}

// InvalidateClip forgets the recorded clip, for example after the stencil
// plane was cleared by something other than the clip-mask manager.
func (sb *StencilBuffer) InvalidateClip() {
	sb.hasClip = false
}
