package soft

import (
	"github.com/gogpu/gr/gpu"
)

// Default configuration values.
const (
	DefaultStencilBits    = 8
	DefaultMaxTextureSize = 8192
	DefaultTextureBudget  = 64 << 20
)

type options struct {
	stencilBits      int
	sampleCount      int
	alpha8Renderable bool
	twoSidedStencil  bool
	stencilWrapOps   bool
	maxTextureSize   int
	textureBudget    uint64
	renderers        []gpu.PathRenderer
}

func defaultOptions() options {
	return options{
		stencilBits:      DefaultStencilBits,
		sampleCount:      1,
		alpha8Renderable: true,
		twoSidedStencil:  true,
		stencilWrapOps:   true,
		maxTextureSize:   DefaultMaxTextureSize,
		textureBudget:    DefaultTextureBudget,
	}
}

// Option configures a Device.
type Option func(*options)

// WithStencilBits sets the stencil depth of render targets. Zero disables
// stencil attachments. Values above 16 are clamped.
func WithStencilBits(bits int) Option {
	return func(o *options) {
		o.stencilBits = min(max(bits, 0), 16)
	}
}

// WithSampleCount sets the sample count reported by render targets.
// Rasterization stays single-sampled.
func WithSampleCount(n int) Option {
	return func(o *options) {
		o.sampleCount = max(n, 1)
	}
}

// WithAlpha8Renderable controls whether single-channel textures can be
// rendered to.
func WithAlpha8Renderable(ok bool) Option {
	return func(o *options) {
		o.alpha8Renderable = ok
	}
}

// WithTwoSidedStencil controls the TwoSidedStencil capability.
func WithTwoSidedStencil(ok bool) Option {
	return func(o *options) {
		o.twoSidedStencil = ok
	}
}

// WithStencilWrapOps sets whether wrapping increment and decrement are
// supported. Draws using them fail when they are not.
func WithStencilWrapOps(ok bool) Option {
	return func(o *options) {
		o.stencilWrapOps = ok
	}
}

// WithMaxTextureSize bounds texture dimensions.
func WithMaxTextureSize(n int) Option {
	return func(o *options) {
		o.maxTextureSize = n
	}
}

// WithPathRenderers replaces the default renderer chain.
func WithPathRenderers(renderers ...gpu.PathRenderer) Option {
	return func(o *options) {
		o.renderers = renderers
	}
}

// WithTextureBudget sets the byte budget for idle scratch textures.
func WithTextureBudget(bytes uint64) Option {
	return func(o *options) {
		o.textureBudget = bytes
	}
}
