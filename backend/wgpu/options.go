package wgpu

import "log/slog"

// Option configures a Provider.
type Option func(*options)

type options struct {
	stencil     bool
	budget      uint64
	label       string
	logger      *slog.Logger
	sampleCount int
}

func defaultOptions() options {
	return options{
		stencil:     true,
		budget:      64 << 20,
		label:       "gr-clip-mask",
		sampleCount: 1,
	}
}

// WithStencil controls whether renderable textures get an 8-bit stencil
// attachment. The default is true.
func WithStencil(enabled bool) Option {
	return func(o *options) { o.stencil = enabled }
}

// WithTextureBudget sets the idle byte budget of the scratch pool. Zero
// means unlimited.
func WithTextureBudget(bytes uint64) Option {
	return func(o *options) { o.budget = bytes }
}

// WithLabel sets the debug label prefix of created textures.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithLogger sets the provider's logger. By default the package logger of
// github.com/gogpu/gr is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSampleCount sets the sample count reported by render targets.
func WithSampleCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleCount = n
		}
	}
}
