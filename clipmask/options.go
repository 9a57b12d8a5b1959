package clipmask

import (
	"log/slog"
)

// DefaultFastPathThreshold is the largest number of reduced elements the
// manager tries to express as coverage processors.
const DefaultFastPathThreshold = 4

// Option configures a Manager.
type Option func(*options)

type options struct {
	fastPathThreshold int
	logger            *slog.Logger
	alphaMasks        bool
	softwareOnly      bool
}

func defaultOptions() options {
	return options{
		fastPathThreshold: DefaultFastPathThreshold,
		alphaMasks:        true,
	}
}

// WithFastPathThreshold sets the element count above which the coverage
// processor path is not attempted. Zero restricts the fast path to clips
// that reduce to a rectangle.
func WithFastPathThreshold(n int) Option {
	return func(o *options) {
		o.fastPathThreshold = max(n, 0)
	}
}

// WithLogger sets the logger for representation decisions. By default the
// package logger of gr is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithAlphaMasks enables or disables alpha mask textures. When disabled,
// anti-aliased clips the fast path cannot express go to the stencil buffer.
func WithAlphaMasks(enabled bool) Option {
	return func(o *options) {
		o.alphaMasks = enabled
	}
}

// WithSoftwareOnly makes every alpha mask rasterize on the CPU.
func WithSoftwareOnly(enabled bool) Option {
	return func(o *options) {
		o.softwareOnly = enabled
	}
}
