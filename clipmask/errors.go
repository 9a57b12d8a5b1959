package clipmask

import "errors"

// Errors returned by SetupClipping. Each one means the draw must be
// skipped.
var (
	// ErrClipEmpty reports a clip that excludes every pixel.
	ErrClipEmpty = errors.New("clipmask: clip is empty")

	// ErrNoPathRenderer reports a clip element no path renderer can draw.
	ErrNoPathRenderer = errors.New("clipmask: no path renderer for clip element")

	// ErrTextureAlloc reports a failed mask texture allocation.
	ErrTextureAlloc = errors.New("clipmask: mask texture allocation failed")

	// ErrNoStencilBuffer reports a stencil clip on a target without a
	// stencil attachment.
	ErrNoStencilBuffer = errors.New("clipmask: render target has no stencil buffer")
)
