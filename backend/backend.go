package backend

import (
	"errors"

	"github.com/gogpu/gr/gpu"
)

// Device names.
const (
	// Soft is the in-memory reference device.
	Soft = "soft"
)

// ErrDeviceNotAvailable is returned when no device is registered.
var ErrDeviceNotAvailable = errors.New("backend: no device available")

// Device executes mask construction draws and provides the resources the
// clip-mask manager needs.
type Device interface {
	gpu.Target
	gpu.TextureProvider

	// Name returns the registry name.
	Name() string

	// PathRenderers returns the renderer chain used for clip elements.
	PathRenderers() *gpu.PathRendererChain

	// NewRenderTarget creates a drawable surface with a stencil attachment
	// when the device has stencil bits.
	NewRenderTarget(width, height int) (gpu.RenderTarget, error)

	// Close releases every texture the device holds.
	Close()
}
