// Package backend is the registry of clip devices.
//
// A device executes the draws issued while building clip masks, owns the
// scratch textures those masks live in, and supplies the path renderers the
// clip-mask manager may use. Device packages register themselves from an
// init function:
//
//	import _ "github.com/gogpu/gr/backend/soft"
//
//	dev := backend.Get(backend.Soft)
//	rt, err := dev.NewRenderTarget(256, 256)
//
// Default returns the first registered device in priority order.
package backend
