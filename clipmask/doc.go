// Package clipmask applies a clip stack to GPU draws.
//
// A Manager reduces the clip stack of each draw and picks the cheapest
// representation that reproduces it:
//
//   - nothing, when the clip does not restrict the render target
//   - a scissor rectangle, possibly combined with coverage processors for
//     a few rects, rounded rects and convex paths (the fast path)
//   - an 8-bit alpha mask texture, rendered on the GPU or rasterized in
//     software and uploaded, sampled as a coverage processor
//   - the high bit of the stencil buffer, with the remaining bits left
//     to path rendering
//
// SetupClipping mutates the draw state and returns a Setup describing the
// choice. The caller issues its draw and then calls Setup.Restore. When
// SetupClipping fails the draw must be dropped.
//
//	setup, err := m.SetupClipping(ds, &clip.Data{Stack: stack}, &bounds)
//	if err != nil {
//		return err // errors.Is(err, clipmask.ErrClipEmpty) means nothing is visible
//	}
//	defer setup.Restore()
//	err = target.DrawRect(ds, bounds, true)
//
// A Manager is not safe for concurrent use.
package clipmask
