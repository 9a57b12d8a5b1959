// Package gr holds the geometry shared by the GPU clip-mask packages:
// points, rectangles, affine matrices, rounded rectangles and paths with a
// fill rule. It also owns the package-level logger used by every
// sub-package.
//
// The packages build on each other bottom-up:
//
//   - clip: the clip stack and its reduction to a short element list
//   - gpu: draw state, stencil settings and the device interfaces
//   - gpu/effects: coverage processors for the clip fast path
//   - clipmask: the clip-mask manager that turns a clip into scissor,
//     coverage effects, an alpha mask or a stencil mask
//   - backend/soft: an in-memory reference device
//   - backend/wgpu: mask textures on a gogpu/wgpu HAL device
//   - recording: a command trace of the draws a mask build issues
//
// Logging is off by default; see SetLogger.
package gr
