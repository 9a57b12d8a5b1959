// Package gpu defines the GPU-facing data model used by the clip-mask
// manager: stencil settings and the stencil clip pass table, blend
// coefficients, the per-draw DrawState with its restore guards, texture and
// render-target handles, the Target that executes draws, the texture
// provider, and the path renderer chain.
//
// Concrete devices live in the backend packages. Stencil and blend values
// use the github.com/gogpu/gputypes enums so resolved state lowers directly
// to WebGPU pipeline descriptors.
package gpu
