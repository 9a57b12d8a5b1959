// Package soft is an in-memory reference device for the clip-mask manager.
//
// It executes draws with the semantics a GPU applies to them: scissor,
// stencil test and stencil operations through the write mask, colour and
// coverage processors, and blend coefficients. Colour planes hold alpha
// only, which is all clip masks carry. A draw's coverage c combines with
// the destination as c*blend(src, dst) + (1-c)*dst.
//
// Rasterization is deliberately simple: anti-aliased rectangles use exact
// pixel overlap, anti-aliased paths use the shared coverage rasterizers,
// and aliased draws sample pixel centres. Only the front stencil face is
// used.
//
// The package registers itself with the backend registry as "soft".
package soft
