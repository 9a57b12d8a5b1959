// Package clip implements the clip stack consumed by the clip-mask manager.
//
// A Stack holds an ordered list of Elements. Each Element is one shape
// (rectangle, rounded rectangle or path), a set operator combining it with
// everything below it, an antialiasing flag and a generation id. Save and
// Restore scope elements the way a canvas does.
//
// Reduce collapses a stack, relative to a query rectangle, into the minimal
// ordered element list plus an initial in/out state needed to reproduce the
// clip inside that rectangle.
package clip
