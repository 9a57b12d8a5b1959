// Package effects provides the fragment processors the clip-mask manager
// attaches to a DrawState: analytic coverage for convex polygons and
// rounded rectangles, and a decal texture lookup for alpha masks.
package effects
