// Package cache provides a keyed scratch pool with least-recently-used
// eviction under a byte budget. Texture providers park idle scratch
// textures in a Pool and reclaim them by description.
//
// Pool is safe for concurrent use.
package cache
