package clipmask

import (
	"fmt"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// CacheStats counts mask cache activity.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Stores uint64
}

// MaskCache holds the most recent alpha mask, keyed by the generation id
// of the reduced clip and its clip-space bounds. It owns the texture:
// Reset hands it back to the provider's scratch pool and Purge destroys
// it. A texture returned by Lookup or Store stays valid until the next
// Store, Reset or Purge.
type MaskCache struct {
	provider gpu.TextureProvider

	valid  bool
	genID  uint32
	bounds gr.IRect
	tex    gpu.Texture

	stats CacheStats
}

// NewMaskCache returns an empty cache allocating from provider.
func NewMaskCache(provider gpu.TextureProvider) *MaskCache {
	return &MaskCache{provider: provider}
}

// SetProvider purges the cache and switches to provider.
func (c *MaskCache) SetProvider(provider gpu.TextureProvider) {
	c.Purge()
	c.provider = provider
}

// Lookup returns the cached mask for genID and bounds.
func (c *MaskCache) Lookup(genID uint32, bounds gr.IRect) (gpu.Texture, bool) {
	if c.valid && c.genID == genID && c.bounds == bounds {
		c.stats.Hits++
		return c.tex, true
	}
	c.stats.Misses++
	return nil, false
}

// Store drops the current entry and allocates a texture for genID and
// bounds. The texture is at least as large as desc and holds unspecified
// contents.
func (c *MaskCache) Store(genID uint32, bounds gr.IRect, desc gpu.TextureDesc) (gpu.Texture, error) {
	c.Reset()
	if c.provider == nil {
		return nil, fmt.Errorf("%w: no texture provider", ErrTextureAlloc)
	}
	tex, err := c.provider.AcquireScratchTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrTextureAlloc, desc, err)
	}
	c.valid = true
	c.genID = genID
	c.bounds = bounds
	c.tex = tex
	c.stats.Stores++
	return tex, nil
}

// Reset drops the current entry, returning its texture to the scratch pool.
func (c *MaskCache) Reset() {
	if c.tex != nil {
		c.provider.RecycleTexture(c.tex)
	}
	c.clear()
}

// Purge drops the current entry and releases its texture memory.
func (c *MaskCache) Purge() {
	if c.tex != nil {
		c.provider.DestroyTexture(c.tex)
	}
	c.clear()
}

// Stats returns the cache counters.
func (c *MaskCache) Stats() CacheStats { return c.stats }

func (c *MaskCache) clear() {
	c.valid = false
	c.genID = 0
	c.bounds = gr.IRect{}
	c.tex = nil
}
