package clipmask

import (
	"fmt"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/internal/swmask"
)

// createSoftwareClipMask rasterizes elements on the CPU and uploads the
// result. Layout and caching match createAlphaClipMask.
func (m *Manager) createSoftwareClipMask(genID uint32, initial clip.InitialState, elements []*clip.Element, bounds gr.IRect) (gpu.Texture, error) {
	log := m.logger()
	if tex, ok := m.cache.Lookup(genID, bounds); ok {
		log.Debug("clipmask: software mask cache hit", "genID", genID, "bounds", bounds)
		return tex, nil
	}
	log.Debug("clipmask: rasterizing software mask", "genID", genID, "bounds", bounds, "elements", len(elements))

	helper := swmask.New()
	maskBounds := gr.IRectWH(bounds.Width(), bounds.Height())
	if err := helper.Init(maskBounds, gr.Translate(-float64(bounds.Left), -float64(bounds.Top)).Aff3()); err != nil {
		return nil, fmt.Errorf("clipmask: software mask: %w", err)
	}
	if initial == clip.AllIn {
		helper.Clear(0xff)
	} else {
		helper.Clear(0)
	}

	for _, e := range elements {
		op := e.Op()
		if op == clip.OpIntersect || op == clip.OpReverseDifference {
			// Both clear everything outside the shape; reverse difference
			// first inverts the mask.
			if op == clip.OpReverseDifference {
				helper.DrawRect(bounds.Rect(), clip.OpXOR, false, 0xff)
			}
			outside := e.AsPath()
			outside.ToggleInverseFillType()
			helper.DrawPath(outside, clip.OpReplace, e.IsAA(), 0)
			continue
		}
		// The remaining ops only touch pixels inside the shape.
		switch e.Type() {
		case clip.TypeEmpty:
		case clip.TypeRect:
			helper.DrawRect(e.Rect(), op, e.IsAA(), 0xff)
		default:
			helper.DrawPath(e.AsPath(), op, e.IsAA(), 0xff)
		}
	}

	result, err := m.cache.Store(genID, bounds, gpu.TextureDesc{
		Width:  bounds.Width(),
		Height: bounds.Height(),
		Format: m.maskFormat(true),
	})
	if err != nil {
		return nil, err
	}
	if err := helper.Upload(m.provider, result); err != nil {
		m.cache.Reset()
		return nil, fmt.Errorf("%w: %w", ErrTextureAlloc, err)
	}
	return result, nil
}
