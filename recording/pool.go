package recording

import (
	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// ResourcePool stores resources referenced by recording commands.
// Paths and draw states are cloned on insertion so the recording is not
// affected by later changes to the caller's values.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	targets  []gpu.RenderTarget
	targetID map[gpu.RenderTarget]TargetRef
	paths    []*gr.Path
	states   []*gpu.DrawState
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		targetID: make(map[gpu.RenderTarget]TargetRef),
		paths:    make([]*gr.Path, 0, 16),
		states:   make([]*gpu.DrawState, 0, 32),
	}
}

// AddTarget returns the reference of rt, adding it on first use. Render
// targets are stored by identity.
func (p *ResourcePool) AddTarget(rt gpu.RenderTarget) TargetRef {
	if ref, ok := p.targetID[rt]; ok {
		return ref
	}
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := TargetRef(uint32(len(p.targets)))
	p.targets = append(p.targets, rt)
	p.targetID[rt] = ref
	return ref
}

// Target returns the render target for ref, or nil.
func (p *ResourcePool) Target(ref TargetRef) gpu.RenderTarget {
	if int(ref) >= len(p.targets) {
		return nil
	}
	return p.targets[ref]
}

// Targets returns every render target in first-use order.
func (p *ResourcePool) Targets() []gpu.RenderTarget { return p.targets }

// AddPath clones path into the pool.
func (p *ResourcePool) AddPath(path *gr.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// Path returns the path for ref, or nil.
func (p *ResourcePool) Path(ref PathRef) *gr.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (p *ResourcePool) PathCount() int { return len(p.paths) }

// AddState snapshots ds. Its render target is registered as well.
func (p *ResourcePool) AddState(ds *gpu.DrawState) StateRef {
	if ds.RenderTarget != nil {
		p.AddTarget(ds.RenderTarget)
	}
	p.states = append(p.states, ds.Clone())
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return StateRef(uint32(len(p.states) - 1))
}

// State returns the snapshot for ref, or nil. The snapshot must not be
// modified.
func (p *ResourcePool) State(ref StateRef) *gpu.DrawState {
	if int(ref) >= len(p.states) {
		return nil
	}
	return p.states[ref]
}

// StateCount returns the number of draw state snapshots.
func (p *ResourcePool) StateCount() int { return len(p.states) }

// Clear removes all resources from the pool.
func (p *ResourcePool) Clear() {
	p.targets = p.targets[:0]
	clear(p.targetID)
	p.paths = p.paths[:0]
	p.states = p.states[:0]
}
