package gpu

import (
	"github.com/gogpu/gr"
)

// DrawType is the way a caller intends to use a path renderer.
type DrawType uint8

const (
	DrawColor DrawType = iota
	DrawColorAA
	DrawStencilOnly
	DrawStencilAndColor
	DrawStencilAndColorAA
)

var drawTypeNames = [...]string{"Color", "ColorAA", "StencilOnly", "StencilAndColor", "StencilAndColorAA"}

func (t DrawType) String() string {
	if int(t) < len(drawTypeNames) {
		return drawTypeNames[t]
	}
	return "Unknown"
}

// IsAA reports whether the draw type asks for anti-aliasing.
func (t DrawType) IsAA() bool { return t == DrawColorAA || t == DrawStencilAndColorAA }

// StencilSupport is how well a renderer can draw a path into the stencil.
type StencilSupport uint8

const (
	// StencilNone means the renderer cannot stencil the path.
	StencilNone StencilSupport = iota
	// StencilOnlySupport means StencilPath works but DrawPath ignores the
	// state's stencil settings.
	StencilOnlySupport
	// StencilNoRestriction means DrawPath honours any stencil settings.
	StencilNoRestriction
)

var stencilSupportNames = [...]string{"None", "StencilOnly", "NoRestriction"}

func (s StencilSupport) String() string {
	if int(s) < len(stencilSupportNames) {
		return stencilSupportNames[s]
	}
	return "Unknown"
}

// PathRenderer draws paths on a Target.
type PathRenderer interface {
	Name() string
	CanDrawPath(p *gr.Path, aa bool) bool
	StencilSupport(p *gr.Path) StencilSupport
	DrawPath(t Target, ds *DrawState, p *gr.Path, aa bool) error
	StencilPath(t Target, ds *DrawState, p *gr.Path) error
}

// PathRendererChain picks the first renderer able to serve a request.
type PathRendererChain struct {
	renderers []PathRenderer
}

// NewPathRendererChain returns a chain trying renderers in order.
func NewPathRendererChain(renderers ...PathRenderer) *PathRendererChain {
	return &PathRendererChain{renderers: renderers}
}

// Add appends a renderer to the chain.
func (c *PathRendererChain) Add(r PathRenderer) {
	c.renderers = append(c.renderers, r)
}

// Len returns the number of renderers.
func (c *PathRendererChain) Len() int { return len(c.renderers) }

// Lookup returns a renderer for p and drawType along with its stencil
// support, or nil when none qualifies.
func (c *PathRendererChain) Lookup(p *gr.Path, drawType DrawType) (PathRenderer, StencilSupport) {
	if c == nil {
		return nil, StencilNone
	}
	minSupport := StencilNone
	switch drawType {
	case DrawStencilOnly:
		minSupport = StencilOnlySupport
	case DrawStencilAndColor, DrawStencilAndColorAA:
		minSupport = StencilNoRestriction
	}
	aa := drawType.IsAA()
	for _, r := range c.renderers {
		if !r.CanDrawPath(p, aa) {
			continue
		}
		support := r.StencilSupport(p)
		if support < minSupport {
			continue
		}
		return r, support
	}
	return nil, StencilNone
}
