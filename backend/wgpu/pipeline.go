package wgpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/recording"
)

//go:embed shaders/mask.wgsl
var maskShaderSource string

// maskUniformSize is the byte size of the per-draw uniform buffer.
// Layout: matrix rows (2 x vec4<f32>) + viewport, alpha, padding (vec4<f32>) = 48 bytes.
const maskUniformSize = 48

// vertexStride is the byte stride per vertex: 2 x float32 (x, y) = 8 bytes.
const vertexStride = 8

// ErrNoStencilAttachment is returned for a draw that tests or writes the
// stencil of a target without a stencil attachment.
var ErrNoStencilAttachment = errors.New("wgpu: stencil state on a target without stencil attachment")

// PipelineKey identifies a mask render pipeline.
type PipelineKey struct {
	Format      gputypes.TextureFormat
	Samples     int
	HasStencil  bool
	Stencil     gpu.StencilSettings
	Blend       gpu.Blend
	ColorWrites bool
}

// KeyFor returns the pipeline key of draws made with ds. format is the
// colour format assumed for render targets this package did not create.
func KeyFor(ds *gpu.DrawState, format gputypes.TextureFormat) PipelineKey {
	key := PipelineKey{
		Format:      format,
		Samples:     1,
		Stencil:     ds.Stencil,
		Blend:       ds.Blend,
		ColorWrites: !ds.NoColorWrites,
	}
	if rt := ds.RenderTarget; rt != nil {
		key.Samples = max(rt.SampleCount(), 1)
		key.HasStencil = rt.StencilBuffer() != nil
		if t, ok := rt.(*Texture); ok {
			key.Format = t.desc.Format
		}
	}
	return key
}

// Pipeline is a compiled mask pipeline and the stencil reference its
// render pass must set.
type Pipeline struct {
	Key        PipelineKey
	StencilRef uint32

	raw hal.RenderPipeline
}

// Raw returns the HAL pipeline.
func (pl *Pipeline) Raw() hal.RenderPipeline { return pl.raw }

// pipelineCache holds the shader, layouts and pipelines shared by every
// mask draw of a provider.
type pipelineCache struct {
	mu       sync.Mutex
	shader   hal.ShaderModule
	uniforms hal.BindGroupLayout
	layout   hal.PipelineLayout
	byKey    map[PipelineKey]*Pipeline
}

// Pipeline returns the render pipeline for key, creating it on first use.
func (p *Provider) Pipeline(key PipelineKey) (*Pipeline, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrDestroyed
	}

	c := &p.pipes
	c.mu.Lock()
	defer c.mu.Unlock()
	if pl, ok := c.byKey[key]; ok {
		return pl, nil
	}
	if err := p.createPipelineLayout(); err != nil {
		return nil, err
	}
	desc, ref, err := p.pipelineDescriptor(key)
	if err != nil {
		return nil, err
	}
	raw, err := p.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create mask pipeline: %w", err)
	}
	pl := &Pipeline{Key: key, StencilRef: ref, raw: raw}
	if c.byKey == nil {
		c.byKey = make(map[PipelineKey]*Pipeline)
	}
	c.byKey[key] = pl
	p.log().Debug("wgpu: mask pipeline created",
		"format", key.Format, "samples", key.Samples, "stencil", key.Stencil, "blend", key.Blend)
	return pl, nil
}

// PipelineCount returns the number of cached pipelines.
func (p *Provider) PipelineCount() int {
	p.pipes.mu.Lock()
	defer p.pipes.mu.Unlock()
	return len(p.pipes.byKey)
}

// createPipelineLayout compiles the mask shader and creates the uniform
// bind group layout and pipeline layout. The caller holds p.pipes.mu.
func (p *Provider) createPipelineLayout() error {
	c := &p.pipes
	if c.layout != nil {
		return nil
	}
	if c.shader == nil {
		shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  p.opts.label + "-shader",
			Source: hal.ShaderSource{WGSL: maskShaderSource},
		})
		if err != nil {
			return fmt.Errorf("wgpu: compile mask shader: %w", err)
		}
		c.shader = shader
	}
	if c.uniforms == nil {
		// One uniform buffer at group(0) binding(0), visible to vertex + fragment stages.
		uniforms, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: p.opts.label + "-uniform-layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create uniform bind group layout: %w", err)
		}
		c.uniforms = uniforms
	}
	layout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.opts.label + "-pipe-layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.uniforms},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create mask pipeline layout: %w", err)
	}
	c.layout = layout
	return nil
}

func (p *Provider) pipelineDescriptor(key PipelineKey) (*hal.RenderPipelineDescriptor, uint32, error) {
	var (
		depthStencil *hal.DepthStencilState
		ref          uint32
	)
	switch {
	case key.HasStencil:
		state, r, err := key.Stencil.DepthStencilState(gputypes.TextureFormatStencil8)
		if err != nil {
			return nil, 0, fmt.Errorf("wgpu: %w", err)
		}
		depthStencil, ref = halDepthStencil(state), r
	case !key.Stencil.IsDisabled():
		return nil, 0, fmt.Errorf("%w: %v", ErrNoStencilAttachment, key.Stencil)
	}

	blend := key.Blend.BlendState()
	writeMask := gputypes.ColorWriteMaskAll
	if !key.ColorWrites {
		writeMask = gputypes.ColorWriteMaskNone
	}
	c := &p.pipes
	return &hal.RenderPipelineDescriptor{
		Label:  p.opts.label + "-pipeline",
		Layout: c.layout,
		Vertex: hal.VertexState{
			Module:     c.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		DepthStencil: depthStencil,
		Multisample: gputypes.MultisampleState{
			Count: uint32(key.Samples),
			Mask:  0xFFFFFFFF,
		},
		Fragment: &hal.FragmentState{
			Module:     c.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: key.Format, Blend: &blend, WriteMask: writeMask},
			},
		},
	}, ref, nil
}

func halDepthStencil(s gputypes.DepthStencilState) *hal.DepthStencilState {
	face := func(f gputypes.StencilFaceState) hal.StencilFaceState {
		return hal.StencilFaceState{
			Compare:     f.Compare,
			FailOp:      halStencilOp(f.FailOp),
			DepthFailOp: halStencilOp(f.DepthFailOp),
			PassOp:      halStencilOp(f.PassOp),
		}
	}
	return &hal.DepthStencilState{
		Format:            s.Format,
		DepthWriteEnabled: s.DepthWriteEnabled,
		DepthCompare:      s.DepthCompare,
		StencilFront:      face(s.StencilFront),
		StencilBack:       face(s.StencilBack),
		StencilReadMask:   s.StencilReadMask,
		StencilWriteMask:  s.StencilWriteMask,
	}
}

func halStencilOp(op gputypes.StencilOperation) hal.StencilOperation {
	switch op {
	case gputypes.StencilOperationZero:
		return hal.StencilOperationZero
	case gputypes.StencilOperationReplace:
		return hal.StencilOperationReplace
	case gputypes.StencilOperationInvert:
		return hal.StencilOperationInvert
	case gputypes.StencilOperationIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case gputypes.StencilOperationDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case gputypes.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case gputypes.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}

// Uniforms packs the uniform buffer of a draw made with ds: the view
// matrix rows, the viewport size and the draw alpha.
func Uniforms(ds *gpu.DrawState) []byte {
	m := ds.ViewMatrix.Aff3()
	var w, h float32
	if rt := ds.RenderTarget; rt != nil {
		w, h = float32(rt.Width()), float32(rt.Height())
	}
	v := [maskUniformSize / 4]float32{
		float32(m[0]), float32(m[1]), float32(m[2]), 0,
		float32(m[3]), float32(m[4]), float32(m[5]), 0,
		w, h, float32(ds.Alpha) / 255, 0,
	}
	buf := make([]byte, maskUniformSize)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// PreparedDraw is a recorded draw lowered to pipeline state.
type PreparedDraw struct {
	// Index is the command's position in the recording.
	Index    int
	Type     recording.CommandType
	Pipeline *Pipeline
	Uniforms []byte
}

// Plan is the pipeline state of a recorded command trace.
type Plan struct {
	Draws []PreparedDraw
	// Clears counts colour and stencil clears, which become render pass
	// load operations rather than draws.
	Clears int
}

// Prepare lowers every draw of r to a cached pipeline and its uniforms.
// format is the colour format of render targets this provider did not
// create. Stencil functions must already be resolved against the clip.
func (p *Provider) Prepare(r *recording.Recording, format gputypes.TextureFormat) (*Plan, error) {
	res := r.Resources()
	plan := &Plan{}
	for i, cmd := range r.Commands() {
		var ref recording.StateRef
		switch c := cmd.(type) {
		case recording.DrawRectCommand:
			ref = c.State
		case recording.DrawPathCommand:
			ref = c.State
		case recording.StencilPathCommand:
			ref = c.State
		default:
			plan.Clears++
			continue
		}
		ds := res.State(ref)
		if ds == nil {
			return nil, fmt.Errorf("wgpu: command %d: invalid state reference %d", i, ref)
		}
		pl, err := p.Pipeline(KeyFor(ds, format))
		if err != nil {
			return nil, fmt.Errorf("wgpu: command %d (%v): %w", i, cmd.Type(), err)
		}
		plan.Draws = append(plan.Draws, PreparedDraw{
			Index:    i,
			Type:     cmd.Type(),
			Pipeline: pl,
			Uniforms: Uniforms(ds),
		})
	}
	p.log().Debug("wgpu: recording prepared", "draws", len(plan.Draws), "clears", plan.Clears,
		"pipelines", p.PipelineCount())
	return plan, nil
}

// destroyPipelines releases every pipeline and the shared layouts.
func (p *Provider) destroyPipelines() {
	c := &p.pipes
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, pl := range c.byKey {
		p.device.DestroyRenderPipeline(pl.raw)
		delete(c.byKey, key)
	}
	if c.layout != nil {
		p.device.DestroyPipelineLayout(c.layout)
		c.layout = nil
	}
	if c.uniforms != nil {
		p.device.DestroyBindGroupLayout(c.uniforms)
		c.uniforms = nil
	}
	if c.shader != nil {
		p.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}
