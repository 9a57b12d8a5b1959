package wgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/internal/cache"
)

var (
	// ErrNilHALDevice is returned when a provider is created without a device.
	ErrNilHALDevice = errors.New("wgpu: nil HAL device")

	// ErrNilHALQueue is returned when a provider is created without a queue.
	ErrNilHALQueue = errors.New("wgpu: nil HAL queue")

	// ErrNoHALAccess is returned by NewFromProvider when the host does not
	// expose HAL types.
	ErrNoHALAccess = errors.New("wgpu: provider does not expose HAL types")

	// ErrForeignTexture is returned for textures created by another provider.
	ErrForeignTexture = errors.New("wgpu: texture not created by this provider")

	// ErrDestroyed is returned when using a destroyed texture or a closed provider.
	ErrDestroyed = errors.New("wgpu: texture destroyed")

	// ErrNotRenderable is returned for renderable requests in a format the
	// adapter cannot render to.
	ErrNotRenderable = errors.New("wgpu: format not renderable")
)

// copyPitchAlignment is the row alignment HAL requires for texture writes.
const copyPitchAlignment = 256

// stencilBits is the depth of the Stencil8 attachment.
const stencilBits = 8

// Stats reports provider activity.
type Stats struct {
	TexturesCreated   uint64
	TexturesDestroyed uint64
	Uploads           uint64
	UploadBytes       uint64
	Pool              cache.Stats
}

// Provider implements gpu.TextureProvider on a HAL device.
type Provider struct {
	adapter hal.Adapter
	device  hal.Device
	queue   hal.Queue
	owned   bool
	opts    options
	logger  *slog.Logger

	pool  *cache.Pool[gpu.TextureDesc, *Texture]
	pipes pipelineCache

	mu     sync.Mutex
	closed bool
	live   map[*Texture]struct{}

	created, destroyed, uploads, uploadBytes atomic.Uint64
}

// New returns a provider using device and queue. adapter may be nil, in
// which case every format the provider uses is assumed renderable except
// R8Unorm.
func New(adapter hal.Adapter, device hal.Device, queue hal.Queue, opts ...Option) (*Provider, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Provider{
		adapter: adapter,
		device:  device,
		queue:   queue,
		opts:    o,
		logger:  o.logger,
		live:    make(map[*Texture]struct{}),
	}
	p.pool = cache.NewPool(o.budget, p.destroy)
	return p, nil
}

// Open opens a device on adapter and returns a provider that owns it.
func Open(adapter hal.Adapter, opts ...Option) (*Provider, error) {
	if adapter == nil {
		return nil, errors.New("wgpu: nil HAL adapter")
	}
	od, err := adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	p, err := New(adapter, od.Device, od.Queue, opts...)
	if err != nil {
		return nil, err
	}
	p.owned = true
	p.log().Info("wgpu: clip mask provider opened device")
	return p, nil
}

// NewFromProvider borrows the device of a host application. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue. The adapter is used for capability queries when
// provider.Adapter() is a hal.Adapter.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Provider, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	adapter, _ := provider.Adapter().(hal.Adapter)

	p, err := New(adapter, device, queue, opts...)
	if err != nil {
		return nil, err
	}
	info := provider.AdapterInfo()
	p.log().Info("wgpu: clip mask provider attached",
		"adapter", info.Name, "type", info.Type.String(), "surface", provider.SurfaceFormat())
	return p, nil
}

func (p *Provider) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return gr.Logger()
}

// IsRenderable implements gpu.TextureProvider.
func (p *Provider) IsRenderable(format gputypes.TextureFormat) bool {
	if p.adapter == nil {
		return format != gputypes.TextureFormatR8Unorm
	}
	caps := p.adapter.TextureFormatCapabilities(format)
	return caps.Flags&hal.TextureFormatCapabilityRenderAttachment != 0
}

// AcquireScratchTexture implements gpu.TextureProvider. Requests are
// rounded to power-of-two buckets and served from the idle pool when
// possible.
func (p *Provider) AcquireScratchTexture(desc gpu.TextureDesc) (gpu.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Renderable && !p.IsRenderable(desc.Format) {
		return nil, fmt.Errorf("%w: %v", ErrNotRenderable, desc.Format)
	}
	key := desc.Approx()
	if t, ok := p.pool.Take(key); ok {
		if t.sb != nil {
			t.sb.InvalidateClip()
		}
		return t, nil
	}
	return p.create(key)
}

func (p *Provider) create(desc gpu.TextureDesc) (*Texture, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrDestroyed
	}

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if desc.Renderable {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	size := hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1}
	raw, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         p.opts.label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %v: %w", desc, err)
	}
	t := &Texture{desc: desc, raw: raw, samples: p.opts.sampleCount}

	if desc.Renderable && p.opts.stencil {
		st, err := p.device.CreateTexture(&hal.TextureDescriptor{
			Label:         p.opts.label + "-stencil",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   uint32(p.opts.sampleCount),
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatStencil8,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			p.device.DestroyTexture(raw)
			return nil, fmt.Errorf("wgpu: create stencil for %v: %w", desc, err)
		}
		t.stencil = st
		t.sb = gpu.NewStencilBuffer(stencilBits)
	}

	p.mu.Lock()
	p.live[t] = struct{}{}
	p.mu.Unlock()
	p.created.Add(1)
	p.log().Debug("wgpu: scratch texture created", "desc", desc, "stencil", t.stencil != nil)
	return t, nil
}

func (p *Provider) own(tex gpu.Texture) (*Texture, bool) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return nil, false
	}
	p.mu.Lock()
	_, ok = p.live[t]
	p.mu.Unlock()
	return t, ok
}

// RecycleTexture implements gpu.TextureProvider.
func (p *Provider) RecycleTexture(tex gpu.Texture) {
	t, ok := p.own(tex)
	if !ok {
		return
	}
	size := t.desc.SizeBytes()
	if t.stencil != nil {
		size += uint64(t.desc.Width) * uint64(t.desc.Height) * uint64(t.samples)
	}
	p.pool.Put(t.desc, t, size)
}

// DestroyTexture implements gpu.TextureProvider.
func (p *Provider) DestroyTexture(tex gpu.Texture) {
	if t, ok := p.own(tex); ok {
		p.destroy(t)
	}
}

func (p *Provider) destroy(t *Texture) {
	p.mu.Lock()
	_, ok := p.live[t]
	delete(p.live, t)
	p.mu.Unlock()
	if !ok {
		return
	}
	if t.stencil != nil {
		p.device.DestroyTexture(t.stencil)
	}
	p.device.DestroyTexture(t.raw)
	t.raw, t.stencil, t.sb = nil, nil, nil
	t.destroyed = true
	p.destroyed.Add(1)
}

// WriteAlpha implements gpu.TextureProvider. Rows are repacked to the HAL
// copy pitch before the write is queued.
func (p *Provider) WriteAlpha(tex gpu.Texture, width, height int, pixels []byte, stride int) error {
	t, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
	}
	if t.destroyed {
		return ErrDestroyed
	}
	if _, ok := p.own(t); !ok {
		return ErrForeignTexture
	}
	if t.desc.Format != gputypes.TextureFormatR8Unorm {
		return fmt.Errorf("wgpu: alpha upload to %v texture", t.desc.Format)
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	if width > t.desc.Width || height > t.desc.Height {
		return fmt.Errorf("wgpu: upload %dx%d exceeds texture %dx%d", width, height, t.desc.Width, t.desc.Height)
	}
	if need := (height-1)*stride + width; len(pixels) < need {
		return fmt.Errorf("wgpu: upload needs %d bytes, got %d", need, len(pixels))
	}

	pitch := alignPitch(width)
	data := make([]byte, pitch*height)
	for y := range height {
		copy(data[y*pitch:y*pitch+width], pixels[y*stride:y*stride+width])
	}
	err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.raw, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{BytesPerRow: uint32(pitch), RowsPerImage: uint32(height)},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	p.uploads.Add(1)
	p.uploadBytes.Add(uint64(len(data)))
	return nil
}

func alignPitch(width int) int {
	return (width + copyPitchAlignment - 1) / copyPitchAlignment * copyPitchAlignment
}

// Stats returns a snapshot of the provider counters.
func (p *Provider) Stats() Stats {
	return Stats{
		TexturesCreated:   p.created.Load(),
		TexturesDestroyed: p.destroyed.Load(),
		Uploads:           p.uploads.Load(),
		UploadBytes:       p.uploadBytes.Load(),
		Pool:              p.pool.Stats(),
	}
}

// Purge destroys every idle texture.
func (p *Provider) Purge() {
	p.pool.Purge()
}

// Close destroys every texture and pipeline the provider created. An owned
// device is destroyed too.
func (p *Provider) Close() {
	p.pool.Purge()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	live := make([]*Texture, 0, len(p.live))
	for t := range p.live {
		live = append(live, t)
	}
	p.mu.Unlock()

	for _, t := range live {
		p.destroy(t)
	}
	p.destroyPipelines()
	if p.owned {
		p.device.Destroy()
	}
}

var _ gpu.TextureProvider = (*Provider)(nil)
