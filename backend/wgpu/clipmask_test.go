package wgpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend/soft"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/clipmask"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/recording"
)

// holes are anti-aliased differences, more than the coverage fast path
// accepts.
var holes = []gr.Rect{
	gr.RectLTRB(2, 2, 8, 8),
	gr.RectLTRB(12, 2, 18, 8),
	gr.RectLTRB(22, 2, 28, 8),
	gr.RectLTRB(2, 12, 8, 18),
	gr.RectLTRB(12, 12, 18, 18),
	gr.RectLTRB(22, 12, 28, 18),
}

func holesClip() *clip.Data {
	s := clip.NewStack()
	for _, r := range holes {
		s.ClipRect(r, clip.OpDifference, true)
	}
	return &clip.Data{Stack: s}
}

func inHole(x, y int) bool {
	px, py := float64(x)+0.5, float64(y)+0.5
	for _, r := range holes {
		if px >= r.Left && px < r.Right && py >= r.Top && py < r.Bottom {
			return true
		}
	}
	return false
}

func TestClipMaskManager_SoftwareMaskUpload(t *testing.T) {
	p, _, q := newTestProvider(t, &noop.Adapter{})
	d := soft.New()
	rt, err := d.NewSurface(32, 24)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	m := clipmask.New(d, p, d.PathRenderers(), clipmask.WithSoftwareOnly(true))
	cd := holesClip()

	ds := gpu.NewDrawState(rt)
	ds.ClipEnabled = true
	setup, err := m.SetupClipping(ds, cd, nil)
	if err != nil {
		t.Fatalf("SetupClipping: %v", err)
	}
	if setup.MaskType != clipmask.MaskAlpha {
		t.Fatalf("mask = %v, want alpha", setup.MaskType)
	}
	if _, ok := setup.Mask.(*Texture); !ok {
		t.Fatalf("mask is %T, want a provider texture", setup.Mask)
	}
	setup.Restore()

	if len(q.data) != 1 {
		t.Fatalf("%d uploads, want 1", len(q.data))
	}
	if size := q.sizes[0]; size.Width != 32 || size.Height != 24 {
		t.Fatalf("upload size = %dx%d, want 32x24", size.Width, size.Height)
	}
	pitch := int(q.layouts[0].BytesPerRow)
	bad := 0
	for y := range 24 {
		for x := range 32 {
			want := byte(0xff)
			if inHole(x, y) {
				want = 0
			}
			if got := q.data[0][y*pitch+x]; got != want {
				if bad < 3 {
					t.Errorf("mask (%d,%d) = %#x, want %#x", x, y, got, want)
				}
				bad++
			}
		}
	}
	if bad > 0 {
		t.Errorf("%d mask pixels differ", bad)
	}

	// The same clip is served from the mask cache.
	ds = gpu.NewDrawState(rt)
	ds.ClipEnabled = true
	again, err := m.SetupClipping(ds, cd, nil)
	if err != nil {
		t.Fatalf("SetupClipping again: %v", err)
	}
	if again.Mask != setup.Mask {
		t.Error("second setup built a new mask")
	}
	again.Restore()
	if got := p.Stats().Uploads; got != 1 {
		t.Errorf("Uploads = %d, want 1", got)
	}
}

func TestPrepare_StencilClipRecording(t *testing.T) {
	p, dev, _ := newTestProvider(t, &noop.Adapter{})
	d := soft.New()
	rt, err := d.NewSurface(32, 24)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	rec := recording.NewRecorder(d)
	m := clipmask.New(rec, d, d.PathRenderers(), clipmask.WithAlphaMasks(false))

	ds := gpu.NewDrawState(rt)
	ds.ClipEnabled = true
	setup, err := m.SetupClipping(ds, holesClip(), nil)
	if err != nil {
		t.Fatalf("SetupClipping: %v", err)
	}
	if setup.MaskType != clipmask.MaskStencil {
		t.Fatalf("mask = %v, want stencil", setup.MaskType)
	}
	if err := rec.DrawRect(ds, gpu.Bounds(rt).Rect(), false); err != nil {
		t.Fatalf("DrawRect: %v", err)
	}
	setup.Restore()
	trace := rec.Finish()

	plan, err := p.Prepare(trace, gputypes.TextureFormatR8Unorm)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if plan.Clears == 0 {
		t.Error("no clears, want the stencil clip cleared")
	}
	if got := len(plan.Draws) + plan.Clears; got != trace.Len() {
		t.Errorf("%d draws + clears, want %d commands", got, trace.Len())
	}
	if n := p.PipelineCount(); n == 0 || n >= len(plan.Draws) || n != len(dev.pipelines) {
		t.Errorf("%d pipelines (%d created) for %d draws", n, len(dev.pipelines), len(plan.Draws))
	}
	for i, desc := range dev.pipelines {
		if desc.DepthStencil == nil {
			t.Errorf("pipeline %d has no depth-stencil state", i)
		}
	}

	// The clipped draw tests the clip bit.
	last := plan.Draws[len(plan.Draws)-1]
	if last.Index != trace.Len()-1 || last.Type != recording.CmdDrawRect {
		t.Fatalf("last draw = command %d (%v), want the clipped rect", last.Index, last.Type)
	}
	front := last.Pipeline.Key.Stencil.Front
	if front.Func != gpu.StencilEqual || front.FuncMask != 0x80 {
		t.Errorf("clipped draw stencil = %v, want Equal on the clip bit", front)
	}
	if last.Pipeline.StencilRef != 0x80 {
		t.Errorf("stencil ref = %#x, want 0x80", last.Pipeline.StencilRef)
	}
	if len(last.Uniforms) != maskUniformSize {
		t.Errorf("uniforms = %d bytes, want %d", len(last.Uniforms), maskUniformSize)
	}
}
