package soft

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend"
	"github.com/gogpu/gr/gpu"
)

func newTarget(t *testing.T, d *Device, w, h int) *Surface {
	t.Helper()
	s, err := d.NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

type halfProc struct{}

func (halfProc) Name() string          { return "half" }
func (halfProc) Eval(gr.Point) float64 { return 0.5 }

func TestDeviceRegistered(t *testing.T) {
	d := backend.Get(backend.Soft)
	if d == nil {
		t.Fatal("soft device not registered")
	}
	if _, ok := d.(*Device); !ok || d.Name() != backend.Soft {
		t.Errorf("Get(soft) = %T %q", d, d.Name())
	}
}

func TestClearAndDrawRect(t *testing.T) {
	d := New()
	s := newTarget(t, d, 8, 8)
	if err := d.Clear(s, gr.IRectLTRB(0, 0, 4, 8), 0xff000000); err != nil {
		t.Fatal(err)
	}
	if s.AlphaAt(3, 0) != 0xff || s.AlphaAt(4, 0) != 0 {
		t.Errorf("clear: (3,0)=%d (4,0)=%d", s.AlphaAt(3, 0), s.AlphaAt(4, 0))
	}

	ds := gpu.NewDrawState(s)
	ds.Blend = gpu.ClipOpBlend(clipOpDifference)
	ds.ScissorEnabled = true
	ds.Scissor = gr.IRectLTRB(0, 0, 8, 4)
	if err := d.DrawRect(ds, gr.Rect{Left: 2, Right: 6, Bottom: 8}, false); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want uint8
	}{
		{1, 1, 0xff}, // outside the rect
		{2, 1, 0},    // subtracted
		{2, 5, 0xff}, // scissored away
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := s.AlphaAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCoverageProcessorLerp(t *testing.T) {
	d := New()
	s := newTarget(t, d, 4, 4)
	s.Fill(0)
	ds := gpu.NewDrawState(s)
	ds.AddCoverageProcessor(halfProc{})
	if err := d.DrawRect(ds, gr.Rect{Right: 4, Bottom: 4}, false); err != nil {
		t.Fatal(err)
	}
	if got := s.AlphaAt(1, 1); got != 128 {
		t.Errorf("half coverage replace = %d, want 128", got)
	}

	ds = gpu.NewDrawState(s)
	ds.Alpha = 0
	ds.AddColorProcessor(halfProc{})
	if err := d.DrawRect(ds, gr.Rect{Right: 4, Bottom: 4}, true); err != nil {
		t.Fatal(err)
	}
	if got := s.AlphaAt(1, 1); got != 0 {
		t.Errorf("zero alpha replace = %d, want 0", got)
	}
}

func TestStencilTestAndOps(t *testing.T) {
	d := New()
	s := newTarget(t, d, 8, 8)
	sb := s.StencilBuffer()
	if sb == nil || sb.Bits() != DefaultStencilBits {
		t.Fatalf("stencil buffer = %v", sb)
	}
	if err := d.ClearStencilClip(s, gr.IRectLTRB(0, 0, 4, 8), true); err != nil {
		t.Fatal(err)
	}
	if s.StencilAt(0, 0) != 0x80 || s.StencilAt(4, 0) != 0 {
		t.Fatalf("clear stencil: %#x %#x", s.StencilAt(0, 0), s.StencilAt(4, 0))
	}

	// Count a triangle into the user bits.
	tri := gr.NewPath()
	tri.MoveTo(0, 0)
	tri.LineTo(8, 0)
	tri.LineTo(0, 8)
	tri.Close()
	ds := gpu.NewDrawState(s)
	ds.Stencil = gpu.StencilCountElement
	ds.Stencil.Front.WriteMask &= sb.UserBits()
	if err := d.StencilPath(ds, tri); err != nil {
		t.Fatal(err)
	}
	if s.StencilAt(1, 1) != 0x81 || s.StencilAt(5, 1) != 0x01 || s.StencilAt(7, 7) != 0 {
		t.Errorf("counted stencil: %#x %#x %#x", s.StencilAt(1, 1), s.StencilAt(5, 1), s.StencilAt(7, 7))
	}
	if s.AlphaAt(1, 1) != 0 {
		t.Error("StencilPath wrote colour")
	}

	// Draw only where the clip bit is set.
	s.Fill(0)
	ds = gpu.NewDrawState(s)
	ds.Stencil = gpu.SameStencil(gputypes.StencilOperationKeep, gputypes.StencilOperationKeep,
		gpu.StencilEqual, 0x80, 0x80, 0)
	if err := d.DrawRect(ds, gr.Rect{Right: 8, Bottom: 8}, false); err != nil {
		t.Fatal(err)
	}
	if s.AlphaAt(2, 6) != 0xff || s.AlphaAt(6, 6) != 0 {
		t.Errorf("stencil-tested draw: %d %d", s.AlphaAt(2, 6), s.AlphaAt(6, 6))
	}

	noStencil := New(WithStencilBits(0))
	ns := newTarget(t, noStencil, 4, 4)
	ds2 := gpu.NewDrawState(ns)
	ds2.Stencil = gpu.StencilInElement
	if err := noStencil.DrawRect(ds2, gr.Rect{Right: 1, Bottom: 1}, false); !errors.Is(err, ErrNoStencil) {
		t.Errorf("stencil without buffer = %v, want ErrNoStencil", err)
	}
}

func TestStencilWrapOps(t *testing.T) {
	wrap := gpu.SameStencil(gputypes.StencilOperationIncrementWrap, gputypes.StencilOperationKeep,
		gpu.StencilAlways, 0xff, 0, 0xff)
	tests := []struct {
		name    string
		support bool
		want    error
	}{
		{"supported", true, nil},
		{"unsupported", false, ErrNoStencilWrap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(WithStencilWrapOps(tt.support))
			if d.Caps().StencilWrapOps != tt.support {
				t.Fatalf("caps = %+v", d.Caps())
			}
			s := newTarget(t, d, 4, 4)
			ds := gpu.NewDrawState(s)
			ds.Stencil = wrap
			err := d.DrawRect(ds, gr.Rect{Right: 4, Bottom: 4}, false)
			if !errors.Is(err, tt.want) {
				t.Fatalf("DrawRect = %v, want %v", err, tt.want)
			}
			want := uint16(1)
			if tt.want != nil {
				want = 0
			}
			if got := s.StencilAt(1, 1); got != want {
				t.Errorf("stencil = %#x, want %#x", got, want)
			}
		})
	}
}

func TestScratchTextures(t *testing.T) {
	d := New()
	desc := gpu.TextureDesc{Width: 20, Height: 10, Format: gputypes.TextureFormatR8Unorm, Renderable: true}
	tex, err := d.AcquireScratchTexture(desc)
	if err != nil {
		t.Fatal(err)
	}
	got := tex.Desc()
	if got.Width != 32 || got.Height != 16 || !got.Fits(desc) {
		t.Errorf("scratch desc = %v", got)
	}
	rt := tex.RenderTarget()
	if rt == nil || rt.StencilBuffer() == nil {
		t.Fatal("renderable scratch texture has no stencil")
	}
	s := tex.(*Surface)
	s.stencil[0] = 0x80
	rt.StencilBuffer().SetLastClip(9, gr.IRectWH(1, 1), gr.IPoint{})

	d.RecycleTexture(tex)
	again, err := d.AcquireScratchTexture(gpu.TextureDesc{Width: 30, Height: 16, Format: gputypes.TextureFormatR8Unorm, Renderable: true})
	if err != nil {
		t.Fatal(err)
	}
	if again != tex {
		t.Error("expected the recycled texture to be reused")
	}
	if s.StencilAt(0, 0) != 0 || !s.StencilBuffer().MustRenderClip(9, gr.IRectWH(1, 1), gr.IPoint{}) {
		t.Error("reused texture kept its stencil contents")
	}
	if st := d.Stats(); st.Pool.Hits != 1 || st.TexturesCreated != 1 {
		t.Errorf("stats = %+v", st)
	}

	if err := d.WriteAlpha(again, 2, 2, []byte{1, 2, 0, 3, 4, 0}, 3); err != nil {
		t.Fatal(err)
	}
	if s.AlphaAt(1, 1) != 4 || s.AlphaAt(2, 0) != 0 {
		t.Errorf("upload: %d %d", s.AlphaAt(1, 1), s.AlphaAt(2, 0))
	}
	if err := d.WriteAlpha(again, 64, 1, make([]byte, 64), 64); err == nil {
		t.Error("oversized upload should fail")
	}

	d.DestroyTexture(again)
	if err := d.WriteAlpha(again, 1, 1, []byte{0}, 1); !errors.Is(err, ErrDestroyed) {
		t.Errorf("write after destroy = %v", err)
	}
}

func TestTextureErrors(t *testing.T) {
	d := New(WithAlpha8Renderable(false), WithMaxTextureSize(64))
	if d.IsRenderable(gputypes.TextureFormatR8Unorm) {
		t.Error("A8 should not be renderable")
	}
	_, err := d.AcquireScratchTexture(gpu.TextureDesc{Width: 4, Height: 4, Format: gputypes.TextureFormatR8Unorm, Renderable: true})
	if !errors.Is(err, ErrNotRenderable) {
		t.Errorf("renderable A8 = %v, want ErrNotRenderable", err)
	}
	if _, err := d.AcquireScratchTexture(gpu.TextureDesc{Width: 4, Height: 4, Format: gputypes.TextureFormatR8Unorm}); err != nil {
		t.Errorf("upload-only A8: %v", err)
	}
	_, err = d.AcquireScratchTexture(gpu.TextureDesc{Width: 65, Height: 4, Format: gputypes.TextureFormatRGBA8Unorm})
	if !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("oversized = %v, want ErrTextureTooLarge", err)
	}
	tex, err := d.AcquireScratchTexture(gpu.TextureDesc{Width: 60, Height: 4, Format: gputypes.TextureFormatRGBA8Unorm})
	if err != nil || tex.Desc().Width != 64 {
		t.Errorf("bucket clamped to max size: %v %v", tex, err)
	}
}

func TestTextureBudget(t *testing.T) {
	d := New(WithTextureBudget(16*16 + 1))
	desc := gpu.TextureDesc{Width: 16, Height: 16, Format: gputypes.TextureFormatR8Unorm}
	a, _ := d.AcquireScratchTexture(desc)
	b, _ := d.AcquireScratchTexture(desc)
	d.RecycleTexture(a)
	d.RecycleTexture(b)
	if st := d.Stats().Pool; st.Evictions != 1 || st.Idle != 1 {
		t.Errorf("pool = %+v", st)
	}
	if !a.(*Surface).destroyed {
		t.Error("evicted texture was not destroyed")
	}
	d.Close()
	if !b.(*Surface).destroyed {
		t.Error("Close did not release idle textures")
	}
}

func TestDefaultPathRenderers(t *testing.T) {
	chain := DefaultPathRenderers()
	convex := gr.NewPath()
	convex.AddRect(gr.Rect{Right: 4, Bottom: 4})
	concave := gr.NewPath()
	concave.MoveTo(0, 0)
	concave.LineTo(10, 0)
	concave.LineTo(5, 2)
	concave.LineTo(10, 10)
	concave.LineTo(0, 10)
	concave.Close()

	tests := []struct {
		name     string
		p        *gr.Path
		drawType gpu.DrawType
		want     string
		support  gpu.StencilSupport
	}{
		{"convex aa", convex, gpu.DrawColorAA, "aaconvex", gpu.StencilNone},
		{"concave aa", concave, gpu.DrawColorAA, "", gpu.StencilNone},
		{"concave stencil", concave, gpu.DrawStencilOnly, "default", gpu.StencilOnlySupport},
		{"concave stencil and color", concave, gpu.DrawStencilAndColor, "", gpu.StencilNone},
		{"convex stencil and color", convex, gpu.DrawStencilAndColor, "default", gpu.StencilNoRestriction},
		{"convex stencil and color aa", convex, gpu.DrawStencilAndColorAA, "", gpu.StencilNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, support := chain.Lookup(tt.p, tt.drawType)
			name := ""
			if r != nil {
				name = r.Name()
			}
			if name != tt.want || support != tt.support {
				t.Errorf("Lookup = %q/%v, want %q/%v", name, support, tt.want, tt.support)
			}
		})
	}
}
