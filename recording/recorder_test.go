package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend/soft"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/clipmask"
	"github.com/gogpu/gr/gpu"
)

// notch returns a concave path that default renderers can only stencil.
func notch() *gr.Path {
	p := gr.NewPath()
	p.MoveTo(8, 8)
	p.LineTo(24, 8)
	p.LineTo(24, 24)
	p.LineTo(16, 14)
	p.LineTo(8, 24)
	p.Close()
	return p
}

// recordClippedFill sets up a stencil clip through a recorder on dev and
// fills rt through it.
func recordClippedFill(t *testing.T, dev *soft.Device, rt *soft.Surface) *Recording {
	t.Helper()
	rec := NewRecorder(dev)
	m := clipmask.New(rec, dev, dev.PathRenderers(), clipmask.WithAlphaMasks(false))

	stack := clip.NewStack()
	stack.ClipRect(gr.RectLTRB(4, 4, 28, 28), clip.OpIntersect, false)
	stack.ClipPath(notch(), clip.OpDifference, false)

	ds := gpu.NewDrawState(rt)
	ds.ClipEnabled = true
	setup, err := m.SetupClipping(ds, &clip.Data{Stack: stack}, nil)
	if err != nil {
		t.Fatalf("SetupClipping: %v", err)
	}
	if setup.MaskType != clipmask.MaskStencil {
		t.Fatalf("mask type = %v, want stencil", setup.MaskType)
	}
	if err := rec.DrawRect(ds, gr.RectLTRB(0, 0, 32, 32), false); err != nil {
		t.Fatalf("DrawRect: %v", err)
	}
	setup.Restore()
	return rec.Finish()
}

func TestRecordStencilClip(t *testing.T) {
	dev := soft.New()
	rt, err := dev.NewSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	r := recordClippedFill(t, dev, rt)

	types := r.Types()
	if len(types) < 3 {
		t.Fatalf("recorded %v", types)
	}
	if types[0] != CmdClearStencilClip {
		t.Errorf("first command = %v, want ClearStencilClip", types[0])
	}
	if types[len(types)-1] != CmdDrawRect {
		t.Errorf("last command = %v, want DrawRect", types[len(types)-1])
	}
	if r.Count(CmdStencilPath) == 0 {
		t.Errorf("no StencilPath for a concave element: %v", types)
	}
	if got := len(r.Resources().Targets()); got != 1 {
		t.Errorf("targets = %d, want 1", got)
	}
	if r.Resources().Target(0) != gpu.RenderTarget(rt) {
		t.Error("target 0 is not the draw target")
	}

	// The forwarded draws rendered the clip.
	if rt.AlphaAt(6, 6) == 0 {
		t.Error("pixel inside the clip not drawn")
	}
	if rt.AlphaAt(12, 12) != 0 || rt.AlphaAt(1, 1) != 0 {
		t.Error("pixel outside the clip drawn")
	}
}

func TestPlaybackOnAnotherDevice(t *testing.T) {
	src := soft.New()
	srcRT, err := src.NewSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	r := recordClippedFill(t, src, srcRT)

	dst := soft.New()
	dstRT, err := dst.NewSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	remap := WithTargetMap(func(rt gpu.RenderTarget) gpu.RenderTarget {
		if rt == gpu.RenderTarget(srcRT) {
			return dstRT
		}
		return rt
	})
	if err := r.Playback(dst, remap); err != nil {
		t.Fatalf("Playback: %v", err)
	}

	for y := range 32 {
		for x := range 32 {
			if a, b := srcRT.AlphaAt(x, y), dstRT.AlphaAt(x, y); a != b {
				t.Fatalf("alpha (%d,%d): recorded %d, replayed %d", x, y, a, b)
			}
			if a, b := srcRT.StencilAt(x, y), dstRT.StencilAt(x, y); a != b {
				t.Fatalf("stencil (%d,%d): recorded %#x, replayed %#x", x, y, a, b)
			}
		}
	}
	if srcRT.AlphaAt(12, 12) != 0 {
		t.Error("source changed by playback")
	}
}

func TestPlaybackError(t *testing.T) {
	dev := soft.New()
	rt, err := dev.NewSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	r := recordClippedFill(t, dev, rt)

	toNil := WithTargetMap(func(gpu.RenderTarget) gpu.RenderTarget { return nil })
	err = r.Playback(dev, toNil)
	if !errors.Is(err, soft.ErrNotSoftTarget) {
		t.Errorf("Playback = %v, want ErrNotSoftTarget", err)
	}
}

func TestRecorderWithoutTarget(t *testing.T) {
	rec := NewRecorder(nil)
	if caps := rec.Caps(); caps != (gpu.Caps{}) {
		t.Errorf("Caps = %+v, want zero", caps)
	}

	rt := &fakeTarget{w: 8, h: 8}
	ds := gpu.NewDrawState(rt)
	p := notch()

	steps := []struct {
		name string
		call func() error
		want CommandType
	}{
		{"clear", func() error { return rec.Clear(rt, gr.IRectWH(8, 8), 0xff000000) }, CmdClear},
		{"stencil clear", func() error { return rec.ClearStencilClip(rt, gr.IRectWH(8, 8), true) }, CmdClearStencilClip},
		{"rect", func() error { return rec.DrawRect(ds, gr.RectLTRB(1, 1, 4, 4), true) }, CmdDrawRect},
		{"path", func() error { return rec.DrawPath(ds, p, false) }, CmdDrawPath},
		{"stencil path", func() error { return rec.StencilPath(ds, p) }, CmdStencilPath},
	}
	for i, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if err := s.call(); err != nil {
				t.Fatalf("call: %v", err)
			}
			if rec.Len() != i+1 {
				t.Fatalf("Len = %d, want %d", rec.Len(), i+1)
			}
		})
	}

	r := rec.Finish()
	if rec.Len() != 0 {
		t.Errorf("Finish did not reset the recorder")
	}
	for i, s := range steps {
		if got := r.Commands()[i].Type(); got != s.want {
			t.Errorf("command %d = %v, want %v", i, got, s.want)
		}
	}
	if got := len(r.Resources().Targets()); got != 1 {
		t.Errorf("targets = %d, want 1 deduplicated", got)
	}
	if c, ok := r.Commands()[2].(DrawRectCommand); !ok || !c.AA || c.Rect != gr.RectLTRB(1, 1, 4, 4) {
		t.Errorf("DrawRect command = %+v", r.Commands()[2])
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	rec := NewRecorder(nil)
	rt := &fakeTarget{w: 8, h: 8}
	ds := gpu.NewDrawState(rt)
	ds.Alpha = 0x40
	p := notch()

	if err := rec.DrawPath(ds, p, false); err != nil {
		t.Fatal(err)
	}
	ds.Alpha = 0x80
	ds.AddCoverageProcessor(constProcessor(1))
	p.LineTo(100, 100)

	r := rec.Finish()
	cmd := r.Commands()[0].(DrawPathCommand)
	state := r.Resources().State(cmd.State)
	if state.Alpha != 0x40 || state.NumProcessors() != 0 {
		t.Errorf("state snapshot changed: alpha=%#x processors=%d", state.Alpha, state.NumProcessors())
	}
	if got := r.Resources().Path(cmd.Path).Bounds(); got.Right != 24 {
		t.Errorf("path snapshot changed: bounds %v", got)
	}
	if r.Resources().State(99) != nil || r.Resources().Path(99) != nil || r.Resources().Target(99) != nil {
		t.Error("out of range references resolved")
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdClear, "Clear"},
		{CmdClearStencilClip, "ClearStencilClip"},
		{CmdDrawRect, "DrawRect"},
		{CmdDrawPath, "DrawPath"},
		{CmdStencilPath, "StencilPath"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
	if PathRef(InvalidRef).IsValid() || !StateRef(0).IsValid() || TargetRef(InvalidRef).IsValid() {
		t.Error("IsValid mismatch")
	}
}

type fakeTarget struct{ w, h int }

func (f *fakeTarget) Width() int                        { return f.w }
func (f *fakeTarget) Height() int                       { return f.h }
func (f *fakeTarget) SampleCount() int                  { return 1 }
func (f *fakeTarget) StencilBuffer() *gpu.StencilBuffer { return nil }

type constProcessor float64

func (c constProcessor) Name() string          { return "const" }
func (c constProcessor) Eval(gr.Point) float64 { return float64(c) }
