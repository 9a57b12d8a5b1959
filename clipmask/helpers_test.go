package clipmask

import (
	"testing"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend/soft"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/gpu"
)

type fixture struct {
	dev *soft.Device
	rt  *soft.Surface
	m   *Manager
}

func newFixture(t *testing.T, w, h int, devOpts []soft.Option, opts ...Option) *fixture {
	t.Helper()
	d := soft.New(devOpts...)
	rt, err := d.NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return &fixture{dev: d, rt: rt, m: New(d, d, d.PathRenderers(), opts...)}
}

// clippedDrawState returns an opaque replace draw state with clipping on.
func (f *fixture) clippedDrawState() *gpu.DrawState {
	ds := gpu.NewDrawState(f.rt)
	ds.ClipEnabled = true
	return ds
}

// fill clears the target, sets up cd and fills the whole target through
// the clip. The draw state is restored before returning.
func (f *fixture) fill(t *testing.T, cd *clip.Data) *Setup {
	t.Helper()
	f.rt.Fill(0)
	ds := f.clippedDrawState()
	setup, err := f.m.SetupClipping(ds, cd, nil)
	if err != nil {
		t.Fatalf("SetupClipping: %v", err)
	}
	full := gpu.Bounds(f.rt).Rect()
	if err := f.dev.DrawRect(ds, full, false); err != nil {
		t.Fatalf("DrawRect: %v", err)
	}
	setup.Restore()
	if ds.NumProcessors() != 0 || ds.ScissorEnabled || !ds.Stencil.IsDisabled() {
		t.Fatalf("draw state not restored: processors=%d scissor=%v stencil=%v",
			ds.NumProcessors(), ds.ScissorEnabled, ds.Stencil)
	}
	return setup
}

// inside reports whether the target pixel (x, y) was drawn.
func (f *fixture) inside(x, y int) bool { return f.rt.AlphaAt(x, y) >= 128 }

type clipStep struct {
	rect gr.Rect
	op   clip.Op
}

// expectInside evaluates steps at the centre of pixel (x, y) in clip space.
func expectInside(steps []clipStep, x, y int) bool {
	p := gr.Pt(float64(x)+0.5, float64(y)+0.5)
	in := true
	for _, s := range steps {
		e := s.rect.ContainsPoint(p)
		switch s.op {
		case clip.OpReplace:
			in = e
		case clip.OpIntersect:
			in = in && e
		case clip.OpUnion:
			in = in || e
		case clip.OpXOR:
			in = in != e
		case clip.OpDifference:
			in = in && !e
		case clip.OpReverseDifference:
			in = e && !in
		}
	}
	return in
}

func stackOf(steps []clipStep, aa bool) *clip.Stack {
	s := clip.NewStack()
	for _, st := range steps {
		s.ClipRect(st.rect, st.op, aa)
	}
	return s
}

// checkAgainst compares every target pixel with steps evaluated at origin.
func (f *fixture) checkAgainst(t *testing.T, steps []clipStep, origin gr.IPoint) {
	t.Helper()
	bad := 0
	for y := 0; y < f.rt.Height(); y++ {
		for x := 0; x < f.rt.Width(); x++ {
			want := expectInside(steps, x+origin.X, y+origin.Y)
			if got := f.inside(x, y); got != want {
				if bad < 5 {
					t.Errorf("pixel (%d,%d): inside=%v, want %v (alpha %d)", x, y, got, want, f.rt.AlphaAt(x, y))
				}
				bad++
			}
		}
	}
	if bad > 0 {
		t.Errorf("%d pixels differ", bad)
	}
}
