package clipmask

import (
	"testing"

	"github.com/gogpu/gr/gpu"
)

func face(fn gpu.StencilFunc, mask, ref, write uint16) gpu.StencilFace {
	return gpu.StencilFace{PassOp: opIncr, FailOp: opKeep, Func: fn, FuncMask: mask, FuncRef: ref, WriteMask: write}
}

func TestAdjustStencilParams(t *testing.T) {
	tests := []struct {
		name string
		in   gpu.StencilFace
		mode StencilClipMode
		bits int
		want gpu.StencilFace
	}{
		{"basic ignore", face(gpu.StencilLess, 0xffff, 0x1ff, 0xffff), StencilIgnoreClip, 8,
			face(gpu.StencilLess, 0x7f, 0x7f, 0x7f)},
		{"basic respect", face(gpu.StencilEqual, 0xffff, 0x03, 0x0f), StencilRespectClip, 8,
			face(gpu.StencilEqual, 0x7f, 0x03, 0x0f)},
		{"modify passes through", face(gpu.StencilAlwaysIfInClip, 0xffff, 0xffff, 0xffff), StencilModifyClip, 8,
			face(gpu.StencilAlwaysIfInClip, 0xffff, 0xffff, 0xffff)},

		{"always ignore", face(gpu.StencilAlwaysIfInClip, 0xffff, 0xffff, 0xffff), StencilIgnoreClip, 8,
			face(gpu.StencilAlways, 0x7f, 0x7f, 0x7f)},
		{"equal ignore", face(gpu.StencilEqualIfInClip, 0x0f, 0x05, 0xff), StencilIgnoreClip, 8,
			face(gpu.StencilEqual, 0x0f, 0x05, 0x7f)},
		{"less ignore", face(gpu.StencilLessIfInClip, 0xff, 0x02, 0), StencilIgnoreClip, 8,
			face(gpu.StencilLess, 0x7f, 0x02, 0)},
		{"lequal ignore", face(gpu.StencilLEqualIfInClip, 0xff, 0x82, 0), StencilIgnoreClip, 8,
			face(gpu.StencilLEqual, 0x7f, 0x02, 0)},
		{"nonzero ignore", face(gpu.StencilNonZeroIfInClip, 0xffff, 0, 0xffff), StencilIgnoreClip, 8,
			face(gpu.StencilNotEqual, 0x7f, 0, 0x7f)},

		{"always respect", face(gpu.StencilAlwaysIfInClip, 0, 0, 0xffff), StencilRespectClip, 8,
			face(gpu.StencilEqual, 0x80, 0x80, 0x7f)},
		{"equal respect", face(gpu.StencilEqualIfInClip, 0x0f, 0x05, 0xff), StencilRespectClip, 8,
			face(gpu.StencilEqual, 0x8f, 0x85, 0x7f)},
		{"less respect", face(gpu.StencilLessIfInClip, 0xff, 0x02, 0), StencilRespectClip, 8,
			face(gpu.StencilLess, 0xff, 0x82, 0)},
		{"lequal respect", face(gpu.StencilLEqualIfInClip, 0x03, 0x01, 0), StencilRespectClip, 8,
			face(gpu.StencilLEqual, 0x83, 0x81, 0)},
		{"nonzero respect", face(gpu.StencilNonZeroIfInClip, 0xffff, 0x11, 0xffff), StencilRespectClip, 8,
			face(gpu.StencilLess, 0xff, 0x80, 0x7f)},

		{"16 bit respect", face(gpu.StencilAlwaysIfInClip, 0, 0, 0xffff), StencilRespectClip, 16,
			face(gpu.StencilEqual, 0x8000, 0x8000, 0x7fff)},
		{"1 bit respect", face(gpu.StencilEqualIfInClip, 0xff, 0xff, 0xff), StencilRespectClip, 1,
			face(gpu.StencilEqual, 0x1, 0x1, 0)},

		{"no buffer always", face(gpu.StencilAlwaysIfInClip, 0xffff, 0, 0xffff), StencilRespectClip, 0,
			face(gpu.StencilAlways, 0xffff, 0, 0xffff)},
		{"no buffer nonzero", face(gpu.StencilNonZeroIfInClip, 0xff, 0, 0xff), StencilIgnoreClip, 0,
			face(gpu.StencilNotEqual, 0xff, 0, 0xff)},
		{"no buffer lequal", face(gpu.StencilLEqualIfInClip, 0x0f, 0x02, 0), StencilRespectClip, 0,
			face(gpu.StencilLEqual, 0x0f, 0x02, 0)},
		{"no buffer basic", face(gpu.StencilGreater, 0xff, 0x02, 0xff), StencilRespectClip, 0,
			face(gpu.StencilGreater, 0xff, 0x02, 0xff)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := gpu.StencilSettings{Front: tt.in, Back: tt.in}
			got := AdjustStencilParams(in, tt.mode, tt.bits, false)
			if got.Front != tt.want {
				t.Errorf("front = %v, want %v", got.Front, tt.want)
			}
			if got.Back != got.Front {
				t.Errorf("one-sided back = %v, want front %v", got.Back, got.Front)
			}
			if tt.mode != StencilModifyClip && !got.IsResolved() {
				t.Errorf("settings %v still clip relative", got)
			}
		})
	}
}

func TestAdjustStencilParams_TwoSided(t *testing.T) {
	in := gpu.StencilSettings{
		Front: face(gpu.StencilAlwaysIfInClip, 0, 0, 0xffff),
		Back:  face(gpu.StencilLessIfInClip, 0xff, 0x01, 0xffff),
	}
	got := AdjustStencilParams(in, StencilRespectClip, 8, true)
	if want := face(gpu.StencilEqual, 0x80, 0x80, 0x7f); got.Front != want {
		t.Errorf("front = %v, want %v", got.Front, want)
	}
	if want := face(gpu.StencilLess, 0xff, 0x81, 0x7f); got.Back != want {
		t.Errorf("back = %v, want %v", got.Back, want)
	}

	// Without two-sided support the back face follows the front.
	got = AdjustStencilParams(in, StencilRespectClip, 8, false)
	if got.Back != got.Front {
		t.Errorf("back = %v, want front %v", got.Back, got.Front)
	}
	if !got.IsResolved() {
		t.Errorf("settings %v still clip relative", got)
	}
}

func TestMaskTypeAndModeNames(t *testing.T) {
	if MaskAlpha.String() != "Alpha" || MaskType(9).String() != "Unknown" {
		t.Error("MaskType names")
	}
	if StencilRespectClip.String() != "RespectClip" || StencilClipMode(9).String() != "Unknown" {
		t.Error("StencilClipMode names")
	}
}
