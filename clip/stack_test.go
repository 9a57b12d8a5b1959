package clip

import (
	"testing"

	"github.com/gogpu/gr"
)

func TestNewStack(t *testing.T) {
	s := NewStack()
	if !s.IsWideOpen() {
		t.Error("new stack should be wide open")
	}
	if s.TopmostGenID() != WideOpenGenID {
		t.Errorf("TopmostGenID() = %d, want %d", s.TopmostGenID(), WideOpenGenID)
	}
	if _, bt, iior := s.Bounds(); bt != BoundsInsideOut || iior {
		t.Errorf("Bounds() type = %v iior = %v, want inside-out, false", bt, iior)
	}
}

func TestStack_SaveRestore(t *testing.T) {
	s := NewStack()
	s.ClipRect(gr.RectLTRB(0, 0, 100, 100), OpIntersect, false)
	base := s.TopmostGenID()

	s.Save()
	s.ClipRRect(gr.RRectXY(gr.RectLTRB(10, 10, 90, 90), 5, 5), OpDifference, true)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	inner := s.TopmostGenID()
	if inner == base {
		t.Error("push must assign a new generation id")
	}

	s.Restore()
	if s.Len() != 1 {
		t.Errorf("Len() after Restore = %d, want 1", s.Len())
	}
	if s.TopmostGenID() != base {
		t.Errorf("TopmostGenID() after Restore = %d, want %d", s.TopmostGenID(), base)
	}

	s.Restore() // unmatched, no-op
	if s.Len() != 1 || s.SaveCount() != 0 {
		t.Errorf("unmatched Restore changed the stack: len=%d saves=%d", s.Len(), s.SaveCount())
	}
}

func TestStack_RectIntersectMerges(t *testing.T) {
	s := NewStack()
	s.ClipRect(gr.RectLTRB(0, 0, 100, 100), OpIntersect, false)
	s.ClipRect(gr.RectLTRB(50, 50, 150, 150), OpIntersect, false)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	e := s.Elements()[0]
	if e.Type() != TypeRect || e.Rect() != gr.RectLTRB(50, 50, 100, 100) {
		t.Errorf("merged element = %v %v", e.Type(), e.Rect())
	}
	if !e.IsIntersectionOfRects() {
		t.Error("merged rect should be an intersection of rects")
	}

	s.ClipRect(gr.RectLTRB(200, 200, 300, 300), OpIntersect, false)
	if s.Len() != 1 || s.Elements()[0].Type() != TypeEmpty {
		t.Error("disjoint intersect should leave a single empty element")
	}
	if s.TopmostGenID() != EmptyGenID {
		t.Errorf("TopmostGenID() = %d, want EmptyGenID", s.TopmostGenID())
	}

	// Further intersections of an empty clip stay empty.
	s.ClipRRect(gr.RRectXY(gr.RectLTRB(0, 0, 10, 10), 2, 2), OpIntersect, true)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStack_ReplaceDropsScope(t *testing.T) {
	s := NewStack()
	s.ClipRect(gr.RectLTRB(0, 0, 50, 50), OpIntersect, false)
	s.Save()
	s.ClipRRect(gr.RRectXY(gr.RectLTRB(0, 0, 40, 40), 4, 4), OpIntersect, true)
	s.ClipRect(gr.RectLTRB(5, 5, 20, 20), OpReplace, false)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if top := s.Elements()[1]; top.Op() != OpReplace {
		t.Errorf("top op = %v, want Replace", top.Op())
	}
}

func TestStack_PathAsRect(t *testing.T) {
	p := gr.NewPath()
	p.AddRect(gr.RectLTRB(1, 2, 3, 4))
	s := NewStack()
	s.ClipPath(p, OpIntersect, true)
	if got := s.Elements()[0].Type(); got != TypeRect {
		t.Errorf("Type() = %v, want Rect", got)
	}

	p.SetFillType(gr.FillInverseWinding)
	s.ClipPath(p, OpDifference, true)
	if got := s.Elements()[1].Type(); got != TypePath {
		t.Errorf("inverse rect path Type() = %v, want Path", got)
	}
}

func TestElement_BoundTracking(t *testing.T) {
	r := gr.RectLTRB(10, 10, 20, 20)
	inv := gr.NewPath()
	inv.AddRect(gr.RectLTRB(30, 30, 40, 40))
	inv.SetFillType(gr.FillInverseWinding)

	tests := []struct {
		name      string
		build     func(s *Stack)
		wantBound gr.Rect
		wantType  BoundsType
		wantGen   uint32 // 0 means any fresh id
	}{
		{
			name:      "intersect rect",
			build:     func(s *Stack) { s.ClipRect(r, OpIntersect, false) },
			wantBound: r,
			wantType:  BoundsNormal,
		},
		{
			name:      "difference first",
			build:     func(s *Stack) { s.ClipRect(r, OpDifference, false) },
			wantBound: r,
			wantType:  BoundsInsideOut,
		},
		{
			name:     "union first is wide open",
			build:    func(s *Stack) { s.ClipRect(r, OpUnion, false) },
			wantType: BoundsInsideOut,
			wantGen:  WideOpenGenID,
		},
		{
			name:     "reverse difference first is empty",
			build:    func(s *Stack) { s.ClipRect(r, OpReverseDifference, false) },
			wantType: BoundsNormal,
			wantGen:  EmptyGenID,
		},
		{
			name: "union of rects",
			build: func(s *Stack) {
				s.ClipRect(r, OpIntersect, false)
				s.ClipRect(gr.RectLTRB(50, 50, 60, 60), OpUnion, false)
			},
			wantBound: gr.RectLTRB(10, 10, 60, 60),
			wantType:  BoundsNormal,
		},
		{
			name: "intersect inverse path",
			build: func(s *Stack) {
				s.ClipRect(r, OpIntersect, false)
				s.ClipPath(inv, OpIntersect, true)
			},
			wantBound: r,
			wantType:  BoundsNormal,
		},
		{
			name: "xor mixed types",
			build: func(s *Stack) {
				s.ClipRect(r, OpIntersect, false)
				s.ClipPath(inv, OpXOR, true)
			},
			wantBound: gr.RectLTRB(10, 10, 40, 40),
			wantType:  BoundsInsideOut,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack()
			tt.build(s)
			bound, bt, _ := s.Bounds()
			if bound != tt.wantBound || bt != tt.wantType {
				t.Errorf("Bounds() = %v %v, want %v %v", bound, bt, tt.wantBound, tt.wantType)
			}
			if tt.wantGen != 0 && s.TopmostGenID() != tt.wantGen {
				t.Errorf("TopmostGenID() = %d, want %d", s.TopmostGenID(), tt.wantGen)
			}
		})
	}
}

func TestNextGenIDSkipsReserved(t *testing.T) {
	a, b := NextGenID(), NextGenID()
	if a <= WideOpenGenID || b <= a {
		t.Errorf("NextGenID() = %d, %d; want increasing ids above %d", a, b, WideOpenGenID)
	}
}
