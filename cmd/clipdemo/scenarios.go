package main

import (
	"math"
	"sort"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/clip"
)

// scenario builds a clip stack for a w x h canvas.
type scenario func(s *clip.Stack, w, h float64)

var scenarios = map[string]scenario{
	"rect":  rectScenario,
	"rrect": rrectScenario,
	"holes": holesScenario,
	"star":  starScenario,
	"xor":   xorScenario,
	"empty": emptyScenario,
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func rectScenario(s *clip.Stack, w, h float64) {
	s.ClipRect(gr.RectLTRB(w*0.2, h*0.2, w*0.8, h*0.8), clip.OpIntersect, false)
}

func rrectScenario(s *clip.Stack, w, h float64) {
	r := gr.RectLTRB(w*0.1, h*0.1, w*0.9, h*0.9)
	s.ClipRRect(gr.RRectXY(r, w*0.15, h*0.15), clip.OpIntersect, true)
	s.ClipRect(gr.RectLTRB(w*0.4, h*0.4, w*0.6, h*0.6), clip.OpDifference, true)
}

// holesScenario punches a grid of holes, more than the effect fast path
// accepts.
func holesScenario(s *clip.Stack, w, h float64) {
	s.ClipRect(gr.RectLTRB(w*0.05, h*0.05, w*0.95, h*0.95), clip.OpIntersect, true)
	cw, ch := w/7, h/5
	for row := 1; row <= 3; row += 2 {
		for col := 1; col <= 5; col += 2 {
			x, y := float64(col)*cw, float64(row)*ch
			s.ClipRect(gr.RectXYWH(x, y, cw, ch), clip.OpDifference, true)
		}
	}
}

func starScenario(s *clip.Stack, w, h float64) {
	const points = 5
	cx, cy := w/2, h/2
	outer := math.Min(w, h) * 0.45
	inner := outer * 0.45
	p := gr.NewPath()
	for i := range points * 2 {
		angle := float64(i) * math.Pi / points
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x := cx + r*math.Cos(angle-math.Pi/2)
		y := cy + r*math.Sin(angle-math.Pi/2)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	s.ClipPath(p, clip.OpIntersect, true)
}

func xorScenario(s *clip.Stack, w, h float64) {
	s.ClipRect(gr.RectLTRB(w*0.1, h*0.1, w*0.6, h*0.6), clip.OpIntersect, false)
	s.ClipRect(gr.RectLTRB(w*0.4, h*0.4, w*0.9, h*0.9), clip.OpXOR, false)
	p := gr.NewPath()
	p.AddCircle(w*0.5, h*0.5, math.Min(w, h)*0.12)
	s.ClipPath(p, clip.OpUnion, false)
}

func emptyScenario(s *clip.Stack, w, h float64) {
	s.ClipRect(gr.RectLTRB(0, 0, w/2, h/2), clip.OpIntersect, false)
	s.ClipRect(gr.RectLTRB(w/2, h/2, w, h), clip.OpIntersect, false)
}
