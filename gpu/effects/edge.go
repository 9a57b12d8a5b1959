package effects

// EdgeType selects hard or anti-aliased edges and whether the processor
// keeps the inside or the outside of its shape.
type EdgeType uint8

const (
	FillBW EdgeType = iota
	FillAA
	InverseFillBW
	InverseFillAA
)

var edgeTypeNames = [...]string{"FillBW", "FillAA", "InverseFillBW", "InverseFillAA"}

func (e EdgeType) String() string {
	if int(e) < len(edgeTypeNames) {
		return edgeTypeNames[e]
	}
	return "Unknown"
}

// IsAA reports whether edges are anti-aliased.
func (e EdgeType) IsAA() bool { return e == FillAA || e == InverseFillAA }

// IsInverse reports whether the outside of the shape is kept.
func (e EdgeType) IsInverse() bool { return e == InverseFillBW || e == InverseFillAA }

// Inverse toggles between fill and inverse fill.
func (e EdgeType) Inverse() EdgeType { return e ^ 2 }

// EdgeTypeFor returns the edge type for an anti-aliasing flag and fill.
func EdgeTypeFor(aa, inverse bool) EdgeType {
	e := FillBW
	if aa {
		e = FillAA
	}
	if inverse {
		e = e.Inverse()
	}
	return e
}

// edgeCoverage converts a signed distance (positive inside) to coverage.
func edgeCoverage(aa bool, d float64) float64 {
	if !aa {
		if d >= 0 {
			return 1
		}
		return 0
	}
	return clamp01(d + 0.5)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func finish(e EdgeType, coverage float64) float64 {
	if e.IsInverse() {
		return 1 - coverage
	}
	return coverage
}
