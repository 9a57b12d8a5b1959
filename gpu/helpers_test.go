package gpu

import "github.com/gogpu/gr/clip"

const (
	opIntersect  = clip.OpIntersect
	opUnion      = clip.OpUnion
	opXOR        = clip.OpXOR
	opDifference = clip.OpDifference
	opRDiff      = clip.OpReverseDifference
)
