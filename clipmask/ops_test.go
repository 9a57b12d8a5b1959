package clipmask

import "github.com/gogpu/gputypes"

const (
	opKeep = gputypes.StencilOperationKeep
	opIncr = gputypes.StencilOperationIncrementClamp
)
