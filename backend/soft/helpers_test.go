package soft

import "github.com/gogpu/gr/clip"

const clipOpDifference = clip.OpDifference
