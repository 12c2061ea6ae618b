package clip

import (
	"fmt"
	"strings"

	"github.com/gogpu/ggclip/geom"
)

// String renders c for debugging.
func (c *Clip) String() string {
	switch {
	case c == nil:
		return "clip: unclipped"
	case c.IsAllClipped():
		return "clip: all-clipped"
	}
	var sb strings.Builder
	e := c.extents
	if geom.IsUnbounded(e) {
		sb.WriteString("clip: extents=unbounded")
	} else {
		fmt.Fprintf(&sb, "clip: extents=%v", e)
	}
	fmt.Fprintf(&sb, " region=%t\n", c.IsRegion())
	for i, b := range c.boxes {
		fmt.Fprintf(&sb, "  box[%d] %v\n", i, b)
	}
	i := 0
	c.Walk(func(p PathInfo) bool {
		fmt.Fprintf(&sb, "  path[%d] rule=%v aa=%v tolerance=%g extents=%v\n",
			i, p.FillRule, p.Antialias, p.Tolerance, p.Path.Extents())
		i++
		return true
	})
	return sb.String()
}
