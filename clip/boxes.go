package clip

import (
	"image"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// IntersectBox intersects c with box. A box without area clips
// everything.
func (a *Arena) IntersectBox(c *Clip, box geom.Box) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if box.IsEmpty() {
		return a.setAllClipped(c)
	}
	r := box.RoundOut()
	if r.Empty() {
		return a.setAllClipped(c)
	}
	return a.intersectRectangleBox(c, r, box)
}

// IntersectRectangle intersects c with the integer rectangle r.
func (a *Arena) IntersectRectangle(c *Clip, r image.Rectangle) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if r.Empty() {
		return a.setAllClipped(c)
	}
	return a.intersectRectangleBox(c, r, geom.FromRectangle(r))
}

// intersectRectangleBox intersects c with box, whose rounded-out
// rectangle is r.
func (a *Arena) intersectRectangleBox(c *Clip, r image.Rectangle, box geom.Box) *Clip {
	if c == nil {
		var err error
		if c, err = a.create(); err != nil {
			return a.degrade(nil, "intersect box", err)
		}
	}

	if len(c.boxes) == 0 {
		c.boxes = append(c.boxes[:0], box)
		if c.path == nil {
			c.extents = r
		} else if !geom.IntersectRect(&c.extents, r) {
			return a.setAllClipped(c)
		}
		c.region = nil
		c.isRegion = c.path == nil && box.IsPixelAligned()
		return c
	}

	// The new box subsumes a single-box clip.
	if len(c.boxes) == 1 && box.Contains(c.boxes[0]) {
		return c
	}

	changed := false
	j := 0
	for _, b := range c.boxes {
		nb := b.Intersect(box)
		if nb != b {
			changed = true
		}
		if !nb.IsEmpty() {
			c.boxes[j] = nb
			j++
		}
	}
	if j == 0 {
		return a.setAllClipped(c)
	}
	c.boxes = c.boxes[:j]
	if !changed {
		return c
	}
	return a.boxesChanged(c)
}

// boxesChanged recomputes c's extents after its boxes were replaced and
// drops the cached region.
func (a *Arena) boxesChanged(c *Clip) *Clip {
	r := geom.Extents(c.boxes).RoundOut()
	if c.path == nil {
		c.extents = r
	} else if !geom.IntersectRect(&c.extents, r) {
		return a.setAllClipped(c)
	}
	c.region = nil
	c.isRegion = false
	return c
}

// IntersectBoxes intersects c with the union of boxes. Overlapping input
// boxes are normalized first.
func (a *Arena) IntersectBoxes(c *Clip, boxes []geom.Box) *Clip {
	if c.IsAllClipped() {
		return c
	}
	switch len(boxes) {
	case 0:
		return a.setAllClipped(c)
	case 1:
		return a.IntersectBox(c, boxes[0])
	}
	if !geom.Disjoint(boxes) {
		boxes = geom.Union(boxes)
	} else {
		boxes = nonEmpty(boxes)
	}

	if c == nil {
		var err error
		if c, err = a.create(); err != nil {
			return a.degrade(nil, "intersect boxes", err)
		}
	}
	if len(c.boxes) > 0 {
		boxes = geom.Intersect(c.boxes, boxes)
	} else {
		boxes = append([]geom.Box(nil), boxes...)
	}
	if len(boxes) == 0 {
		return a.setAllClipped(c)
	}
	c.boxes = boxes
	return a.boxesChanged(c)
}

func nonEmpty(boxes []geom.Box) []geom.Box {
	for _, b := range boxes {
		if b.IsEmpty() {
			out := make([]geom.Box, 0, len(boxes))
			for _, b := range boxes {
				if !b.IsEmpty() {
					out = append(out, b)
				}
			}
			return out
		}
	}
	return boxes
}

// IntersectRectilinearPath intersects c with the fill of a path made only
// of horizontal and vertical segments.
func (a *Arena) IntersectRectilinearPath(c *Clip, p *path.Path, rule geom.FillRule, aa geom.Antialias) *Clip {
	if c.IsAllClipped() {
		return c
	}
	boxes := geom.NewBoxes(8)
	if err := p.FillRectilinearToBoxes(rule, aa, boxes); err != nil {
		return a.degrade(c, "intersect rectilinear path", err)
	}
	return a.IntersectBoxes(c, boxes.Slice())
}
