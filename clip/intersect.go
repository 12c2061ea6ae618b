package clip

import (
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// IntersectPath intersects c with the fill of p. Boxes and rectilinear
// paths reduce to boxes; anything else is kept as a residual path behind
// its approximate extents. p is copied.
func (a *Arena) IntersectPath(c *Clip, p *path.Path, rule geom.FillRule, tolerance float64, aa geom.Antialias) *Clip {
	return a.intersectPath(c, p, rule, tolerance, aa, false)
}

// intersectPath implements IntersectPath. shared marks p as an immutable
// path already owned by a chain node, which the new node may alias.
func (a *Arena) intersectPath(c *Clip, p *path.Path, rule geom.FillRule, tolerance float64,
	aa geom.Antialias, shared bool) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if p.FillIsEmpty() {
		return a.setAllClipped(c)
	}
	if box, ok := p.IsBox(); ok {
		if aa == geom.AntialiasNone {
			box = box.RoundDown()
		}
		return a.IntersectBox(c, box)
	}
	if p.IsRectilinear() {
		return a.IntersectRectilinearPath(c, p, rule, aa)
	}

	r := p.ApproximateClipExtents()
	if r.Empty() {
		return a.setAllClipped(c)
	}
	c = a.IntersectRectangle(c, r)
	if c.IsAllClipped() {
		return c
	}

	n, err := a.createPath(c)
	if err != nil {
		return a.degrade(c, "intersect path", err)
	}
	if !shared {
		p = p.Clone()
	}
	n.path = p
	n.fillRule = rule
	n.tolerance = tolerance
	n.antialias = aa

	c.region = nil
	c.isRegion = false
	return c
}

// intersectChain intersects c with every node of the chain ending at n,
// oldest first.
func (a *Arena) intersectChain(c *Clip, n *clipPath) *Clip {
	for _, node := range oldestFirst(n) {
		c = a.intersectPath(c, node.path, node.fillRule, node.tolerance, node.antialias, true)
		if c.IsAllClipped() {
			break
		}
	}
	return c
}

// IntersectClip intersects c with other. other is not consumed.
func (a *Arena) IntersectClip(c, other *Clip) *Clip {
	switch {
	case c.IsAllClipped(), other == nil:
		return c
	case c == nil:
		return a.Copy(other)
	case other.IsAllClipped():
		return a.setAllClipped(c)
	}
	if !geom.IntersectRect(&c.extents, other.extents) {
		return a.setAllClipped(c)
	}

	if len(other.boxes) > 0 {
		c = a.IntersectBoxes(c, other.boxes)
	}
	if c.IsAllClipped() {
		return c
	}
	if other.path != nil {
		if c.path == nil {
			c.path = reference(other.path)
		} else {
			c = a.intersectChain(c, other.path)
			if c.IsAllClipped() {
				return c
			}
		}
	}

	c.region = nil
	c.isRegion = false
	return c
}
