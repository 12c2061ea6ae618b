package clip

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/polygon"
)

// ReduceToRectangle returns a new clip equivalent to c inside r, reduced
// as far as possible to boxes. c is not consumed.
func (a *Arena) ReduceToRectangle(c *Clip, r image.Rectangle) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if ContainsRectangle(c, r) {
		return a.IntersectRectangle(nil, r)
	}
	cp := a.IntersectRectangle(a.Copy(c), r)
	if cp.IsAllClipped() {
		return cp
	}
	return a.ReduceToBoxes(cp)
}

// ReduceForComposite returns the clip reduced to the rectangle the
// composite operation can touch. c is not consumed.
func (a *Arena) ReduceForComposite(c *Clip, op Composite) *Clip {
	return a.ReduceToRectangle(c, op.ClipRectangle())
}

// ReduceToBoxes tightens the boxes of c to the area its residual paths
// can cover and drops paths that no longer affect the result. The clip
// covers exactly the same pixels before and after.
//
// For every path and box, the path's flattened edges are clipped to the
// box and the box corners lying inside the fill are added; the bounding
// box of those points, rounded out to whole pixels, contains everything
// the path leaves visible in that box. A path whose edges never enter the
// interior of a box is constant over it, and the fill at the box centre
// decides whether the box stays. Paths that enter no box are dropped.
func (a *Arena) ReduceToBoxes(c *Clip) *Clip {
	if c == nil || c.IsAllClipped() || c.path == nil {
		return c
	}

	limits := c.boxes
	if len(limits) == 0 {
		limits = []geom.Box{geom.FromRectangle(c.extents)}
	}
	tight := append([]geom.Box(nil), limits...)

	nodes := oldestFirst(c.path)
	keep := make([]bool, len(nodes))
	dropped := 0
	for i, n := range nodes {
		crossed := false
		lines := n.path.FlatLines(n.tolerance)
		poly := polygon.FromPath(n.path, n.tolerance)
		for j, b := range limits {
			if tight[j].IsEmpty() {
				continue
			}
			ext, enters := reduceBox(b, lines, poly, n.fillRule)
			crossed = crossed || enters
			tight[j] = tight[j].Intersect(ext)
		}
		keep[i] = crossed
		if !crossed {
			dropped++
		}
	}

	boxes := tight[:0]
	for _, b := range tight {
		if !b.IsEmpty() {
			boxes = append(boxes, b)
		}
	}
	if len(boxes) == 0 {
		return a.setAllClipped(c)
	}

	if dropped > 0 {
		old := c.path
		c.path = nil
		for i, n := range nodes {
			if !keep[i] {
				continue
			}
			dst, err := a.createPath(c)
			if err != nil {
				a.destroyPath(old)
				return a.degrade(c, "reduce to boxes", err)
			}
			dst.path = n.path
			dst.fillRule = n.fillRule
			dst.tolerance = n.tolerance
			dst.antialias = n.antialias
		}
		a.destroyPath(old)
	}

	c.boxes = boxes
	if c.path == nil {
		c.extents = geom.Extents(boxes).RoundOut()
		c.region = nil
		c.isRegion = false
		return c
	}
	return a.boxesChanged(c)
}

// reduceBox returns a box containing the part of b covered by the fill of
// the flattened path, and whether any edge passes through the interior
// of b. Without such an edge the fill is constant over the interior, so b
// is kept whole or dropped according to its centre.
func reduceBox(b geom.Box, lines []path.Line, poly *polygon.Polygon, rule geom.FillRule) (geom.Box, bool) {
	var (
		ext   bbox
		enter bool
	)
	x0, y0 := float64(b.Min.X), float64(b.Min.Y)
	x1, y1 := float64(b.Max.X), float64(b.Max.Y)
	for _, l := range lines {
		ax, ay, bx, by, ok := clipSegment(
			float64(l.P1.X), float64(l.P1.Y), float64(l.P2.X), float64(l.P2.Y),
			x0, y0, x1, y1)
		if !ok {
			continue
		}
		ext.add(ax, ay)
		ext.add(bx, by)
		mx, my := (ax+bx)/2, (ay+by)/2
		if x0 < mx && mx < x1 && y0 < my && my < y1 {
			enter = true
		}
	}
	if !enter {
		if poly.Contains((x0+x1)/128, (y0+y1)/128, rule) {
			return b, false
		}
		return geom.Box{}, false
	}
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		if poly.Contains(p[0]/64, p[1]/64, rule) {
			ext.add(p[0], p[1])
		}
	}
	return ext.box().Intersect(b), true
}

// bbox accumulates points in 26.6 units.
type bbox struct {
	x0, y0, x1, y1 float64
	ok             bool
}

func (e *bbox) add(x, y float64) {
	if !e.ok {
		e.x0, e.y0, e.x1, e.y1, e.ok = x, y, x, y, true
		return
	}
	e.x0, e.y0 = min(e.x0, x), min(e.y0, y)
	e.x1, e.y1 = max(e.x1, x), max(e.y1, y)
}

// box rounds the accumulated bounds outward to whole pixels, so that a
// pixel partly covered by the fill is never split by the reduced box.
func (e *bbox) box() geom.Box {
	if !e.ok {
		return geom.Box{}
	}
	return geom.Box{
		Min: fixed.Point26_6{X: pixelFloor(e.x0), Y: pixelFloor(e.y0)},
		Max: fixed.Point26_6{X: pixelCeil(e.x1), Y: pixelCeil(e.y1)},
	}
}

func pixelFloor(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Floor(v/64) * 64) }
func pixelCeil(v float64) fixed.Int26_6  { return fixed.Int26_6(math.Ceil(v/64) * 64) }

// clipSegment clips the segment (ax, ay)-(bx, by) to the closed box
// [x0, x1] x [y0, y1] using the Liang-Barsky parametrization.
func clipSegment(ax, ay, bx, by, x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	dx, dy := bx-ax, by-ay
	t0, t1 := 0.0, 1.0
	for _, c := range [4][2]float64{
		{-dx, ax - x0},
		{dx, x1 - ax},
		{-dy, ay - y0},
		{dy, y1 - ay},
	} {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return ax + t0*dx, ay + t0*dy, ax + t1*dx, ay + t1*dy, true
}
