// Package polygon holds edge lists produced by flattening paths and the
// boolean intersection used to merge clip shapes into one polygon.
package polygon

import (
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// Edge is a line restricted to the horizontal band [Top, Bottom). Dir is
// +1 when the original segment runs down and -1 when it runs up. The
// line itself may extend beyond the band.
type Edge struct {
	Line        path.Line
	Top, Bottom fixed.Int26_6
	Dir         int
}

// XAt returns the x coordinate of the edge's line at y.
func (e Edge) XAt(y fixed.Int26_6) fixed.Int26_6 {
	return xAt(e.Line, y)
}

func xAt(l path.Line, y fixed.Int26_6) fixed.Int26_6 {
	if l.P1.Y == l.P2.Y {
		return l.P1.X
	}
	dy := int64(l.P2.Y - l.P1.Y)
	num := int64(y-l.P1.Y) * int64(l.P2.X-l.P1.X)
	return l.P1.X + fixed.Int26_6(divRound(num, dy))
}

func divRound(a, b int64) int64 {
	if b < 0 {
		a, b = -a, -b
	}
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}

// XAtFloat returns the x coordinate at y without rounding.
func (e Edge) XAtFloat(y float64) float64 {
	x1, y1 := geom.Float(e.Line.P1.X), geom.Float(e.Line.P1.Y)
	x2, y2 := geom.Float(e.Line.P2.X), geom.Float(e.Line.P2.Y)
	if y1 == y2 {
		return x1
	}
	return x1 + (y-y1)*(x2-x1)/(y2-y1)
}

// Polygon is a set of edges interpreted under a fill rule chosen by the
// consumer. Limits, when set, bound the region of interest: edges outside
// them are still kept but Extents never exceeds them.
type Polygon struct {
	Edges   []Edge
	extents geom.Box
	limits  []geom.Box
	limitBB geom.Box
}

// New returns an empty polygon, optionally limited to boxes.
func New(limits ...geom.Box) *Polygon {
	p := &Polygon{limits: limits}
	if len(limits) > 0 {
		p.limitBB = geom.Extents(limits)
	}
	return p
}

// FromPath flattens the filled path into a polygon.
func FromPath(p *path.Path, tolerance float64, limits ...geom.Box) *Polygon {
	poly := New(limits...)
	for _, l := range p.FlatLines(tolerance) {
		poly.AddLine(l.P1, l.P2)
	}
	return poly
}

// FromBoxes returns a polygon covering the boxes with winding +1 each.
func FromBoxes(boxes []geom.Box) *Polygon {
	poly := New()
	for _, b := range boxes {
		poly.AddBox(b)
	}
	return poly
}

// AddLine adds the segment p1-p2. Horizontal segments are ignored.
func (p *Polygon) AddLine(p1, p2 fixed.Point26_6) {
	if p1.Y == p2.Y {
		return
	}
	dir := 1
	top, bottom := p1.Y, p2.Y
	if top > bottom {
		dir = -1
		top, bottom = bottom, top
	}
	p.addEdge(Edge{Line: path.Line{P1: p1, P2: p2}, Top: top, Bottom: bottom, Dir: dir})
}

// AddBox adds the left and right edges of b.
func (p *Polygon) AddBox(b geom.Box) {
	if b.IsEmpty() {
		return
	}
	left := path.Line{P1: b.Min, P2: fixed.Point26_6{X: b.Min.X, Y: b.Max.Y}}
	right := path.Line{P1: fixed.Point26_6{X: b.Max.X, Y: b.Min.Y}, P2: b.Max}
	p.addEdge(Edge{Line: left, Top: b.Min.Y, Bottom: b.Max.Y, Dir: 1})
	p.addEdge(Edge{Line: right, Top: b.Min.Y, Bottom: b.Max.Y, Dir: -1})
}

func (p *Polygon) addEdge(e Edge) {
	if e.Top >= e.Bottom {
		return
	}
	x0, x1 := e.XAt(e.Top), e.XAt(e.Bottom)
	bb := geom.Box{
		Min: fixed.Point26_6{X: min(x0, x1), Y: e.Top},
		Max: fixed.Point26_6{X: max(x0, x1), Y: e.Bottom},
	}
	if len(p.limits) > 0 {
		bb = bb.Intersect(p.limitBB)
	}
	if len(p.Edges) == 0 {
		p.extents = bb
	} else {
		p.extents = p.extents.Union(bb)
	}
	p.Edges = append(p.Edges, e)
}

// IsEmpty reports whether the polygon has no edges.
func (p *Polygon) IsEmpty() bool {
	return p == nil || len(p.Edges) == 0
}

// NumEdges returns the edge count.
func (p *Polygon) NumEdges() int {
	if p == nil {
		return 0
	}
	return len(p.Edges)
}

// Extents returns the bounding box of all edges, clipped to the limits.
func (p *Polygon) Extents() geom.Box {
	if p.IsEmpty() {
		return geom.Box{}
	}
	return p.extents
}

// Limits returns the limit boxes.
func (p *Polygon) Limits() []geom.Box {
	return p.limits
}

// Translate returns a copy shifted by (dx, dy).
func (p *Polygon) Translate(dx, dy fixed.Int26_6) *Polygon {
	t := New()
	for _, l := range p.limits {
		t.limits = append(t.limits, l.Translate(dx, dy))
	}
	if len(t.limits) > 0 {
		t.limitBB = geom.Extents(t.limits)
	}
	for _, e := range p.Edges {
		e.Line.P1.X += dx
		e.Line.P1.Y += dy
		e.Line.P2.X += dx
		e.Line.P2.Y += dy
		e.Top += dy
		e.Bottom += dy
		t.addEdge(e)
	}
	return t
}

// Winding returns the winding number at (x, y) in device pixels: the sum
// of directions of edges crossing the horizontal ray to the left. Edges
// own their top and exclude their bottom.
func (p *Polygon) Winding(x, y float64) int {
	if p == nil {
		return 0
	}
	w := 0
	for _, e := range p.Edges {
		top, bottom := geom.Float(e.Top), geom.Float(e.Bottom)
		if y < top || y >= bottom {
			continue
		}
		if e.XAtFloat(y) <= x {
			w += e.Dir
		}
	}
	return w
}

// Contains reports whether (x, y) is inside under rule.
func (p *Polygon) Contains(x, y float64, rule geom.FillRule) bool {
	return rule.Inside(p.Winding(x, y))
}

// Bounds returns the integer rectangle containing the polygon.
func (p *Polygon) Bounds() image.Rectangle {
	if p.IsEmpty() {
		return image.Rectangle{}
	}
	return p.Extents().RoundOut()
}
