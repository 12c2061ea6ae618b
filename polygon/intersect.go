package polygon

import (
	"math"
	"slices"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// Intersect returns the area inside both p (under ruleA) and other (under
// ruleB). The result is a set of disjoint trapezoids, so it is valid under
// either fill rule; callers use Winding.
//
// The plane is cut into horizontal bands at every edge end point and at
// every crossing of two edges. Inside a band no edges cross, so each
// operand is a sorted sequence of spans and the intersection is emitted
// as one trapezoid per overlapping span pair.
func (p *Polygon) Intersect(other *Polygon, ruleA, ruleB geom.FillRule) *Polygon {
	out := New()
	if p.IsEmpty() || other.IsEmpty() {
		return out
	}
	if !p.Extents().Overlaps(other.Extents()) {
		return out
	}

	type tagged struct {
		Edge
		set int
	}
	all := make([]tagged, 0, len(p.Edges)+len(other.Edges))
	for _, e := range p.Edges {
		all = append(all, tagged{e, 0})
	}
	for _, e := range other.Edges {
		all = append(all, tagged{e, 1})
	}

	ys := make([]fixed.Int26_6, 0, 2*len(all))
	for _, e := range all {
		ys = append(ys, e.Top, e.Bottom)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if y, ok := crossing(all[i].Edge, all[j].Edge); ok {
				ys = append(ys, y)
			}
		}
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	type active struct {
		e   tagged
		mid float64
	}
	var act []active
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		mid := (geom.Float(y0) + geom.Float(y1)) / 2
		act = act[:0]
		for _, e := range all {
			if e.Top <= y0 && e.Bottom >= y1 {
				act = append(act, active{e, e.XAtFloat(mid)})
			}
		}
		if len(act) < 4 {
			continue
		}
		slices.SortStableFunc(act, func(a, b active) int {
			switch {
			case a.mid < b.mid:
				return -1
			case a.mid > b.mid:
				return 1
			}
			return 0
		})
		var (
			w    [2]int
			in   bool
			left Edge
		)
		for _, a := range act {
			w[a.e.set] += a.e.Dir
			now := ruleA.Inside(w[0]) && ruleB.Inside(w[1])
			switch {
			case now && !in:
				left = a.e.Edge
			case !now && in:
				right := a.e.Edge
				if left.Line != right.Line {
					out.addEdge(Edge{Line: left.Line, Top: y0, Bottom: y1, Dir: 1})
					out.addEdge(Edge{Line: right.Line, Top: y0, Bottom: y1, Dir: -1})
				}
			}
			in = now
		}
	}
	return out
}

// IntersectBoxes returns the part of p, under rule, that lies inside the
// union of the disjoint boxes.
func (p *Polygon) IntersectBoxes(boxes []geom.Box, rule geom.FillRule) *Polygon {
	return p.Intersect(FromBoxes(boxes), rule, geom.Winding)
}

// crossing returns the y at which two edges cross strictly inside both
// bands, rounded to the fixed-point grid.
func crossing(a, b Edge) (fixed.Int26_6, bool) {
	top := max(a.Top, b.Top)
	bottom := min(a.Bottom, b.Bottom)
	if top >= bottom {
		return 0, false
	}
	ax1, ay1 := geom.Float(a.Line.P1.X), geom.Float(a.Line.P1.Y)
	ax2, ay2 := geom.Float(a.Line.P2.X), geom.Float(a.Line.P2.Y)
	bx1, by1 := geom.Float(b.Line.P1.X), geom.Float(b.Line.P1.Y)
	bx2, by2 := geom.Float(b.Line.P2.X), geom.Float(b.Line.P2.Y)

	// Parametrize both lines by y: x = x0 + y*slope.
	sa := (ax2 - ax1) / (ay2 - ay1)
	sb := (bx2 - bx1) / (by2 - by1)
	if sa == sb {
		return 0, false
	}
	ca := ax1 - ay1*sa
	cb := bx1 - by1*sb
	y := (cb - ca) / (sa - sb)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	fy := geom.Fixed(y)
	if fy <= top || fy >= bottom {
		return 0, false
	}
	return fy, true
}
