package geom

import (
	"slices"

	"golang.org/x/image/math/fixed"
)

// Edge is a vertical edge of a rectilinear shape. Dir is +1 for edges
// running down and -1 for edges running up. Set tags which operand of a
// two-way sweep the edge belongs to (0 or 1).
type Edge struct {
	X           fixed.Int26_6
	Top, Bottom fixed.Int26_6
	Dir         int
	Set         int
}

// BoxEdges appends the left and right edges of b to dst.
func BoxEdges(dst []Edge, b Box, set int) []Edge {
	if b.IsEmpty() {
		return dst
	}
	return append(dst,
		Edge{X: b.Min.X, Top: b.Min.Y, Bottom: b.Max.Y, Dir: 1, Set: set},
		Edge{X: b.Max.X, Top: b.Min.Y, Bottom: b.Max.Y, Dir: -1, Set: set},
	)
}

// Sweep converts vertical edges into disjoint boxes. For each horizontal
// band between consecutive edge end points, the edges crossing the band
// are walked left to right, accumulating winding per set, and inside
// decides which spans are covered. Output is y-x banded and vertically
// coalesced: identical spans in adjacent bands merge into one box.
func Sweep(edges []Edge, inside func(w [2]int) bool) []Box {
	if len(edges) == 0 {
		return nil
	}
	ys := make([]fixed.Int26_6, 0, 2*len(edges))
	for _, e := range edges {
		if e.Top < e.Bottom {
			ys = append(ys, e.Top, e.Bottom)
		}
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, func(a, b Edge) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})

	var (
		out       []Box
		prevSpans []span
		prevFirst int
		prevY     fixed.Int26_6
		spans     []span
	)
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		spans = bandSpans(spans[:0], sorted, y0, y1, inside)
		if len(spans) == 0 {
			prevSpans = prevSpans[:0]
			continue
		}
		if prevY == y0 && slices.Equal(spans, prevSpans) {
			for j := prevFirst; j < len(out); j++ {
				out[j].Max.Y = y1
			}
			prevY = y1
			continue
		}
		prevFirst = len(out)
		for _, s := range spans {
			out = append(out, Box{
				Min: fixed.Point26_6{X: s.x0, Y: y0},
				Max: fixed.Point26_6{X: s.x1, Y: y1},
			})
		}
		prevSpans = append(prevSpans[:0], spans...)
		prevY = y1
	}
	return out
}

type span struct {
	x0, x1 fixed.Int26_6
}

func bandSpans(dst []span, sorted []Edge, y0, y1 fixed.Int26_6, inside func(w [2]int) bool) []span {
	var (
		w     [2]int
		in    bool
		start fixed.Int26_6
	)
	for i := 0; i < len(sorted); {
		x := sorted[i].X
		for ; i < len(sorted) && sorted[i].X == x; i++ {
			e := sorted[i]
			if e.Top <= y0 && e.Bottom >= y1 {
				w[e.Set&1] += e.Dir
			}
		}
		now := inside(w)
		switch {
		case now && !in:
			start = x
		case !now && in:
			if x > start {
				if n := len(dst); n > 0 && dst[n-1].x1 == start {
					dst[n-1].x1 = x
				} else {
					dst = append(dst, span{start, x})
				}
			}
		}
		in = now
	}
	return dst
}

// SweepRule converts the vertical edges of a single rectilinear shape into
// disjoint boxes under a fill rule.
func SweepRule(edges []Edge, rule FillRule) []Box {
	return Sweep(edges, func(w [2]int) bool { return rule.Inside(w[0]) })
}

// Union normalizes possibly overlapping boxes into a disjoint set that
// covers the same area.
func Union(boxes []Box) []Box {
	edges := make([]Edge, 0, 2*len(boxes))
	for _, b := range boxes {
		edges = BoxEdges(edges, b, 0)
	}
	return Sweep(edges, func(w [2]int) bool { return w[0] != 0 })
}

// Intersect returns the set intersection of two box sets as disjoint boxes.
func Intersect(a, b []Box) []Box {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if len(a) == 1 && len(b) == 1 {
		r := a[0].Intersect(b[0])
		if r.IsEmpty() {
			return nil
		}
		return []Box{r}
	}
	edges := make([]Edge, 0, 2*(len(a)+len(b)))
	for _, x := range a {
		edges = BoxEdges(edges, x, 0)
	}
	for _, x := range b {
		edges = BoxEdges(edges, x, 1)
	}
	return Sweep(edges, func(w [2]int) bool { return w[0] != 0 && w[1] != 0 })
}

// Subtract returns the part of a not covered by b as disjoint boxes.
func Subtract(a, b []Box) []Box {
	if len(a) == 0 {
		return nil
	}
	edges := make([]Edge, 0, 2*(len(a)+len(b)))
	for _, x := range a {
		edges = BoxEdges(edges, x, 0)
	}
	for _, x := range b {
		edges = BoxEdges(edges, x, 1)
	}
	return Sweep(edges, func(w [2]int) bool { return w[0] != 0 && w[1] == 0 })
}

// Disjoint reports whether no two boxes overlap.
func Disjoint(boxes []Box) bool {
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Overlaps(boxes[j]) {
				return false
			}
		}
	}
	return true
}
