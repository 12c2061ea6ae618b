package path

import (
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// FillIsEmpty reports whether filling the path covers no area: it has no
// segments, or all its points lie on one horizontal or vertical line.
func (p *Path) FillIsEmpty() bool {
	if p.IsEmpty() {
		return true
	}
	drawn := false
	for _, op := range p.ops {
		if op == OpLineTo || op == OpCurveTo {
			drawn = true
			break
		}
	}
	return !drawn || p.Extents().IsEmpty()
}

// IsBox reports whether the path is exactly one axis-aligned rectangle and
// returns it. A trailing move-to is ignored; the closing segment may be
// implicit, explicit, or a final line back to the start.
func (p *Path) IsBox() (geom.Box, bool) {
	if p.IsEmpty() || p.hasCurves {
		return geom.Box{}, false
	}
	ops := p.ops
	if n := len(ops); n > 1 && ops[n-1] == OpMoveTo {
		ops = ops[:n-1]
	}
	if n := len(ops); n > 0 && ops[n-1] == OpClose {
		ops = ops[:n-1]
	}
	if len(ops) < 4 || len(ops) > 5 || ops[0] != OpMoveTo {
		return geom.Box{}, false
	}
	for _, op := range ops[1:] {
		if op != OpLineTo {
			return geom.Box{}, false
		}
	}
	pts := p.pts[:len(ops)]
	if len(pts) == 5 && pts[4] != pts[0] {
		return geom.Box{}, false
	}
	p0, p1, p2, p3 := pts[0], pts[1], pts[2], pts[3]
	horizontalFirst := p0.Y == p1.Y && p1.X == p2.X && p2.Y == p3.Y && p3.X == p0.X
	verticalFirst := p0.X == p1.X && p1.Y == p2.Y && p2.X == p3.X && p3.Y == p0.Y
	if !horizontalFirst && !verticalFirst {
		return geom.Box{}, false
	}
	b := geom.Box{
		Min: fixed.Point26_6{X: min(p0.X, p2.X), Y: min(p0.Y, p2.Y)},
		Max: fixed.Point26_6{X: max(p0.X, p2.X), Y: max(p0.Y, p2.Y)},
	}
	return b, true
}

// IsRectilinear reports whether every segment of the filled path,
// including implicit closing segments, is horizontal or vertical.
func (p *Path) IsRectilinear() bool {
	if p.IsEmpty() {
		return true
	}
	if p.hasCurves {
		return false
	}
	for _, l := range p.FlatLines(0) {
		if l.P1.X != l.P2.X && l.P1.Y != l.P2.Y {
			return false
		}
	}
	return true
}

// FillRectilinearToBoxes adds the area covered by filling the rectilinear
// path to boxes as disjoint boxes. With AntialiasNone every coordinate is
// snapped to the pixel grid first. Boxes limits apply.
func (p *Path) FillRectilinearToBoxes(rule geom.FillRule, aa geom.Antialias, boxes *geom.Boxes) error {
	if !p.IsRectilinear() {
		return ErrNotRectilinear
	}
	var edges []geom.Edge
	for _, l := range p.FlatLines(0) {
		if l.P1.X != l.P2.X {
			continue // horizontal edges carry no winding
		}
		x, y1, y2 := l.P1.X, l.P1.Y, l.P2.Y
		if aa == geom.AntialiasNone {
			x, y1, y2 = snap(x), snap(y1), snap(y2)
		}
		switch {
		case y1 < y2:
			edges = append(edges, geom.Edge{X: x, Top: y1, Bottom: y2, Dir: 1})
		case y1 > y2:
			edges = append(edges, geom.Edge{X: x, Top: y2, Bottom: y1, Dir: -1})
		}
	}
	for _, b := range geom.SweepRule(edges, rule) {
		boxes.Add(geom.AntialiasDefault, b)
	}
	return nil
}

func snap(v fixed.Int26_6) fixed.Int26_6 {
	return (v + 31) &^ 63
}

// ApproximateFillExtents returns the integer rectangle containing the
// filled path, or the zero rectangle when the fill is empty.
func (p *Path) ApproximateFillExtents() image.Rectangle {
	if p.FillIsEmpty() {
		return image.Rectangle{}
	}
	return p.Extents().RoundOut()
}

// ApproximateClipExtents returns the integer rectangle a clip by this path
// can leave visible.
func (p *Path) ApproximateClipExtents() image.Rectangle {
	return p.ApproximateFillExtents()
}

// ApproximateStrokeExtents returns an integer rectangle containing the
// stroke of the path with style under ctm.
func (p *Path) ApproximateStrokeExtents(style StrokeStyle, ctm geom.Matrix) image.Rectangle {
	if p.IsEmpty() {
		return image.Rectangle{}
	}
	e := p.Extents()
	dx, dy := style.MaxDistanceFromPath(ctm, p.IsRectilinear())
	x0 := geom.Float(e.Min.X) - dx
	y0 := geom.Float(e.Min.Y) - dy
	x1 := geom.Float(e.Max.X) + dx
	y1 := geom.Float(e.Max.Y) + dy
	r := geom.ClampRect(x0, y0, x1, y1)
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}
