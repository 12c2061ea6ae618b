package path

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// Sink receives the operations of a path in order.
type Sink interface {
	MoveTo(p fixed.Point26_6) error
	LineTo(p fixed.Point26_6) error
	CurveTo(b, c, d fixed.Point26_6) error
	ClosePath() error
}

// FlatSink receives a path with curves already flattened to lines.
type FlatSink interface {
	MoveTo(p fixed.Point26_6) error
	LineTo(p fixed.Point26_6) error
	ClosePath() error
}

// Interpret walks the path operations, stopping at the first error.
func (p *Path) Interpret(s Sink) error {
	if p == nil {
		return nil
	}
	i := 0
	for _, op := range p.ops {
		var err error
		switch op {
		case OpMoveTo:
			err = s.MoveTo(p.pts[i])
		case OpLineTo:
			err = s.LineTo(p.pts[i])
		case OpCurveTo:
			err = s.CurveTo(p.pts[i], p.pts[i+1], p.pts[i+2])
		case OpClose:
			err = s.ClosePath()
		}
		if err != nil {
			return err
		}
		i += op.points()
	}
	return nil
}

// InterpretFlat walks the path with every curve replaced by line segments
// no further than tolerance device pixels from the curve.
func (p *Path) InterpretFlat(tolerance float64, s FlatSink) error {
	return p.Interpret(&flattener{sink: s, tolerance: tolerance})
}

type flattener struct {
	sink      FlatSink
	tolerance float64
	current   fixed.Point26_6
	pts       []point
}

func (f *flattener) MoveTo(p fixed.Point26_6) error {
	f.current = p
	return f.sink.MoveTo(p)
}

func (f *flattener) LineTo(p fixed.Point26_6) error {
	f.current = p
	return f.sink.LineTo(p)
}

func (f *flattener) ClosePath() error {
	return f.sink.ClosePath()
}

func (f *flattener) CurveTo(b, c, d fixed.Point26_6) error {
	f.pts = flattenCubic(f.pts[:0], toPoint(f.current), toPoint(b), toPoint(c), toPoint(d), f.tolerance)
	for _, pt := range f.pts[:len(f.pts)-1] {
		if err := f.sink.LineTo(pt.fixed()); err != nil {
			return err
		}
	}
	// The exact end point avoids rounding drift.
	f.current = d
	return f.sink.LineTo(d)
}

type point struct {
	X, Y float64
}

func toPoint(p fixed.Point26_6) point {
	return point{geom.Float(p.X), geom.Float(p.Y)}
}

func (p point) fixed() fixed.Point26_6 {
	return geom.Pt(p.X, p.Y)
}

func (p point) lerp(q point, t float64) point {
	return point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

func (p point) sub(q point) point { return point{p.X - q.X, p.Y - q.Y} }

func (p point) dot(q point) float64 { return p.X*q.X + p.Y*q.Y }

func (p point) length() float64 { return math.Hypot(p.X, p.Y) }

// maxCurveDepth bounds subdivision for degenerate control polygons.
const maxCurveDepth = 16

// flattenCubic appends the end points of line segments approximating the
// cubic p0..p3 by recursive de Casteljau subdivision.
func flattenCubic(dst []point, p0, p1, p2, p3 point, tolerance float64) []point {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	return flattenCubicRec(dst, p0, p1, p2, p3, tolerance, 0)
}

func flattenCubicRec(dst []point, p0, p1, p2, p3 point, tolerance float64, depth int) []point {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if dist < tolerance || depth >= maxCurveDepth {
		return append(dst, p3)
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)

	dst = flattenCubicRec(dst, p0, q0, r0, s, tolerance, depth+1)
	return flattenCubicRec(dst, s, r1, q2, p3, tolerance, depth+1)
}

// distanceToLine returns the distance from p to segment a-b.
func distanceToLine(p, a, b point) float64 {
	ab := b.sub(a)
	l2 := ab.dot(ab)
	if l2 < 1e-20 {
		return p.sub(a).length()
	}
	t := p.sub(a).dot(ab) / l2
	switch {
	case t < 0:
		return p.sub(a).length()
	case t > 1:
		return p.sub(b).length()
	}
	return p.sub(a.lerp(b, t)).length()
}

// Line is a directed straight segment.
type Line struct {
	P1, P2 fixed.Point26_6
}

// FlatLines flattens the path and returns every segment of every subpath,
// each subpath implicitly closed as for filling. Degenerate (zero length)
// segments are dropped.
func (p *Path) FlatLines(tolerance float64) []Line {
	c := &lineCollector{}
	_ = p.InterpretFlat(tolerance, c)
	c.closeSubpath()
	return c.lines
}

type lineCollector struct {
	lines          []Line
	start, current fixed.Point26_6
	open           bool
}

func (c *lineCollector) MoveTo(p fixed.Point26_6) error {
	c.closeSubpath()
	c.start, c.current = p, p
	c.open = true
	return nil
}

func (c *lineCollector) LineTo(p fixed.Point26_6) error {
	if p != c.current {
		c.lines = append(c.lines, Line{c.current, p})
	}
	c.current = p
	return nil
}

func (c *lineCollector) ClosePath() error {
	c.closeSubpath()
	return nil
}

func (c *lineCollector) closeSubpath() {
	if c.open && c.current != c.start {
		c.lines = append(c.lines, Line{c.current, c.start})
	}
	c.current = c.start
	c.open = false
}
