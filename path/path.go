// Package path implements fixed-point device-space paths: construction,
// interpretation, flattening, shape queries and the conversions the clip
// engine needs (rectilinear fill to boxes, approximate extents).
package path

import (
	"errors"
	"slices"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// ErrNotRectilinear is returned when a box conversion is requested for a
// path with curves or diagonal segments.
var ErrNotRectilinear = errors.New("path: not rectilinear")

// Op is a path operation.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCurveTo
	OpClose
)

// Number of points consumed by each op.
func (o Op) points() int {
	switch o {
	case OpMoveTo, OpLineTo:
		return 1
	case OpCurveTo:
		return 3
	default:
		return 0
	}
}

// Path is a sequence of subpaths in 26.6 device coordinates. A Path is
// mutable while it is being built; once handed to a clip it is treated as
// immutable and shared.
type Path struct {
	ops []Op
	pts []fixed.Point26_6

	start, current fixed.Point26_6
	hasCurrent     bool
	needsMove      bool // a close happened; the next segment starts at start
	hasCurves      bool
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// IsEmpty reports whether the path has no operations.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.ops) == 0
}

// HasCurves reports whether the path contains curve segments.
func (p *Path) HasCurves() bool {
	return p.hasCurves
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (fixed.Point26_6, bool) {
	return p.current, p.hasCurrent
}

// MoveToFixed starts a new subpath at pt.
func (p *Path) MoveToFixed(pt fixed.Point26_6) {
	if n := len(p.ops); n > 0 && p.ops[n-1] == OpMoveTo {
		p.pts[len(p.pts)-1] = pt
	} else {
		p.ops = append(p.ops, OpMoveTo)
		p.pts = append(p.pts, pt)
	}
	p.start, p.current = pt, pt
	p.hasCurrent = true
	p.needsMove = false
}

func (p *Path) ensureSubpath(pt fixed.Point26_6) {
	switch {
	case !p.hasCurrent:
		p.MoveToFixed(pt)
	case p.needsMove:
		p.MoveToFixed(p.start)
	}
}

// LineToFixed adds a straight segment to pt. Without a current point it
// behaves like MoveToFixed.
func (p *Path) LineToFixed(pt fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveToFixed(pt)
		return
	}
	p.ensureSubpath(pt)
	p.ops = append(p.ops, OpLineTo)
	p.pts = append(p.pts, pt)
	p.current = pt
}

// CurveToFixed adds a cubic Bézier segment.
func (p *Path) CurveToFixed(b, c, d fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveToFixed(b)
	}
	p.ensureSubpath(b)
	p.ops = append(p.ops, OpCurveTo)
	p.pts = append(p.pts, b, c, d)
	p.current = d
	p.hasCurves = true
}

// Close closes the current subpath with a segment back to its start.
func (p *Path) Close() {
	if !p.hasCurrent || p.needsMove {
		return
	}
	if n := len(p.ops); n > 0 && p.ops[n-1] == OpMoveTo {
		return
	}
	p.ops = append(p.ops, OpClose)
	p.current = p.start
	p.needsMove = true
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) { p.MoveToFixed(geom.Pt(x, y)) }

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) { p.LineToFixed(geom.Pt(x, y)) }

// CurveTo adds a cubic Bézier segment.
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	p.CurveToFixed(geom.Pt(x1, y1), geom.Pt(x2, y2), geom.Pt(x3, y3))
}

// QuadTo adds a quadratic Bézier segment, stored as the equivalent cubic.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	x0, y0 := 0.0, 0.0
	if p.hasCurrent {
		cur := p.current
		if p.needsMove {
			cur = p.start
		}
		x0, y0 = geom.Float(cur.X), geom.Float(cur.Y)
	} else {
		x0, y0 = cx, cy
	}
	p.CurveTo(
		x0+2.0/3.0*(cx-x0), y0+2.0/3.0*(cy-y0),
		x+2.0/3.0*(cx-x), y+2.0/3.0*(cy-y),
		x, y)
}

// Rectangle adds a closed axis-aligned rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// kappa is the cubic control distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// Arc adds a closed circle of radius r centred on (cx, cy).
func (p *Path) Arc(cx, cy, r float64) {
	k := kappa * r
	p.MoveTo(cx+r, cy)
	p.CurveTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.CurveTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.CurveTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.CurveTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.Close()
}

// Polygon adds a closed polygon through the given points, given as
// alternating x, y coordinates.
func (p *Path) Polygon(xy ...float64) {
	if len(xy) < 2 {
		return
	}
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	p.Close()
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	c := *p
	c.ops = slices.Clone(p.ops)
	c.pts = slices.Clone(p.pts)
	return &c
}

// Append adds the subpaths of o to p. The current point becomes o's.
func (p *Path) Append(o *Path) {
	if o.IsEmpty() {
		return
	}
	p.ops = append(p.ops, o.ops...)
	p.pts = append(p.pts, o.pts...)
	p.start, p.current = o.start, o.current
	p.hasCurrent, p.needsMove = o.hasCurrent, o.needsMove
	p.hasCurves = p.hasCurves || o.hasCurves
}

// Equal reports whether two paths have identical operations and points.
func (p *Path) Equal(o *Path) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return slices.Equal(p.ops, o.ops) && slices.Equal(p.pts, o.pts)
}

// Extents returns the bounding box of every point including curve
// control points. This is conservative: curves never leave it. A trailing
// move-to that starts no segment does not count.
func (p *Path) Extents() geom.Box {
	var (
		e     geom.Box
		found bool
		i     int
	)
	add := func(pt fixed.Point26_6) {
		if !found {
			e = geom.Box{Min: pt, Max: pt}
			found = true
			return
		}
		e.Min.X = min(e.Min.X, pt.X)
		e.Min.Y = min(e.Min.Y, pt.Y)
		e.Max.X = max(e.Max.X, pt.X)
		e.Max.Y = max(e.Max.Y, pt.Y)
	}
	if p == nil {
		return e
	}
	for k, op := range p.ops {
		n := op.points()
		if op == OpMoveTo {
			if k+1 < len(p.ops) && p.ops[k+1] != OpMoveTo {
				add(p.pts[i])
			}
		} else {
			for j := range n {
				add(p.pts[i+j])
			}
		}
		i += n
	}
	return e
}
