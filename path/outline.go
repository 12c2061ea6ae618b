package path

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// Outline returns a closed path whose non-zero fill covers the stroke of p.
//
// The outline is a union of pieces: one quadrilateral per segment, one
// join polygon per interior vertex and caps at open ends, all wound the
// same way so overlaps never cancel. ctm scales the user-space width into
// device space; a non-uniform ctm uses its mean scale.
func (p *Path) Outline(style StrokeStyle, ctm geom.Matrix, tolerance float64) *Path {
	out := New()
	if p == nil || style.Width <= 0 {
		return out
	}
	if tolerance <= 0 {
		tolerance = 0.1
	}
	scale := math.Sqrt(math.Abs(ctm.A*ctm.E - ctm.B*ctm.D))
	if scale == 0 {
		return out
	}
	o := &outliner{
		out:       out,
		style:     style,
		hw:        style.Width * scale / 2,
		tolerance: tolerance,
	}

	c := &polylineCollector{}
	_ = p.InterpretFlat(tolerance, c)
	c.finish()
	for _, pl := range c.lines {
		if len(style.Dash) > 0 {
			for _, d := range dash(pl, style.Dash, style.DashOffset*scale, scale) {
				o.polyline(d)
			}
			continue
		}
		o.polyline(pl)
	}
	return out
}

type polyline struct {
	pts    []point
	closed bool
}

type polylineCollector struct {
	lines []polyline
	cur   polyline
}

func (c *polylineCollector) MoveTo(p fixed.Point26_6) error {
	c.finish()
	c.cur.pts = append(c.cur.pts, toPoint(p))
	return nil
}

func (c *polylineCollector) LineTo(p fixed.Point26_6) error {
	pt := toPoint(p)
	if n := len(c.cur.pts); n > 0 && c.cur.pts[n-1] == pt {
		return nil
	}
	c.cur.pts = append(c.cur.pts, pt)
	return nil
}

func (c *polylineCollector) ClosePath() error {
	if len(c.cur.pts) == 0 {
		return nil
	}
	start := c.cur.pts[0]
	if n := len(c.cur.pts); n > 1 && c.cur.pts[n-1] == start {
		c.cur.pts = c.cur.pts[:n-1]
	}
	c.cur.closed = true
	c.finish()
	// A segment after a close starts at the closed subpath's start.
	c.cur.pts = append(c.cur.pts, start)
	return nil
}

func (c *polylineCollector) finish() {
	if len(c.cur.pts) > 1 || (len(c.cur.pts) == 1 && c.cur.closed) {
		c.lines = append(c.lines, c.cur)
	}
	c.cur = polyline{}
}

// dash splits pl into the "on" intervals of the dash pattern. Lengths are
// user space and scaled to device space.
func dash(pl polyline, pattern []float64, offset, scale float64) []polyline {
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return []polyline{pl}
		}
		total += d * scale
	}
	if total <= 0 {
		return []polyline{pl}
	}
	pts := pl.pts
	if pl.closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}

	idx := 0
	rem := math.Mod(offset, total)
	if rem < 0 {
		rem += total
	}
	for rem >= pattern[idx]*scale {
		rem -= pattern[idx] * scale
		idx = (idx + 1) % len(pattern)
	}
	left := pattern[idx]*scale - rem
	on := idx%2 == 0

	var res []polyline
	var cur []point
	if on {
		cur = append(cur, pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := b.sub(a).length()
		pos := 0.0
		for segLen-pos > left {
			pos += left
			q := a.lerp(b, pos/segLen)
			if on {
				cur = append(cur, q)
				res = append(res, polyline{pts: cur})
				cur = nil
			} else {
				cur = []point{q}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx] * scale
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		res = append(res, polyline{pts: cur})
	}
	return res
}

type outliner struct {
	out       *Path
	style     StrokeStyle
	hw        float64
	tolerance float64
}

func (o *outliner) polyline(pl polyline) {
	pts := pl.pts
	if len(pts) == 1 || (len(pts) == 2 && !pl.closed && pts[0] == pts[1]) {
		o.dot(pts[0])
		return
	}
	n := len(pts)
	segs := n - 1
	if pl.closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		o.segment(pts[i], pts[(i+1)%n])
	}
	for i := 1; i < n-1; i++ {
		o.join(pts[i-1], pts[i], pts[i+1])
	}
	if pl.closed {
		if n > 2 {
			o.join(pts[n-2], pts[n-1], pts[0])
			o.join(pts[n-1], pts[0], pts[1])
		}
		return
	}
	o.cap(pts[1], pts[0])
	o.cap(pts[n-2], pts[n-1])
}

func (o *outliner) normal(a, b point) point {
	d := b.sub(a)
	l := d.length()
	if l == 0 {
		return point{}
	}
	return point{-d.Y / l * o.hw, d.X / l * o.hw}
}

func add(a, b point) point { return point{a.X + b.X, a.Y + b.Y} }

func (o *outliner) segment(a, b point) {
	if a == b {
		return
	}
	n := o.normal(a, b)
	o.piece(add(a, n), add(b, n), b.sub(n), a.sub(n))
}

func (o *outliner) join(a, v, b point) {
	n1, n2 := o.normal(a, v), o.normal(v, b)
	if n1 == n2 || (n1 == point{}) || (n2 == point{}) {
		return
	}
	d1, d2 := v.sub(a), b.sub(v)
	// The outer side is opposite the turn.
	if d1.X*d2.Y-d1.Y*d2.X > 0 {
		n1, n2 = point{-n1.X, -n1.Y}, point{-n2.X, -n2.Y}
	}
	switch o.style.Join {
	case JoinRound:
		o.disc(v)
		return
	case JoinMiter:
		sum := add(n1, n2)
		s2 := sum.dot(sum)
		limit := o.style.MiterLimit
		// 1/cos(phi/2) = 2*hw/|n1+n2| is the miter ratio.
		if s2 > 0 && 4*o.hw*o.hw <= limit*limit*s2 {
			k := 2 * o.hw * o.hw / s2
			m := add(v, point{sum.X * k, sum.Y * k})
			o.piece(v, add(v, n1), m, add(v, n2))
			return
		}
	}
	o.piece(v, add(v, n1), add(v, n2))
}

// cap draws the end cap at b for a segment arriving from a.
func (o *outliner) cap(a, b point) {
	switch o.style.Cap {
	case CapRound:
		o.disc(b)
	case CapSquare:
		n := o.normal(a, b)
		d := point{n.Y, -n.X}
		e := add(b, d)
		o.piece(add(b, n), add(e, n), e.sub(n), b.sub(n))
	}
}

// dot draws a zero length subpath, which only round and square caps make
// visible.
func (o *outliner) dot(p point) {
	switch o.style.Cap {
	case CapRound:
		o.disc(p)
	case CapSquare:
		h := o.hw
		o.piece(point{p.X - h, p.Y - h}, point{p.X + h, p.Y - h},
			point{p.X + h, p.Y + h}, point{p.X - h, p.Y + h})
	}
}

func (o *outliner) disc(c point) {
	r := o.hw
	step := math.Pi / 4
	if r > o.tolerance {
		step = math.Min(step, 2*math.Acos(1-o.tolerance/r))
	}
	n := int(math.Ceil(2 * math.Pi / step))
	pts := make([]point, n)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = point{c.X + r*co, c.Y + r*s}
	}
	o.piece(pts...)
}

// piece appends a closed polygon wound with positive area.
func (o *outliner) piece(pts ...point) {
	area := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	o.out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		o.out.LineTo(p.X, p.Y)
	}
	o.out.Close()
}
