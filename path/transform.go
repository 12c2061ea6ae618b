package path

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
)

// Translate returns a copy of the path shifted by (dx, dy).
func (p *Path) Translate(dx, dy fixed.Int26_6) *Path {
	t := p.Clone()
	if t == nil {
		return nil
	}
	for i := range t.pts {
		t.pts[i].X += dx
		t.pts[i].Y += dy
	}
	t.start.X += dx
	t.start.Y += dy
	t.current.X += dx
	t.current.Y += dy
	return t
}

// Transform returns a copy of the path with every point mapped through m.
// Pure translations keep exact fixed-point offsets.
func (p *Path) Transform(m geom.Matrix) *Path {
	if m.IsTranslation() {
		dx, dy := m.FixedTranslation()
		return p.Translate(dx, dy)
	}
	t := p.Clone()
	if t == nil {
		return nil
	}
	apply := func(pt fixed.Point26_6) fixed.Point26_6 {
		x, y := m.Apply(geom.Float(pt.X), geom.Float(pt.Y))
		return geom.Pt(x, y)
	}
	for i := range t.pts {
		t.pts[i] = apply(t.pts[i])
	}
	t.start = apply(t.start)
	t.current = apply(t.current)
	return t
}

// FromBoxes returns a path with one closed rectangle per box, each wound
// clockwise in device space.
func FromBoxes(boxes []geom.Box) *Path {
	p := New()
	for _, b := range boxes {
		p.MoveToFixed(b.Min)
		p.LineToFixed(fixed.Point26_6{X: b.Max.X, Y: b.Min.Y})
		p.LineToFixed(b.Max)
		p.LineToFixed(fixed.Point26_6{X: b.Min.X, Y: b.Max.Y})
		p.Close()
	}
	return p
}
