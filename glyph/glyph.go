// Package glyph computes device-space ink extents of positioned glyphs.
//
// Glyphs arrive already shaped and positioned: each carries a font glyph
// index and the device position of its origin on the baseline. A face
// adapter reports per-glyph ink bounds relative to that origin, with y
// increasing downward.
package glyph

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// ErrNoGlyph is returned when a face has no data for a glyph index.
var ErrNoGlyph = errors.New("glyph: no such glyph")

// Glyph is a glyph index positioned in device space.
type Glyph struct {
	Index uint32
	X, Y  float64
}

// Extenter reports glyph ink bounds.
type Extenter interface {
	// Bounds returns the ink box of the glyph relative to its origin.
	// Glyphs without ink, such as a space, return the zero box.
	Bounds(index uint32) (geom.Box, error)

	// Antialias returns the antialias mode the face renders with.
	Antialias() geom.Antialias
}

// Outliner produces glyph outlines.
type Outliner interface {
	// Outline returns the outline of the glyph with its origin at (x, y).
	Outline(index uint32, x, y float64) (*path.Path, error)
}

// Face is a glyph source usable both for extents and for drawing.
type Face interface {
	Extenter
	Outliner
}

// InkExtents returns the device rectangle covering the ink of glyphs and
// whether any two glyphs' ink rectangles overlap.
func InkExtents(e Extenter, glyphs []Glyph) (image.Rectangle, bool, error) {
	var (
		extents image.Rectangle
		rects   = make([]geom.Box, 0, len(glyphs))
	)
	for _, g := range glyphs {
		b, err := e.Bounds(g.Index)
		if err != nil {
			return image.Rectangle{}, false, fmt.Errorf("glyph %d: %w", g.Index, err)
		}
		if b.IsEmpty() {
			continue
		}
		r := b.Translate(geom.Fixed(g.X), geom.Fixed(g.Y)).RoundOut()
		extents = extents.Union(r)
		rects = append(rects, geom.FromRectangle(r))
	}
	return extents, !geom.Disjoint(rects), nil
}

// Outlines appends the outlines of glyphs into one path.
func Outlines(o Outliner, glyphs []Glyph) (*path.Path, error) {
	out := path.New()
	for _, g := range glyphs {
		p, err := o.Outline(g.Index, g.X, g.Y)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", g.Index, err)
		}
		out.Append(p)
	}
	return out, nil
}

// builder accumulates outline segments in device space.
type builder struct {
	p    *path.Path
	open bool
}

func newBuilder() *builder {
	return &builder{p: path.New()}
}

func (b *builder) moveTo(pt fixed.Point26_6) {
	if b.open {
		b.p.Close()
	}
	b.p.MoveToFixed(pt)
	b.open = true
}

func (b *builder) lineTo(pt fixed.Point26_6) {
	b.p.LineToFixed(pt)
}

func (b *builder) quadTo(c, pt fixed.Point26_6) {
	b.p.QuadTo(geom.Float(c.X), geom.Float(c.Y), geom.Float(pt.X), geom.Float(pt.Y))
}

func (b *builder) cubeTo(c1, c2, pt fixed.Point26_6) {
	b.p.CurveToFixed(c1, c2, pt)
}

func (b *builder) path() *path.Path {
	if b.open {
		b.p.Close()
	}
	return b.p
}
