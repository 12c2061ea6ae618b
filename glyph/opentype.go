package glyph

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// OpenTypeFace reads glyph outlines through go-text/typesetting.
//
// A font.Face is not safe for concurrent use, and neither is
// OpenTypeFace.
type OpenTypeFace struct {
	face  *font.Face
	scale float64 // pixels per font unit
	aa    geom.Antialias
}

// Compile-time interface check.
var _ Face = (*OpenTypeFace)(nil)

// NewOpenTypeFace parses a font and returns a face at size pixels per em.
func NewOpenTypeFace(data []byte, size float64, aa geom.Antialias) (*OpenTypeFace, error) {
	// ParseTTF returns a *Face which embeds the shared *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("glyph: invalid size %g", size)
	}
	return &OpenTypeFace{
		face:  face,
		scale: size / float64(face.Upem()),
		aa:    aa,
	}, nil
}

// Index returns the glyph index mapped to r.
func (f *OpenTypeFace) Index(r rune) (uint32, error) {
	gid, ok := f.face.Cmap.Lookup(r)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return uint32(gid), nil
}

func (f *OpenTypeFace) Antialias() geom.Antialias { return f.aa }

func (f *OpenTypeFace) outline(index uint32) (font.GlyphOutline, bool, error) {
	switch data := f.face.GlyphData(font.GID(index)).(type) {
	case font.GlyphOutline:
		return data, true, nil
	case nil:
		return font.GlyphOutline{}, false, fmt.Errorf("%w: %d", ErrNoGlyph, index)
	}
	return font.GlyphOutline{}, false, nil
}

// Bounds returns the bounding box of the glyph's outline points. Bitmap
// and SVG glyphs fall back to the font's glyph extents.
func (f *OpenTypeFace) Bounds(index uint32) (geom.Box, error) {
	o, ok, err := f.outline(index)
	if err != nil {
		return geom.Box{}, err
	}
	if !ok {
		ext, found := f.face.GlyphExtents(font.GID(index))
		if !found {
			return geom.Box{}, fmt.Errorf("%w: %d", ErrNoGlyph, index)
		}
		// Extents are y-up with a negative height.
		x0 := float64(ext.XBearing) * f.scale
		y0 := -float64(ext.YBearing) * f.scale
		x1 := x0 + float64(ext.Width)*f.scale
		y1 := y0 - float64(ext.Height)*f.scale
		return outward(x0, y0, x1, y1), nil
	}

	if len(o.Segments) == 0 {
		return geom.Box{}, nil
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, s := range o.Segments {
		for _, a := range s.Args[:argCount(s.Op)] {
			x, y := float64(a.X)*f.scale, -float64(a.Y)*f.scale
			x0, y0 = min(x0, x), min(y0, y)
			x1, y1 = max(x1, x), max(y1, y)
		}
	}
	return outward(x0, y0, x1, y1), nil
}

func argCount(op opentype.SegmentOp) int {
	switch op {
	case opentype.SegmentOpQuadTo:
		return 2
	case opentype.SegmentOpCubeTo:
		return 3
	}
	return 1
}

// outward converts a float box to 26.6, rounding away from its interior.
func outward(x0, y0, x1, y1 float64) geom.Box {
	return geom.Box{
		Min: fixed.Point26_6{X: fixed.Int26_6(math.Floor(x0 * 64)), Y: fixed.Int26_6(math.Floor(y0 * 64))},
		Max: fixed.Point26_6{X: fixed.Int26_6(math.Ceil(x1 * 64)), Y: fixed.Int26_6(math.Ceil(y1 * 64))},
	}
}

// Outline returns the glyph outline with its origin at (x, y).
func (f *OpenTypeFace) Outline(index uint32, x, y float64) (*path.Path, error) {
	o, ok, err := f.outline(index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("glyph: %d is not an outline glyph", index)
	}
	at := func(p opentype.SegmentPoint) fixed.Point26_6 {
		return geom.Pt(x+float64(p.X)*f.scale, y-float64(p.Y)*f.scale)
	}

	b := newBuilder()
	for _, s := range o.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			b.moveTo(at(s.Args[0]))
		case opentype.SegmentOpLineTo:
			b.lineTo(at(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			b.quadTo(at(s.Args[0]), at(s.Args[1]))
		case opentype.SegmentOpCubeTo:
			b.cubeTo(at(s.Args[0]), at(s.Args[1]), at(s.Args[2]))
		}
	}
	return b.path(), nil
}
