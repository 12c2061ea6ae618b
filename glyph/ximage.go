package glyph

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// XImageFace reads glyph metrics and outlines through
// golang.org/x/image/font/sfnt.
//
// XImageFace is not safe for concurrent use: it reuses one sfnt.Buffer.
type XImageFace struct {
	font    *opentype.Font
	ppem    fixed.Int26_6
	hinting font.Hinting
	aa      geom.Antialias
	buf     sfnt.Buffer
}

// Compile-time interface check.
var _ Face = (*XImageFace)(nil)

// NewXImageFace parses an OpenType or TrueType font and returns a face at
// size pixels per em.
func NewXImageFace(data []byte, size float64, hinting font.Hinting, aa geom.Antialias) (*XImageFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("glyph: invalid size %g", size)
	}
	return &XImageFace{
		font:    f,
		ppem:    fixed.Int26_6(size * 64),
		hinting: hinting,
		aa:      aa,
	}, nil
}

// Index returns the glyph index mapped to r.
func (f *XImageFace) Index(r rune) (uint32, error) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0, err
	}
	if idx == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return uint32(idx), nil
}

// Advance returns the horizontal advance of a glyph in pixels.
func (f *XImageFace) Advance(index uint32) (float64, error) {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(index), f.ppem, f.hinting)
	if err != nil {
		return 0, err
	}
	return geom.Float(adv), nil
}

func (f *XImageFace) Antialias() geom.Antialias { return f.aa }

// Bounds returns the ink bounds reported by the font for the glyph.
func (f *XImageFace) Bounds(index uint32) (geom.Box, error) {
	if int(index) >= f.font.NumGlyphs() {
		return geom.Box{}, fmt.Errorf("%w: %d", ErrNoGlyph, index)
	}
	b, _, err := f.font.GlyphBounds(&f.buf, sfnt.GlyphIndex(index), f.ppem, f.hinting)
	if err != nil {
		return geom.Box{}, err
	}
	return geom.FromRectangle26_6(b), nil
}

// Outline returns the glyph outline with its origin at (x, y).
func (f *XImageFace) Outline(index uint32, x, y float64) (*path.Path, error) {
	if int(index) >= f.font.NumGlyphs() {
		return nil, fmt.Errorf("%w: %d", ErrNoGlyph, index)
	}
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(index), f.ppem, nil)
	if err != nil {
		return nil, err
	}
	origin := geom.Pt(x, y)
	at := func(p fixed.Point26_6) fixed.Point26_6 { return origin.Add(p) }

	b := newBuilder()
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			b.moveTo(at(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.lineTo(at(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.quadTo(at(s.Args[0]), at(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.cubeTo(at(s.Args[0]), at(s.Args[1]), at(s.Args[2]))
		}
	}
	return b.path(), nil
}
