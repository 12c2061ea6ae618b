package gstate

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/gogpu/ggclip/clip"
	"github.com/gogpu/ggclip/composite"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/glyph"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/region"
	"github.com/gogpu/ggclip/surface"
)

// Compositor draws an operation whose extents and reduced clip have been
// computed. Every method receives the Rectangles of the operation; the
// source, mask, operator and clip to use are taken from it.
type Compositor interface {
	Paint(dst surface.Surface, r *composite.Rectangles) error
	Mask(dst surface.Surface, r *composite.Rectangles) error
	Fill(dst surface.Surface, r *composite.Rectangles, p *path.Path, rule geom.FillRule,
		tolerance float64, aa geom.Antialias) error
	Stroke(dst surface.Surface, r *composite.Rectangles, p *path.Path, style path.StrokeStyle,
		ctm geom.Matrix, tolerance float64, aa geom.Antialias) error
	Glyphs(dst surface.Surface, r *composite.Rectangles, face glyph.Outliner,
		glyphs []glyph.Glyph, aa geom.Antialias, overlap bool) error
}

// MaskCompositor draws onto A8 image surfaces. Region clips are applied
// directly, polygon clips are intersected with filled geometry, and any
// other clip is materialized once per operation as a coverage mask.
type MaskCompositor struct {
	Arena *clip.Arena
	log   *slog.Logger
}

// Compile-time interface check.
var _ Compositor = (*MaskCompositor)(nil)

// NewMaskCompositor returns a compositor materializing clips from a.
func NewMaskCompositor(a *clip.Arena) *MaskCompositor {
	return &MaskCompositor{Arena: a, log: a.Options().Log()}
}

func imageTarget(dst surface.Surface) (*surface.ImageSurface, error) {
	s, ok := dst.(*surface.ImageSurface)
	if !ok {
		return nil, fmt.Errorf("gstate: unsupported target %T", dst)
	}
	return s, nil
}

// coverageClip is a clip materialized as an A8 image.
type coverageClip struct {
	img *image.Alpha
}

func (c coverageClip) IsAllClipped() bool       { return false }
func (c coverageClip) Extents() image.Rectangle { return c.img.Rect }
func (c coverageClip) IsRegion() bool           { return false }
func (c coverageClip) Region() *region.Region   { return region.FromRectangles(c.img.Rect) }

func (c coverageClip) Coverage(bounds image.Rectangle) (*image.Alpha, error) {
	cov := image.NewAlpha(bounds)
	draw.Draw(cov, bounds, c.img, bounds.Min, draw.Src)
	return cov, nil
}

// clipFor returns the surface clip to draw r with. A nil result means the
// operation is unclipped.
func (m *MaskCompositor) clipFor(dst surface.Surface, r *composite.Rectangles) (surface.Clip, error) {
	switch {
	case r.Clip == nil:
		return nil, nil
	case r.Clip.IsRegion():
		return r.Clip, nil
	}
	s, _, err := m.Arena.Surface(r.Clip, dst)
	if err != nil {
		return nil, fmt.Errorf("gstate: clip mask: %w", err)
	}
	return coverageClip{img: s.Image()}, nil
}

func (m *MaskCompositor) Paint(dst surface.Surface, r *composite.Rectangles) error {
	c, err := m.clipFor(dst, r)
	if err != nil {
		return err
	}
	return dst.Paint(r.Op, r.SourcePattern, c)
}

func (m *MaskCompositor) Mask(dst surface.Surface, r *composite.Rectangles) error {
	c, err := m.clipFor(dst, r)
	if err != nil {
		return err
	}
	return dst.Mask(r.Op, r.SourcePattern, r.MaskPattern, c)
}

// Fill draws p. When the operator is bounded by its mask and the clip has
// a polygon in the same antialias mode, the clip is applied by polygon
// intersection instead of a coverage mask.
func (m *MaskCompositor) Fill(dst surface.Surface, r *composite.Rectangles, p *path.Path,
	rule geom.FillRule, tolerance float64, aa geom.Antialias) error {
	if r.Clip != nil && !r.Clip.IsRegion() && r.IsBounded&surface.BoundByMask != 0 {
		done, err := m.fillPolygon(dst, r, p, rule, tolerance, aa)
		if done || err != nil {
			return err
		}
	}
	c, err := m.clipFor(dst, r)
	if err != nil {
		return err
	}
	return dst.Fill(r.Op, r.SourcePattern, p, rule, tolerance, aa, c)
}

func (m *MaskCompositor) fillPolygon(dst surface.Surface, r *composite.Rectangles, p *path.Path,
	rule geom.FillRule, tolerance float64, aa geom.Antialias) (bool, error) {
	img, err := imageTarget(dst)
	if err != nil {
		return false, nil
	}
	if !clip.IsPolygon(r.Clip) {
		m.log.Debug("gstate: clip is not a polygon, using a coverage mask")
		return false, nil
	}
	cp, clipRule, clipAA, err := clip.Polygon(r.Clip)
	if err != nil {
		m.log.Debug("gstate: clip polygon conversion failed", "err", err)
		return false, nil
	}
	if clipAA != aa {
		m.log.Debug("gstate: clip antialias differs, using a coverage mask",
			"clip", clipAA, "fill", aa)
		return false, nil
	}
	fill := polygon.FromPath(p, tolerance)
	poly := fill.Intersect(cp, rule, clipRule)
	return true, img.FillPolygon(r.Op, r.SourcePattern, poly, geom.Winding, aa, nil)
}

func (m *MaskCompositor) Stroke(dst surface.Surface, r *composite.Rectangles, p *path.Path,
	style path.StrokeStyle, ctm geom.Matrix, tolerance float64, aa geom.Antialias) error {
	c, err := m.clipFor(dst, r)
	if err != nil {
		return err
	}
	return dst.Stroke(r.Op, r.SourcePattern, p, style, ctm, tolerance, aa, c)
}

// Glyphs fills the union of the glyph outlines. Overlapping glyphs are
// filled as one shape so shared pixels are not composited twice.
func (m *MaskCompositor) Glyphs(dst surface.Surface, r *composite.Rectangles, face glyph.Outliner,
	glyphs []glyph.Glyph, aa geom.Antialias, _ bool) error {
	p, err := glyph.Outlines(face, glyphs)
	if err != nil {
		return err
	}
	return m.Fill(dst, r, p, geom.Winding, m.Arena.Options().Tolerance, aa)
}
