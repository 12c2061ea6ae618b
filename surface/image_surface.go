// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/internal/blend"
	"github.com/gogpu/ggclip/internal/raster"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/region"
)

// ImageSurface is an A8 surface backed by an *image.Alpha whose bounds are
// the surface's device-space extents.
type ImageSurface struct {
	img    *image.Alpha
	err    error
	closed bool
}

// Compile-time interface check.
var _ Surface = (*ImageSurface)(nil)

// NewImageSurface creates a transparent A8 surface of width x height pixels
// with its origin at (0, 0).
func NewImageSurface(width, height int) (*ImageSurface, error) {
	// image.Rect swaps reversed coordinates, so check the sizes first.
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return NewScratch(image.Rect(0, 0, width, height), false)
}

// NewScratch creates an A8 surface covering the device rectangle r,
// initialized fully opaque or fully transparent.
func NewScratch(r image.Rectangle, opaque bool) (*ImageSurface, error) {
	if r.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, r)
	}
	img := image.NewAlpha(r)
	if opaque {
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
	}
	return &ImageSurface{img: img}, nil
}

// NewFromImage wraps an existing A8 image. Drawing writes through to img.
func NewFromImage(img image.Image) (*ImageSurface, error) {
	a, ok := img.(*image.Alpha)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrFormat, img)
	}
	if a.Rect.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, a.Rect)
	}
	return &ImageSurface{img: a}, nil
}

// NewInError returns a surface that carries err and refuses all drawing.
func NewInError(err error) *ImageSurface {
	return &ImageSurface{err: err}
}

// Err returns the error the surface was created in.
func (s *ImageSurface) Err() error { return s.err }

// Extents returns the device rectangle covered by the surface.
func (s *ImageSurface) Extents() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Rect
}

func (s *ImageSurface) Content() Content { return ContentAlpha }

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.Extents().Dx() }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.Extents().Dy() }

// Image returns the backing image. It is nil for a surface in error.
func (s *ImageSurface) Image() *image.Alpha { return s.img }

// AlphaAt returns the stored coverage at device pixel (x, y).
func (s *ImageSurface) AlphaAt(x, y int) uint8 {
	if s.img == nil {
		return 0
	}
	return s.img.AlphaAt(x, y).A
}

// Close releases the backing image. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	s.img = nil
	return nil
}

func (s *ImageSurface) usable() error {
	switch {
	case s.err != nil:
		return s.err
	case s.closed:
		return ErrClosed
	}
	return nil
}

// Paint composites src over the whole clip.
func (s *ImageSurface) Paint(op Operator, src pattern.Pattern, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.composite(op, src, nil, clip)
}

// Mask composites src through the alpha of mask.
func (s *ImageSurface) Mask(op Operator, src, mask pattern.Pattern, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	r := s.img.Rect.Intersect(mask.Extents())
	if clip != nil {
		r = r.Intersect(clip.Extents())
	}
	m := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.PixOffset(r.Min.X, y):]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x-r.Min.X] = mask.AlphaAt(float64(x)+0.5, float64(y)+0.5)
		}
	}
	return s.composite(op, src, m, clip)
}

// MaskImage composites src through a device-space coverage image.
// Pixels outside mask.Rect have zero coverage.
func (s *ImageSurface) MaskImage(op Operator, src pattern.Pattern, mask *image.Alpha, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.composite(op, src, mask, clip)
}

// Fill composites src through the coverage of p.
func (s *ImageSurface) Fill(op Operator, src pattern.Pattern, p *path.Path, rule geom.FillRule,
	tolerance float64, aa geom.Antialias, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.FillPolygon(op, src, polygon.FromPath(p, tolerance), rule, aa, clip)
}

// FillBoxes composites src through the union of boxes. Boxes that are not
// pixel aligned contribute their exact partial coverage.
func (s *ImageSurface) FillBoxes(op Operator, src pattern.Pattern, boxes []geom.Box, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.FillPolygon(op, src, polygon.FromBoxes(boxes), geom.Winding, geom.AntialiasDefault, clip)
}

// Stroke composites src through the stroke of p.
func (s *ImageSurface) Stroke(op Operator, src pattern.Pattern, p *path.Path, style path.StrokeStyle,
	ctm geom.Matrix, tolerance float64, aa geom.Antialias, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	outline := p.Outline(style, ctm, tolerance)
	return s.FillPolygon(op, src, polygon.FromPath(outline, tolerance), geom.Winding, aa, clip)
}

// FillPolygon composites src through the coverage of poly.
func (s *ImageSurface) FillPolygon(op Operator, src pattern.Pattern, poly *polygon.Polygon,
	rule geom.FillRule, aa geom.Antialias, clip Clip) error {
	if err := s.usable(); err != nil {
		return err
	}
	r := s.img.Rect.Intersect(poly.Bounds())
	if clip != nil {
		r = r.Intersect(clip.Extents())
	}
	return s.composite(op, src, raster.Coverage(poly, rule, aa, r), clip)
}

// composite is the single pixel loop behind every drawing call. A nil mask
// means full coverage.
func (s *ImageSurface) composite(op Operator, src pattern.Pattern, mask *image.Alpha, clip Clip) error {
	area := s.img.Rect
	if clip != nil {
		if clip.IsAllClipped() {
			return nil
		}
		area = area.Intersect(clip.Extents())
	}
	bound := op.BoundedBy()
	if bound&BoundByMask != 0 && mask != nil {
		area = area.Intersect(mask.Rect)
	}
	if bound&BoundBySource != 0 {
		area = area.Intersect(src.Extents())
	}
	if area.Empty() {
		return nil
	}

	cov, err := clipCoverage(clip, area)
	if err != nil {
		return err
	}

	f := blend.Func(op.blendMode())
	mix := blend.Composite
	if op.interpolates() {
		mix = blend.CompositeCoverage
	}
	_, solid := src.(*pattern.Solid)
	sa := src.AlphaAt(0, 0)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := s.img.Pix[s.img.PixOffset(area.Min.X, y):]
		for x := area.Min.X; x < area.Max.X; x++ {
			m, c := uint8(0xff), uint8(0xff)
			if mask != nil {
				m = mask.AlphaAt(x, y).A
			}
			if cov != nil {
				c = cov.AlphaAt(x, y).A
			}
			if !solid {
				sa = src.AlphaAt(float64(x)+0.5, float64(y)+0.5)
			}
			i := x - area.Min.X
			row[i] = mix(f, sa, m, c, row[i])
		}
	}
	return nil
}

// clipCoverage returns the clip's coverage over area, or nil when the clip
// covers all of it.
func clipCoverage(clip Clip, area image.Rectangle) (*image.Alpha, error) {
	if clip == nil {
		return nil, nil
	}
	if clip.IsRegion() {
		rgn := clip.Region()
		if rgn.ContainsRectangle(area) == region.OverlapIn {
			return nil, nil
		}
		cov := image.NewAlpha(area)
		for _, r := range rgn.IntersectRectangle(area).Rectangles() {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				row := cov.Pix[cov.PixOffset(r.Min.X, y):]
				for i := range r.Dx() {
					row[i] = 0xff
				}
			}
		}
		return cov, nil
	}
	cc, ok := clip.(CoverageClip)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedClip, clip)
	}
	cov, err := cc.Coverage(area)
	if err != nil {
		return nil, fmt.Errorf("surface: clip coverage: %w", err)
	}
	return cov, nil
}
