// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pattern

import (
	"image"
	"math"

	"github.com/gogpu/ggclip/geom"
)

// AnalyzeFilter returns the filter actually needed to sample through m.
// Pixel-exact transforms never need interpolation, and the good filter is
// replaced by bilinear where the two are indistinguishable.
func AnalyzeFilter(m geom.Matrix, f Filter) Filter {
	switch f {
	case FilterGood, FilterBest, FilterBilinear, FilterFast:
		if _, _, ok := m.IsIntegerTranslation(); ok {
			return FilterNearest
		}
		if f == FilterGood && useBilinear(m.A, m.B, m.C) && useBilinear(m.D, m.E, m.F) {
			return FilterBilinear
		}
	}
	return f
}

// useBilinear reports whether one matrix row scales by at least 0.75, or
// by exactly one half with an integer offset.
func useBilinear(x, y, t float64) bool {
	h := x*x + y*y
	if h < 9.0/16 {
		return h == 0.25 && t == math.Trunc(t)
	}
	return true
}

// SampledArea returns the pattern-space rectangle read when drawing the
// device rectangle r through matrix m with filter f. Samples weighted by
// values very close to zero at the ends of a filter are ignored, so
// identity-like transforms do not grow the area.
func SampledArea(m geom.Matrix, f Filter, r image.Rectangle) image.Rectangle {
	if m.IsIdentity() {
		return r
	}
	// Centres of the corner pixels.
	x1, y1 := float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5
	x2, y2 := x1+float64(r.Dx()-1), y1+float64(r.Dy()-1)
	x1, y1, x2, y2 = m.TransformBounds(x1, y1, x2, y2)

	var padx, pady float64
	switch f {
	case FilterNearest, FilterFast:
		// Zero would do, but a sample landing exactly on an integer may
		// read either neighbour.
		padx, pady = 0.004, 0.004
	case FilterGood:
		padx = goodPad(math.Hypot(m.A, m.B))
		pady = goodPad(math.Hypot(m.D, m.E))
	case FilterBest:
		padx = math.Min(math.Hypot(m.A, m.B)*1.98, 7.92)
		pady = math.Min(math.Hypot(m.D, m.E)*1.98, 7.92)
	default:
		padx, pady = 0.495, 0.495
	}

	minX := math.Max(math.Floor(x1-padx), geom.MinInt)
	minY := math.Max(math.Floor(y1-pady), geom.MinInt)
	maxX := math.Min(math.Floor(x2+padx)+1, geom.MaxInt)
	maxY := math.Min(math.Floor(y2+pady)+1, geom.MaxInt)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

func goodPad(scale float64) float64 {
	switch {
	case scale <= 1:
		return 0.495
	case scale >= 16:
		return 7.92
	}
	return scale * 0.495
}

// Reduce returns a copy of p prepared for compositing: surface patterns get
// their analyzed filter and, when nearest sampling makes it exact, an
// integer translation. Solid patterns are returned unchanged.
func Reduce(p Pattern) Pattern {
	switch v := p.(type) {
	case *Surface:
		c := *v
		c.Filter = AnalyzeFilter(c.Matrix, c.Filter)
		if c.Filter == FilterNearest && c.Matrix.IsTranslation() {
			c.Matrix.C = math.Floor(c.Matrix.C + 0.5)
			c.Matrix.F = math.Floor(c.Matrix.F + 0.5)
		}
		return &c
	case *Linear:
		c := *v
		return &c
	case *Radial:
		c := *v
		return &c
	}
	return p
}
