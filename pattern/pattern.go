// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pattern provides the paint sources consumed by compositing:
// solid colours, surfaces and linear/radial gradients.
//
// The rendering core is alpha-only, so patterns are evaluated for their
// alpha channel. Every pattern carries a matrix mapping device space to
// pattern space.
package pattern

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/ggclip/geom"
)

// Kind identifies the concrete pattern type.
type Kind uint8

const (
	KindSolid Kind = iota
	KindSurface
	KindLinear
	KindRadial
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindSurface:
		return "surface"
	case KindLinear:
		return "linear"
	case KindRadial:
		return "radial"
	default:
		return "unknown"
	}
}

// Extend controls how a pattern is sampled outside its natural area.
type Extend uint8

const (
	ExtendNone Extend = iota
	ExtendRepeat
	ExtendReflect
	ExtendPad
)

// Filter selects the resampling filter for surface patterns.
type Filter uint8

const (
	FilterFast Filter = iota
	FilterGood
	FilterBest
	FilterNearest
	FilterBilinear
	FilterGaussian
)

// Pattern is a paint source.
type Pattern interface {
	Kind() Kind

	// Extents returns the device rectangle outside of which the pattern
	// is fully transparent, or geom.Unbounded.
	Extents() image.Rectangle

	// SampledArea returns the pattern-space pixels read when drawing the
	// device rectangle r.
	SampledArea(r image.Rectangle) image.Rectangle

	// AlphaAt returns the pattern alpha at device point (x, y).
	AlphaAt(x, y float64) uint8

	IsOpaque() bool
	IsClear() bool
}

func alphaOf(c color.Color) uint8 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return uint8(a >> 8)
}

// Solid is a uniform colour.
type Solid struct {
	Color color.Color
}

// NewSolid returns a solid pattern of c.
func NewSolid(c color.Color) *Solid {
	return &Solid{Color: c}
}

// Opaque returns an opaque solid pattern.
func Opaque() *Solid { return NewSolid(color.Opaque) }

// Transparent returns a fully transparent solid pattern.
func Transparent() *Solid { return NewSolid(color.Transparent) }

func (s *Solid) Kind() Kind                                    { return KindSolid }
func (s *Solid) Extents() image.Rectangle                      { return geom.Unbounded }
func (s *Solid) SampledArea(r image.Rectangle) image.Rectangle { return r }
func (s *Solid) AlphaAt(_, _ float64) uint8                    { return alphaOf(s.Color) }
func (s *Solid) IsOpaque() bool                                { return alphaOf(s.Color) == 0xff }
func (s *Solid) IsClear() bool                                 { return alphaOf(s.Color) == 0 }

// Surface paints an image.
type Surface struct {
	Image  image.Image
	Matrix geom.Matrix
	Extend Extend
	Filter Filter
}

// NewSurface returns a surface pattern over img with the identity matrix,
// no extension and the good filter.
func NewSurface(img image.Image) *Surface {
	return &Surface{Image: img, Matrix: geom.Identity(), Filter: FilterGood}
}

func (s *Surface) Kind() Kind { return KindSurface }

func (s *Surface) Extents() image.Rectangle {
	if s.Extend != ExtendNone {
		return geom.Unbounded
	}
	b := s.Image.Bounds()
	if b.Empty() {
		return image.Rectangle{}
	}
	if tx, ty, ok := s.Matrix.IsIntegerTranslation(); ok {
		return b.Sub(image.Pt(tx, ty))
	}
	inv, ok := s.Matrix.Invert()
	if !ok {
		return image.Rectangle{}
	}
	pad := 0.5
	if AnalyzeFilter(s.Matrix, s.Filter) == FilterNearest {
		pad = 0
	}
	x0, y0, x1, y1 := inv.TransformBounds(
		float64(b.Min.X)-pad, float64(b.Min.Y)-pad,
		float64(b.Max.X)+pad, float64(b.Max.Y)+pad)
	return geom.ClampRect(x0, y0, x1, y1)
}

func (s *Surface) SampledArea(r image.Rectangle) image.Rectangle {
	return SampledArea(s.Matrix, s.Filter, r)
}

func (s *Surface) AlphaAt(x, y float64) uint8 {
	px, py := s.Matrix.Apply(x, y)
	b := s.Image.Bounds()
	if b.Empty() {
		return 0
	}
	if AnalyzeFilter(s.Matrix, s.Filter) == FilterNearest {
		return s.texel(int(math.Floor(px)), int(math.Floor(py)), b)
	}
	// Bilinear between the four nearest texel centres.
	fx, fy := px-0.5, py-0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	wx, wy := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)
	a00 := float64(s.texel(ix, iy, b))
	a10 := float64(s.texel(ix+1, iy, b))
	a01 := float64(s.texel(ix, iy+1, b))
	a11 := float64(s.texel(ix+1, iy+1, b))
	top := a00 + (a10-a00)*wx
	bottom := a01 + (a11-a01)*wx
	return uint8(math.Round(top + (bottom-top)*wy))
}

func (s *Surface) texel(x, y int, b image.Rectangle) uint8 {
	var ok bool
	if x, ok = extendCoord(x, b.Min.X, b.Max.X, s.Extend); !ok {
		return 0
	}
	if y, ok = extendCoord(y, b.Min.Y, b.Max.Y, s.Extend); !ok {
		return 0
	}
	if a, isAlpha := s.Image.(*image.Alpha); isAlpha {
		return a.AlphaAt(x, y).A
	}
	return alphaOf(s.Image.At(x, y))
}

func extendCoord(v, lo, hi int, e Extend) (int, bool) {
	n := hi - lo
	switch e {
	case ExtendRepeat:
		m := (v - lo) % n
		if m < 0 {
			m += n
		}
		return lo + m, true
	case ExtendReflect:
		m := (v - lo) % (2 * n)
		if m < 0 {
			m += 2 * n
		}
		if m >= n {
			m = 2*n - 1 - m
		}
		return lo + m, true
	case ExtendPad:
		return min(max(v, lo), hi-1), true
	default:
		return v, v >= lo && v < hi
	}
}

func (s *Surface) IsOpaque() bool {
	if s.Extend == ExtendNone || s.Image.Bounds().Empty() {
		return false
	}
	if o, ok := s.Image.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func (s *Surface) IsClear() bool {
	return s.Extend == ExtendNone && s.Image.Bounds().Empty()
}

// Stop is a gradient colour stop. Stops are expected in offset order.
type Stop struct {
	Offset float64
	Color  color.Color
}

// Gradient holds the state shared by linear and radial gradients.
type Gradient struct {
	Stops  []Stop
	Matrix geom.Matrix
	Extend Extend
}

func (g *Gradient) stopsOpaque() bool {
	if len(g.Stops) == 0 {
		return false
	}
	for _, s := range g.Stops {
		if alphaOf(s.Color) != 0xff {
			return false
		}
	}
	return true
}

// IsClear reports whether every stop is transparent.
func (g *Gradient) IsClear() bool {
	for _, s := range g.Stops {
		if alphaOf(s.Color) != 0 {
			return false
		}
	}
	return true
}

// alphaAt evaluates the stop ramp at parameter t after applying the extend
// mode. Outside [0, 1] with ExtendNone the ramp is transparent.
func (g *Gradient) alphaAt(t float64) uint8 {
	if len(g.Stops) == 0 || math.IsNaN(t) {
		return 0
	}
	switch g.Extend {
	case ExtendNone:
		if t < 0 || t > 1 {
			return 0
		}
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Mod(math.Abs(t), 2)
		if t > 1 {
			t = 2 - t
		}
	default:
		t = min(max(t, 0), 1)
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return alphaOf(first.Color)
	}
	if t >= last.Offset {
		return alphaOf(last.Color)
	}
	for i := 1; i < len(g.Stops); i++ {
		s0, s1 := g.Stops[i-1], g.Stops[i]
		if t > s1.Offset {
			continue
		}
		a0, a1 := float64(alphaOf(s0.Color)), float64(alphaOf(s1.Color))
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return uint8(a1)
		}
		return uint8(math.Round(a0 + (a1-a0)*(t-s0.Offset)/span))
	}
	return alphaOf(last.Color)
}

// Linear is a gradient along the line (X0, Y0)-(X1, Y1) in pattern space.
type Linear struct {
	Gradient
	X0, Y0, X1, Y1 float64
}

// NewLinear returns a padded linear gradient with the identity matrix.
func NewLinear(x0, y0, x1, y1 float64, stops ...Stop) *Linear {
	return &Linear{
		Gradient: Gradient{Stops: stops, Matrix: geom.Identity(), Extend: ExtendPad},
		X0:       x0, Y0: y0, X1: x1, Y1: y1,
	}
}

func (l *Linear) Kind() Kind { return KindLinear }

func (l *Linear) degenerate() bool { return l.X0 == l.X1 && l.Y0 == l.Y1 }

func (l *Linear) Extents() image.Rectangle {
	if l.Extend == ExtendNone && l.degenerate() {
		return image.Rectangle{}
	}
	return geom.Unbounded
}

func (l *Linear) SampledArea(r image.Rectangle) image.Rectangle { return r }

func (l *Linear) AlphaAt(x, y float64) uint8 {
	if l.degenerate() {
		if l.Extend == ExtendNone {
			return 0
		}
		return l.alphaAt(1)
	}
	px, py := l.Matrix.Apply(x, y)
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	t := ((px-l.X0)*dx + (py-l.Y0)*dy) / (dx*dx + dy*dy)
	return l.alphaAt(t)
}

func (l *Linear) IsOpaque() bool {
	return l.Extend != ExtendNone && !l.degenerate() && l.stopsOpaque()
}

// Radial is a two-circle gradient from (CX0, CY0, R0) to (CX1, CY1, R1).
type Radial struct {
	Gradient
	CX0, CY0, R0 float64
	CX1, CY1, R1 float64
}

// NewRadial returns a padded radial gradient with the identity matrix.
func NewRadial(cx0, cy0, r0, cx1, cy1, r1 float64, stops ...Stop) *Radial {
	return &Radial{
		Gradient: Gradient{Stops: stops, Matrix: geom.Identity(), Extend: ExtendPad},
		CX0:      cx0, CY0: cy0, R0: r0,
		CX1: cx1, CY1: cy1, R1: r1,
	}
}

func (r *Radial) Kind() Kind { return KindRadial }

// FocusInside reports whether the smaller circle lies within the larger
// one, in which case the gradient covers a bounded disc.
func (r *Radial) FocusInside() bool {
	d := math.Hypot(r.CX1-r.CX0, r.CY1-r.CY0)
	return d <= math.Abs(r.R1-r.R0)
}

func (r *Radial) Extents() image.Rectangle {
	if r.Extend != ExtendNone || !r.FocusInside() {
		return geom.Unbounded
	}
	inv, ok := r.Matrix.Invert()
	if !ok {
		return image.Rectangle{}
	}
	x0 := math.Min(r.CX0-r.R0, r.CX1-r.R1)
	y0 := math.Min(r.CY0-r.R0, r.CY1-r.R1)
	x1 := math.Max(r.CX0+r.R0, r.CX1+r.R1)
	y1 := math.Max(r.CY0+r.R0, r.CY1+r.R1)
	return geom.ClampRect(inv.TransformBounds(x0, y0, x1, y1))
}

func (r *Radial) SampledArea(rect image.Rectangle) image.Rectangle { return rect }

// AlphaAt solves |p - c(t)| = r(t) for the largest t with r(t) >= 0.
func (r *Radial) AlphaAt(x, y float64) uint8 {
	px, py := r.Matrix.Apply(x, y)
	cdx, cdy, dr := r.CX1-r.CX0, r.CY1-r.CY0, r.R1-r.R0
	pdx, pdy := px-r.CX0, py-r.CY0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + r.R0*dr
	c := pdx*pdx + pdy*pdy - r.R0*r.R0

	valid := func(t float64) bool { return r.R0+t*dr >= 0 }
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0
		}
		t := c / (2 * b)
		if !valid(t) {
			return 0
		}
		return r.alphaAt(t)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	switch {
	case valid(t1) && r.inRamp(t1):
		return r.alphaAt(t1)
	case valid(t2) && r.inRamp(t2):
		return r.alphaAt(t2)
	}
	return 0
}

func (r *Radial) inRamp(t float64) bool {
	return r.Extend != ExtendNone || (t >= 0 && t <= 1)
}

func (r *Radial) IsOpaque() bool {
	return r.Extend != ExtendNone && r.FocusInside() && r.stopsOpaque() &&
		math.Max(r.R0, r.R1) > 0 && math.Min(r.R0, r.R1) == 0
}
