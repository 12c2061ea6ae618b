// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pattern

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/ggclip/geom"
)

func TestSolid(t *testing.T) {
	tests := []struct {
		name          string
		c             color.Color
		opaque, clear bool
		alpha         uint8
	}{
		{"opaque", color.Opaque, true, false, 255},
		{"transparent", color.Transparent, false, true, 0},
		{"half", color.Alpha{A: 128}, false, false, 128},
		{"nil", nil, false, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolid(tt.c)
			if got := s.IsOpaque(); got != tt.opaque {
				t.Errorf("IsOpaque() = %v, want %v", got, tt.opaque)
			}
			if got := s.IsClear(); got != tt.clear {
				t.Errorf("IsClear() = %v, want %v", got, tt.clear)
			}
			if got := s.AlphaAt(3, 4); got != tt.alpha {
				t.Errorf("AlphaAt() = %d, want %d", got, tt.alpha)
			}
			if got := s.Extents(); got != geom.Unbounded {
				t.Errorf("Extents() = %v, want unbounded", got)
			}
		})
	}
}

func alphaImage(r image.Rectangle, a uint8) *image.Alpha {
	img := image.NewAlpha(r)
	for i := range img.Pix {
		img.Pix[i] = a
	}
	return img
}

func TestSurfaceExtents(t *testing.T) {
	img := alphaImage(image.Rect(0, 0, 10, 10), 255)
	tests := []struct {
		name   string
		matrix geom.Matrix
		extend Extend
		want   image.Rectangle
	}{
		{"identity", geom.Identity(), ExtendNone, image.Rect(0, 0, 10, 10)},
		{"integer translation", geom.Translation(5, -3), ExtendNone, image.Rect(-5, 3, 5, 13)},
		{"repeat", geom.Identity(), ExtendRepeat, geom.Unbounded},
		{"scale down", geom.Scaling(0.5, 0.5), ExtendNone, image.Rect(-1, -1, 21, 21)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(img)
			s.Matrix = tt.matrix
			s.Extend = tt.extend
			if got := s.Extents(); got != tt.want {
				t.Errorf("Extents() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurfaceAlphaAt(t *testing.T) {
	img := alphaImage(image.Rect(0, 0, 4, 4), 200)
	s := NewSurface(img)
	if got := s.AlphaAt(1.5, 1.5); got != 200 {
		t.Errorf("AlphaAt(inside) = %d, want 200", got)
	}
	if got := s.AlphaAt(5.5, 1.5); got != 0 {
		t.Errorf("AlphaAt(outside) = %d, want 0", got)
	}
	s.Extend = ExtendRepeat
	if got := s.AlphaAt(5.5, 1.5); got != 200 {
		t.Errorf("AlphaAt(repeat) = %d, want 200", got)
	}
}

func TestExtendCoord(t *testing.T) {
	tests := []struct {
		name   string
		v      int
		e      Extend
		want   int
		wantOK bool
	}{
		{"none inside", 2, ExtendNone, 2, true},
		{"none outside", 4, ExtendNone, 4, false},
		{"repeat", 5, ExtendRepeat, 1, true},
		{"repeat negative", -1, ExtendRepeat, 3, true},
		{"reflect", 4, ExtendReflect, 3, true},
		{"reflect far", 7, ExtendReflect, 0, true},
		{"pad low", -9, ExtendPad, 0, true},
		{"pad high", 9, ExtendPad, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extendCoord(tt.v, 0, 4, tt.e)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("extendCoord(%d) = %d, %v, want %d, %v", tt.v, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSampledArea(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name   string
		matrix geom.Matrix
		filter Filter
		want   image.Rectangle
	}{
		{"identity", geom.Identity(), FilterGood, r},
		{"nearest translation", geom.Translation(0.5, 0), FilterNearest, image.Rect(0, 0, 11, 10)},
		{"bilinear translation", geom.Translation(0.5, 0), FilterBilinear, image.Rect(0, 0, 11, 10)},
		{"good minify", geom.Scaling(2, 2), FilterGood, image.Rect(0, 0, 20, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampledArea(tt.matrix, tt.filter, r); got != tt.want {
				t.Errorf("SampledArea() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFilter(t *testing.T) {
	tests := []struct {
		name   string
		matrix geom.Matrix
		filter Filter
		want   Filter
	}{
		{"pixel exact", geom.Translation(3, 4), FilterGood, FilterNearest},
		{"upscale good", geom.Scaling(2, 2), FilterGood, FilterBilinear},
		{"downscale good", geom.Scaling(0.25, 0.25), FilterGood, FilterGood},
		{"gaussian kept", geom.Translation(3, 4), FilterGaussian, FilterGaussian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeFilter(tt.matrix, tt.filter); got != tt.want {
				t.Errorf("AnalyzeFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinear(t *testing.T) {
	l := NewLinear(0, 0, 10, 0,
		Stop{0, color.Alpha{A: 0}},
		Stop{1, color.Alpha{A: 255}})
	if got := l.AlphaAt(5, 7); got != 128 {
		t.Errorf("AlphaAt(mid) = %d, want 128", got)
	}
	if got := l.AlphaAt(20, 0); got != 255 {
		t.Errorf("AlphaAt(pad) = %d, want 255", got)
	}
	l.Extend = ExtendNone
	if got := l.AlphaAt(20, 0); got != 0 {
		t.Errorf("AlphaAt(none) = %d, want 0", got)
	}
	if got := l.Extents(); got != geom.Unbounded {
		t.Errorf("Extents() = %v, want unbounded", got)
	}
}

func TestRadialExtents(t *testing.T) {
	stops := []Stop{{0, color.Opaque}, {1, color.Opaque}}
	nested := NewRadial(10, 10, 0, 10, 10, 5, stops...)
	nested.Extend = ExtendNone
	if got, want := nested.Extents(), image.Rect(5, 5, 15, 15); got != want {
		t.Errorf("Extents(nested) = %v, want %v", got, want)
	}
	if got := nested.AlphaAt(10.5, 10.5); got != 255 {
		t.Errorf("AlphaAt(centre) = %d, want 255", got)
	}
	if got := nested.AlphaAt(30, 30); got != 0 {
		t.Errorf("AlphaAt(outside) = %d, want 0", got)
	}

	cone := NewRadial(0, 0, 1, 20, 0, 2, stops...)
	cone.Extend = ExtendNone
	if got := cone.Extents(); got != geom.Unbounded {
		t.Errorf("Extents(cone) = %v, want unbounded", got)
	}
}

func TestReduce(t *testing.T) {
	s := NewSurface(alphaImage(image.Rect(0, 0, 2, 2), 255))
	s.Matrix = geom.Translation(2, 3)
	r, ok := Reduce(s).(*Surface)
	if !ok {
		t.Fatalf("Reduce() returned %T", Reduce(s))
	}
	if r.Filter != FilterNearest {
		t.Errorf("Reduce().Filter = %v, want nearest", r.Filter)
	}
	if s.Filter != FilterGood {
		t.Errorf("Reduce() modified its input")
	}
}
