// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/polygon"
)

func fillRows(poly *polygon.Polygon, bounds image.Rectangle, rule geom.FillRule) [][]float32 {
	af := NewAnalyticFiller(bounds.Dx(), bounds.Dy())
	rows := make([][]float32, bounds.Dy())
	af.Fill(poly, bounds.Min, rule, func(y int, coverage []float32) {
		rows[y] = append([]float32(nil), coverage...)
	})
	return rows
}

func TestAnalyticFillerArea(t *testing.T) {
	tests := []struct {
		name   string
		xy     []float64
		bounds image.Rectangle
		want   float64
	}{
		{"triangle", []float64{0, 0, 8, 0, 0, 8}, image.Rect(0, 0, 8, 8), 32},
		{"offset triangle", []float64{10.5, 10.25, 16.5, 10.25, 10.5, 14.25}, image.Rect(10, 10, 20, 20), 12},
		{"diamond", []float64{5, 1, 9, 5, 5, 9, 1, 5}, image.Rect(0, 0, 10, 10), 32},
		{"clipped left", []float64{-4, 0, 4, 0, 4, 4, -4, 4}, image.Rect(0, 0, 8, 8), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := path.New()
			p.Polygon(tt.xy...)
			var sum float64
			for _, row := range fillRows(polygon.FromPath(p, 0.1), tt.bounds, geom.Winding) {
				for _, c := range row {
					sum += float64(c)
				}
			}
			if math.Abs(sum-tt.want) > 0.01 {
				t.Errorf("covered area = %v, want %v", sum, tt.want)
			}
		})
	}
}

func TestAnalyticFillerEvenOddOverlap(t *testing.T) {
	poly := polygon.FromBoxes([]geom.Box{geom.B(0, 0, 4, 4), geom.B(2, 2, 6, 6)})
	bounds := image.Rect(0, 0, 6, 6)

	tests := []struct {
		rule geom.FillRule
		x, y int
		want float32
	}{
		{geom.EvenOdd, 1, 1, 1},
		{geom.EvenOdd, 3, 3, 0},
		{geom.EvenOdd, 5, 5, 1},
		{geom.Winding, 3, 3, 1},
	}
	for _, tt := range tests {
		rows := fillRows(poly, bounds, tt.rule)
		if got := rows[tt.y][tt.x]; math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("%v coverage(%d,%d) = %v, want %v", tt.rule, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAnalyticFillerSkipsEmptyRows(t *testing.T) {
	af := NewAnalyticFiller(8, 8)
	var ys []int
	af.Fill(boxPoly(0, 2, 8, 4), image.Point{}, geom.Winding, func(y int, _ []float32) {
		ys = append(ys, y)
	})
	if len(ys) != 2 || ys[0] != 2 || ys[1] != 3 {
		t.Errorf("rows = %v, want [2 3]", ys)
	}
}

func TestFillEvenOddPartialHole(t *testing.T) {
	p := path.New()
	p.Rectangle(0, 0, 10, 10)
	p.Rectangle(4.5, 4, 2, 2)
	poly := polygon.FromPath(p, 0.1)
	dst := Coverage(poly, geom.EvenOdd, geom.AntialiasDefault, image.Rect(0, 0, 10, 10))

	if got := dst.AlphaAt(4, 4).A; got < 120 || got > 136 {
		t.Errorf("pixel half inside the hole = %d, want about 128", got)
	}
	if got := dst.AlphaAt(5, 5).A; got != 0 {
		t.Errorf("hole = %d, want 0", got)
	}
	if got := dst.AlphaAt(6, 5).A; got < 120 || got > 136 {
		t.Errorf("pixel half inside the hole = %d, want about 128", got)
	}
}

func BenchmarkAnalyticFillerCircle(b *testing.B) {
	p := path.New()
	p.Arc(128, 128, 100)
	poly := polygon.FromPath(p, 0.1)
	dst := image.NewAlpha(image.Rect(0, 0, 256, 256))
	for b.Loop() {
		Fill(dst, poly, geom.EvenOdd, geom.AntialiasDefault)
	}
}
