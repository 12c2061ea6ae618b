// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"cmp"
	"image"
	"math"
	"slices"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/polygon"
)

// lineEdge is a polygon edge in pixel space relative to the filled
// rectangle. y0 < y1 always holds; sign carries the winding direction.
type lineEdge struct {
	x0, y0 float32
	x1, y1 float32
	sign   float32
}

// xAt returns the x coordinate of the edge at y.
func (e *lineEdge) xAt(y float32) float32 {
	return e.x0 + (e.x1-e.x0)*(y-e.y0)/(e.y1-e.y0)
}

// buildEdges converts the edges of poly into lineEdges relative to origin,
// sorted by top. Edges outside the rows [0, height) are dropped.
func buildEdges(poly *polygon.Polygon, origin image.Point, height int) []lineEdge {
	ox, oy := float32(origin.X), float32(origin.Y)
	h := float32(height)
	edges := make([]lineEdge, 0, len(poly.Edges))
	for _, e := range poly.Edges {
		y0 := float32(geom.Float(e.Top)) - oy
		y1 := float32(geom.Float(e.Bottom)) - oy
		if y0 >= y1 || y1 <= 0 || y0 >= h {
			continue
		}
		edges = append(edges, lineEdge{
			x0:   float32(e.XAtFloat(geom.Float(e.Top))) - ox,
			y0:   y0,
			x1:   float32(e.XAtFloat(geom.Float(e.Bottom))) - ox,
			y1:   y1,
			sign: float32(e.Dir),
		})
	}
	slices.SortFunc(edges, func(a, b lineEdge) int { return cmp.Compare(a.y0, b.y0) })
	return edges
}

// AnalyticFiller computes per-pixel coverage from the exact area of the
// shape inside each pixel.
//
// Each edge crossing a pixel row contributes the trapezoid between itself
// and the right side of every pixel it passes through; pixels further right
// receive its full height. The summed signed area is the fractional winding
// number, which the fill rule maps to coverage.
type AnalyticFiller struct {
	width, height int

	edges  []lineEdge
	active []int

	// winding accumulates fractional winding numbers for the current row.
	winding []float32

	// coverage is winding mapped through the fill rule, in [0, 1].
	coverage []float32
}

// NewAnalyticFiller creates a filler for a width x height rectangle.
func NewAnalyticFiller(width, height int) *AnalyticFiller {
	return &AnalyticFiller{
		width:    width,
		height:   height,
		winding:  make([]float32, width),
		coverage: make([]float32, width),
	}
}

// Fill rasterizes poly with the rectangle's origin at device point origin.
// row is called for each row touched by an edge with the coverage of that
// row; the slice is reused across calls.
func (af *AnalyticFiller) Fill(poly *polygon.Polygon, origin image.Point, rule geom.FillRule, row func(y int, coverage []float32)) {
	af.edges = buildEdges(poly, origin, af.height)
	af.active = af.active[:0]
	next := 0
	for y := range af.height {
		top, bottom := float32(y), float32(y+1)
		for ; next < len(af.edges) && af.edges[next].y0 < bottom; next++ {
			af.active = append(af.active, next)
		}
		af.active = slices.DeleteFunc(af.active, func(i int) bool { return af.edges[i].y1 <= top })
		if len(af.active) == 0 {
			if next == len(af.edges) {
				return
			}
			continue
		}
		clear(af.winding)
		for _, i := range af.active {
			af.accumulate(&af.edges[i], top, bottom)
		}
		af.applyFillRule(rule)
		row(y, af.coverage)
	}
}

// accumulate adds the contribution of e within the row [yPixel, yPixelEnd).
func (af *AnalyticFiller) accumulate(e *lineEdge, yPixel, yPixelEnd float32) {
	yTop := max(yPixel, e.y0)
	yBot := min(yPixelEnd, e.y1)
	lineDY := yBot - yTop
	if lineDY <= 0 {
		return
	}
	sign := e.sign

	lineTopX := e.xAt(yTop)
	lineBottomX := e.xAt(yBot)
	lineDX := lineBottomX - lineTopX

	var ySlope float32
	if lineDX == 0 {
		ySlope = 1e10
	} else {
		ySlope = lineDY / lineDX
	}
	xSlope := 1 / ySlope

	widthF := float32(af.width)
	minLineX, maxLineX := min(lineTopX, lineBottomX), max(lineTopX, lineBottomX)
	if minLineX >= widthF {
		return
	}
	if maxLineX < 0 {
		full := lineDY * sign
		for x := range af.winding {
			af.winding[x] += full
		}
		return
	}

	acc := offscreenLeftWinding(lineTopX, lineBottomX, yTop, yBot, ySlope, sign)

	xStart := max(int(minLineX), 0)
	xEnd := min(int(maxLineX)+2, af.width)
	for x := 0; x < xStart; x++ {
		af.winding[x] += acc
	}
	for x := xStart; x < xEnd; x++ {
		pxLeftX := float32(x)
		pxRightX := pxLeftX + 1

		leftY := clamp32(yTop+(pxLeftX-lineTopX)*ySlope, yTop, yBot)
		rightY := clamp32(yTop+(pxRightX-lineTopX)*ySlope, yTop, yBot)
		leftYX := lineTopX + (leftY-yTop)*xSlope
		rightYX := lineTopX + (rightY-yTop)*xSlope

		pixelH := rightY - leftY
		if pixelH < 0 {
			pixelH = -pixelH
		}
		// Area between the edge and the pixel's right side. Values outside
		// [0, 1] are expected; the fill rule clamps.
		area := 0.5 * pixelH * (2*pxRightX - rightYX - leftYX)
		af.winding[x] += area*sign + acc
		acc += pixelH * sign
	}
	for x := xEnd; x < af.width; x++ {
		af.winding[x] += acc
	}
}

// offscreenLeftWinding returns the winding contributed by the part of an
// edge left of x = 0.
func offscreenLeftWinding(lineTopX, lineBottomX, yTop, yBot, ySlope, sign float32) float32 {
	if lineTopX >= 0 && lineBottomX >= 0 {
		return 0
	}
	y0 := clamp32(yTop-lineTopX*ySlope, yTop, yBot)
	var h float32
	if lineTopX < 0 {
		h = y0 - yTop
	} else {
		h = yBot - y0
	}
	if h < 0 {
		h = -h
	}
	return h * sign
}

func (af *AnalyticFiller) applyFillRule(rule geom.FillRule) {
	switch rule {
	case geom.EvenOdd:
		for i, w := range af.winding {
			w = float32(math.Mod(math.Abs(float64(w)), 2))
			if w > 1 {
				w = 2 - w
			}
			af.coverage[i] = w
		}
	default:
		for i, w := range af.winding {
			if w < 0 {
				w = -w
			}
			af.coverage[i] = clamp32(w, 0, 1)
		}
	}
}

func clamp32(v, minV, maxV float32) float32 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// analytic fills dst through an AnalyticFiller. Without antialiasing a
// pixel is set when more than half of it is covered.
func analytic(dst *image.Alpha, poly *polygon.Polygon, rule geom.FillRule, aliased bool) {
	b := dst.Bounds()
	af := NewAnalyticFiller(b.Dx(), b.Dy())
	af.Fill(poly, b.Min, rule, func(y int, coverage []float32) {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+len(coverage)]
		for x, c := range coverage {
			switch {
			case aliased && c > 0.5:
				row[x] = 0xff
			case aliased:
				row[x] = 0
			default:
				row[x] = uint8(c*255 + 0.5)
			}
		}
	})
}
