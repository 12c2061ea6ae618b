// Package raster converts polygons into A8 coverage masks.
//
// Anti-aliased non-zero fills go through golang.org/x/image/vector. Even-odd
// and non-antialiased fills use AnalyticFiller, which computes the same
// exact area coverage and applies the fill rule to the fractional winding.
package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/polygon"
)

// Fill writes the coverage of poly under rule into dst, replacing its
// contents over dst.Bounds(). dst bounds are in device space.
func Fill(dst *image.Alpha, poly *polygon.Polygon, rule geom.FillRule, aa geom.Antialias) {
	b := dst.Bounds()
	clear(dst.Pix)
	if b.Empty() || poly.IsEmpty() || !poly.Bounds().Overlaps(b) {
		return
	}
	if aa != geom.AntialiasNone && rule == geom.Winding {
		accumulate(dst, poly)
		return
	}
	analytic(dst, poly, rule, aa == geom.AntialiasNone)
}

// Coverage allocates an A8 mask over bounds and fills it.
func Coverage(poly *polygon.Polygon, rule geom.FillRule, aa geom.Antialias, bounds image.Rectangle) *image.Alpha {
	dst := image.NewAlpha(bounds)
	Fill(dst, poly, rule, aa)
	return dst
}

func accumulate(dst *image.Alpha, poly *polygon.Polygon) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Src
	ox, oy := float32(b.Min.X), float32(b.Min.Y)
	for _, e := range poly.Edges {
		x0, x1 := e.XAt(e.Top), e.XAt(e.Bottom)
		top := float32(geom.Float(e.Top)) - oy
		bottom := float32(geom.Float(e.Bottom)) - oy
		fx0 := float32(geom.Float(x0)) - ox
		fx1 := float32(geom.Float(x1)) - ox
		if e.Dir > 0 {
			z.MoveTo(fx0, top)
			z.LineTo(fx1, bottom)
		} else {
			z.MoveTo(fx1, bottom)
			z.LineTo(fx0, top)
		}
	}
	z.Draw(dst, b, image.Opaque, image.Point{})
}
