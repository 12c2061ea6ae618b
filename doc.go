// Package ggclip is the clip-and-composite core of a 2D vector graphics
// library.
//
// # Overview
//
// A clip describes what part of a device surface is visible. It is kept in
// the cheapest representation that is still exact:
//
//   - a set of disjoint fixed-point boxes (package geom),
//   - a pixel-aligned region cached from those boxes (package region),
//   - a residual chain of arbitrary paths that could not be turned into
//     boxes.
//
// Package clip intersects clips with boxes, rectangles, paths and other
// clips, reduces them for a given composite operation, converts them to
// polygons or regions, and materializes them as A8 coverage surfaces when a
// compositor cannot consume them directly. Package composite computes the
// device rectangles an operation can touch. Package gstate ties both
// together behind save/restore/clip/paint/fill/stroke/mask/show_glyphs.
//
// # Quick Start
//
//	arena := clip.NewArena()
//	var c *clip.Clip // nil means unclipped
//	c = arena.IntersectRectangle(c, image.Rect(0, 0, 100, 100))
//
//	p := path.New()
//	p.Arc(50, 50, 40) // circles stay as residual paths
//	c = arena.IntersectPath(c, p, geom.Winding, 0.1, geom.AntialiasDefault)
//	defer arena.Destroy(c)
//
//	mask, off, err := arena.Surface(c, nil)
//
// # Logging
//
// ggclip is silent by default. Use SetLogger to route diagnostics to any
// slog handler.
package ggclip
