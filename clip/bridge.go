package clip

import (
	"fmt"
	"image"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/region"
)

// uniformAntialias reports whether every residual path of c uses the same
// antialias mode.
func (c *Clip) uniformAntialias() bool {
	aa := c.path.antialias
	for n := c.path.prev; n != nil; n = n.prev {
		if n.antialias != aa {
			return false
		}
	}
	return true
}

// IsPolygon reports whether Polygon can convert c. There is no polygon
// for the unbounded nil clip.
func IsPolygon(c *Clip) bool {
	switch {
	case c.IsAllClipped():
		return true
	case c == nil:
		return false
	case c.path == nil:
		return true
	}
	return c.uniformAntialias()
}

// Polygon converts c to a polygon with the fill rule and antialias mode
// it must be rasterized with. It returns ErrUnsupported when the residual
// paths mix antialias modes.
func Polygon(c *Clip) (*polygon.Polygon, geom.FillRule, geom.Antialias, error) {
	if c.IsAllClipped() {
		return polygon.New(), geom.Winding, geom.AntialiasDefault, nil
	}
	if c == nil {
		return nil, geom.Winding, geom.AntialiasDefault, fmt.Errorf("%w: unbounded clip", ErrUnsupported)
	}
	if c.path == nil {
		if len(c.boxes) == 0 {
			return polygon.FromBoxes([]geom.Box{geom.FromRectangle(c.extents)}),
				geom.Winding, geom.AntialiasDefault, nil
		}
		return polygon.FromBoxes(c.boxes), geom.Winding, geom.AntialiasDefault, nil
	}
	if !c.uniformAntialias() {
		return nil, geom.Winding, geom.AntialiasDefault, fmt.Errorf("%w: mixed antialias modes", ErrUnsupported)
	}

	n := c.path
	rule, aa := n.fillRule, n.antialias
	poly := polygon.FromPath(n.path, n.tolerance, c.boxes...)
	if len(c.boxes) > 0 {
		poly = poly.IntersectBoxes(c.boxes, rule)
		rule = geom.Winding
	}
	for n = n.prev; n != nil; n = n.prev {
		next := polygon.FromPath(n.path, n.tolerance)
		poly = poly.Intersect(next, rule, n.fillRule)
		rule = geom.Winding
	}
	return poly, rule, aa, nil
}

// extractRegion caches the rounded-out region of c's boxes and records
// whether it is exact.
func (c *Clip) extractRegion() {
	if len(c.boxes) == 0 {
		return
	}
	exact := c.path == nil
	rects := make([]image.Rectangle, len(c.boxes))
	for i, b := range c.boxes {
		exact = exact && b.IsPixelAligned()
		rects[i] = b.RoundOut()
	}
	c.isRegion = exact
	c.region = region.FromRectangles(rects...)
}

// Region returns the pixel region of c's boxes, rounded out. A nil clip
// yields the unbounded region and the all-clipped clip an empty one.
func (c *Clip) Region() *region.Region {
	switch {
	case c == nil:
		return region.FromRectangles(geom.Unbounded)
	case c.IsAllClipped():
		return region.FromRectangles()
	case len(c.boxes) == 0:
		return region.FromRectangles(c.extents)
	}
	if c.region == nil {
		c.extractRegion()
	}
	return c.region
}

// IsRegion reports whether c is exactly its pixel region.
func (c *Clip) IsRegion() bool {
	switch {
	case c == nil, c.isRegion:
		return true
	case c.path != nil:
		return false
	case len(c.boxes) == 0:
		return true
	}
	if c.region == nil {
		c.extractRegion()
	}
	return c.isRegion
}

// RectangleList returns the integer rectangles making up c. The
// all-clipped clip yields an empty list; clips that are not pixel regions
// return ErrNotRepresentable.
func RectangleList(c *Clip) ([]image.Rectangle, error) {
	switch {
	case c.IsAllClipped():
		return nil, nil
	case c == nil:
		return nil, fmt.Errorf("%w: unbounded clip", ErrNotRepresentable)
	case !c.IsRegion():
		return nil, ErrNotRepresentable
	}
	return c.Region().Rectangles(), nil
}
