// Package region implements pixel-aligned regions: immutable sets of
// disjoint integer rectangles kept in y-x banded order.
package region

import (
	"image"
	"slices"

	"github.com/gogpu/ggclip/geom"
)

// Overlap classifies how a rectangle relates to a region.
type Overlap int

const (
	OverlapOut Overlap = iota
	OverlapIn
	OverlapPart
)

// Region is an immutable set of disjoint rectangles. A nil *Region is the
// empty region. Regions are shared by pointer; nothing mutates one after
// construction.
type Region struct {
	rects   []image.Rectangle
	extents image.Rectangle
}

// FromRectangles builds a region covering the union of rects.
func FromRectangles(rects ...image.Rectangle) *Region {
	boxes := make([]geom.Box, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			boxes = append(boxes, geom.FromRectangle(r.Canon()))
		}
	}
	return fromDisjoint(geom.Union(boxes))
}

// FromBoxes builds a region from boxes, rounding each one outward.
func FromBoxes(boxes []geom.Box) *Region {
	rects := make([]image.Rectangle, 0, len(boxes))
	for _, b := range boxes {
		if !b.IsEmpty() {
			rects = append(rects, b.RoundOut())
		}
	}
	return FromRectangles(rects...)
}

func fromDisjoint(boxes []geom.Box) *Region {
	r := &Region{rects: make([]image.Rectangle, len(boxes))}
	for i, b := range boxes {
		r.rects[i] = b.RoundOut()
		r.extents = r.extents.Union(r.rects[i])
	}
	return r
}

// IsEmpty reports whether the region covers nothing.
func (r *Region) IsEmpty() bool {
	return r == nil || len(r.rects) == 0
}

// NumRectangles returns the number of rectangles in the region.
func (r *Region) NumRectangles() int {
	if r == nil {
		return 0
	}
	return len(r.rects)
}

// Rectangle returns the i-th rectangle.
func (r *Region) Rectangle(i int) image.Rectangle {
	return r.rects[i]
}

// Rectangles returns a copy of the region's rectangles.
func (r *Region) Rectangles() []image.Rectangle {
	if r == nil {
		return nil
	}
	return slices.Clone(r.rects)
}

// Extents returns the bounding rectangle of the region.
func (r *Region) Extents() image.Rectangle {
	if r == nil {
		return image.Rectangle{}
	}
	return r.extents
}

// ContainsPoint reports whether pixel (x, y) is in the region.
func (r *Region) ContainsPoint(x, y int) bool {
	if r.IsEmpty() {
		return false
	}
	p := image.Pt(x, y)
	if !p.In(r.extents) {
		return false
	}
	for _, rect := range r.rects {
		if p.In(rect) {
			return true
		}
	}
	return false
}

// ContainsRectangle reports whether rect is wholly inside, partly inside
// or outside the region.
func (r *Region) ContainsRectangle(rect image.Rectangle) Overlap {
	if r.IsEmpty() || rect.Empty() || !rect.Overlaps(r.extents) {
		return OverlapOut
	}
	var covered int
	for _, x := range r.rects {
		covered += area(x.Intersect(rect))
	}
	switch {
	case covered == 0:
		return OverlapOut
	case covered == area(rect):
		return OverlapIn
	default:
		return OverlapPart
	}
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

// Translate returns the region shifted by (dx, dy).
func (r *Region) Translate(dx, dy int) *Region {
	if r == nil {
		return nil
	}
	d := image.Pt(dx, dy)
	t := &Region{rects: make([]image.Rectangle, len(r.rects)), extents: r.extents.Add(d)}
	for i, x := range r.rects {
		t.rects[i] = x.Add(d)
	}
	return t
}

// Intersect returns the intersection of r and o.
func (r *Region) Intersect(o *Region) *Region {
	if r.IsEmpty() || o.IsEmpty() {
		return &Region{}
	}
	return fromDisjoint(geom.Intersect(r.boxes(), o.boxes()))
}

// IntersectRectangle returns the part of r inside rect.
func (r *Region) IntersectRectangle(rect image.Rectangle) *Region {
	return r.Intersect(FromRectangles(rect))
}

func (r *Region) boxes() []geom.Box {
	out := make([]geom.Box, len(r.rects))
	for i, x := range r.rects {
		out[i] = geom.FromRectangle(x)
	}
	return out
}

// Equal reports whether r and o cover the same pixels. Both are kept in
// canonical banded form, so rectangle lists compare directly.
func (r *Region) Equal(o *Region) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return r.IsEmpty() == o.IsEmpty()
	}
	return slices.Equal(r.rects, o.rects)
}
