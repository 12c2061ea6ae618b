package geom

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

// Integer limits of device space. Every integer in the range converts to
// 26.6 fixed point without overflow.
const (
	MinInt = -(1 << 25)
	MaxInt = 1<<25 - 1
)

// Unbounded is the rectangle used for "no clip": it covers all of the
// representable device space.
var Unbounded = image.Rect(MinInt, MinInt, MaxInt, MaxInt)

// IsUnbounded reports whether r is the unbounded sentinel.
func IsUnbounded(r image.Rectangle) bool {
	return r == Unbounded
}

// Fixed converts a device coordinate to 26.6 fixed point, rounding to
// the nearest representable value.
func Fixed(v float64) fixed.Int26_6 {
	v = math.Round(v * 64)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return fixed.Int26_6(v)
}

// Float converts a 26.6 value back to float64.
func Float(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Pt builds a fixed point from device coordinates.
func Pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: Fixed(x), Y: Fixed(y)}
}

// Box is an axis-aligned rectangle in fixed-point device space. Min is
// inclusive and Max exclusive.
type Box struct {
	Min, Max fixed.Point26_6
}

// B builds a box from device coordinates.
func B(x0, y0, x1, y1 float64) Box {
	return Box{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// FromRectangle converts an integer rectangle to a box.
func FromRectangle(r image.Rectangle) Box {
	return Box{
		Min: fixed.Point26_6{X: fixed.I(r.Min.X), Y: fixed.I(r.Min.Y)},
		Max: fixed.Point26_6{X: fixed.I(r.Max.X), Y: fixed.I(r.Max.Y)},
	}
}

// FromRectangle26_6 converts an x/image fixed rectangle to a box.
func FromRectangle26_6(r fixed.Rectangle26_6) Box {
	return Box{Min: r.Min, Max: r.Max}
}

// Rectangle26_6 returns b as an x/image fixed rectangle.
func (b Box) Rectangle26_6() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: b.Min, Max: b.Max}
}

// IsEmpty reports whether b has no area.
func (b Box) IsEmpty() bool {
	return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y
}

// RoundOut returns the smallest integer rectangle containing b.
func (b Box) RoundOut() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: b.Min.X.Floor(), Y: b.Min.Y.Floor()},
		Max: image.Point{X: b.Max.X.Ceil(), Y: b.Max.Y.Ceil()},
	}
}

// RoundDown snaps every coordinate to the nearest pixel boundary, halves
// rounding down. This is how non-antialiased geometry is sampled.
func (b Box) RoundDown() Box {
	return Box{
		Min: fixed.Point26_6{X: roundDown(b.Min.X), Y: roundDown(b.Min.Y)},
		Max: fixed.Point26_6{X: roundDown(b.Max.X), Y: roundDown(b.Max.Y)},
	}
}

func roundDown(v fixed.Int26_6) fixed.Int26_6 {
	return (v + 31) &^ 63
}

// IsPixelAligned reports whether every coordinate of b is an integer.
func (b Box) IsPixelAligned() bool {
	return (b.Min.X|b.Min.Y|b.Max.X|b.Max.Y)&63 == 0
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y &&
		b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y
}

// ContainsPoint reports whether p is inside b using the half-open
// convention: left and top edges are inside, right and bottom are not.
func (b Box) ContainsPoint(p fixed.Point26_6) bool {
	return b.Min.X <= p.X && p.X < b.Max.X &&
		b.Min.Y <= p.Y && p.Y < b.Max.Y
}

// Intersect returns the overlap of b and o. The result may be empty.
func (b Box) Intersect(o Box) Box {
	r := b
	if r.Min.X < o.Min.X {
		r.Min.X = o.Min.X
	}
	if r.Min.Y < o.Min.Y {
		r.Min.Y = o.Min.Y
	}
	if r.Max.X > o.Max.X {
		r.Max.X = o.Max.X
	}
	if r.Max.Y > o.Max.Y {
		r.Max.Y = o.Max.Y
	}
	return r
}

// Overlaps reports whether b and o share any area.
func (b Box) Overlaps(o Box) bool {
	return !b.Intersect(o).IsEmpty()
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	r := b
	if o.Min.X < r.Min.X {
		r.Min.X = o.Min.X
	}
	if o.Min.Y < r.Min.Y {
		r.Min.Y = o.Min.Y
	}
	if o.Max.X > r.Max.X {
		r.Max.X = o.Max.X
	}
	if o.Max.Y > r.Max.Y {
		r.Max.Y = o.Max.Y
	}
	return r
}

// Translate shifts b by (dx, dy).
func (b Box) Translate(dx, dy fixed.Int26_6) Box {
	return Box{
		Min: fixed.Point26_6{X: b.Min.X + dx, Y: b.Min.Y + dy},
		Max: fixed.Point26_6{X: b.Max.X + dx, Y: b.Max.Y + dy},
	}
}

// Center returns the midpoint of b.
func (b Box) Center() fixed.Point26_6 {
	return fixed.Point26_6{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

func (b Box) String() string {
	return fmt.Sprintf("(%v,%v)-(%v,%v)",
		Float(b.Min.X), Float(b.Min.Y), Float(b.Max.X), Float(b.Max.Y))
}

// IntersectRect intersects r with other in place and reports whether any
// area remains. An empty result is normalized to the zero rectangle.
func IntersectRect(r *image.Rectangle, other image.Rectangle) bool {
	*r = r.Intersect(other)
	return !r.Empty()
}
