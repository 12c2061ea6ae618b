package clip

import (
	"errors"
	"image"
	"slices"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/region"
	"github.com/gogpu/ggclip/surface"
)

var (
	// ErrUnsupported is returned when a clip cannot be converted to the
	// requested representation, such as a polygon for a chain mixing
	// antialias modes.
	ErrUnsupported = errors.New("clip: unsupported conversion")

	// ErrNotRepresentable is returned when a clip is not a pixel region.
	ErrNotRepresentable = errors.New("clip: not representable as rectangles")
)

// Clip is a device-space clip. See the package documentation for the
// ownership rules.
type Clip struct {
	arena    *Arena
	extents  image.Rectangle
	path     *clipPath
	boxes    []geom.Box
	region   *region.Region
	isRegion bool
}

// allClipped is the shared clip through which nothing is visible.
var allClipped = &Clip{}

// Compile-time interface check.
var _ surface.CoverageClip = (*Clip)(nil)

// IsAllClipped reports whether nothing is visible through c.
func (c *Clip) IsAllClipped() bool {
	return c == allClipped
}

// Extents returns the device rectangle c may leave visible: unbounded for
// nil and empty for the all-clipped clip.
func (c *Clip) Extents() image.Rectangle {
	switch {
	case c == nil:
		return geom.Unbounded
	case c.IsAllClipped():
		return image.Rectangle{}
	}
	return c.extents
}

// Boxes returns the reduced boxes of c. The slice must not be modified.
func (c *Clip) Boxes() []geom.Box {
	if c == nil {
		return nil
	}
	return c.boxes
}

// NumBoxes returns the number of reduced boxes.
func (c *Clip) NumBoxes() int {
	return len(c.Boxes())
}

// HasPath reports whether c carries residual clip paths.
func (c *Clip) HasPath() bool {
	return c != nil && c.path != nil
}

// Equal reports whether a and b clip identically: same boxes and
// equivalent path chains.
func Equal(a, b *Clip) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.IsAllClipped() || b.IsAllClipped() {
		return false
	}
	if !slices.Equal(a.boxes, b.boxes) {
		return false
	}
	pa, pb := a.path, b.path
	for pa != nil && pb != nil {
		if pa == pb {
			return true
		}
		if pa.antialias != pb.antialias || pa.tolerance != pb.tolerance ||
			pa.fillRule != pb.fillRule || !pa.path.Equal(pb.path) {
			return false
		}
		pa, pb = pa.prev, pb.prev
	}
	return pa == nil && pb == nil
}

// ContainsBox reports whether box lies wholly inside c. Clips with
// residual paths never claim containment.
func ContainsBox(c *Clip, box geom.Box) bool {
	return contains(c, box.RoundOut(), box)
}

// ContainsRectangle reports whether r lies wholly inside c.
func ContainsRectangle(c *Clip, r image.Rectangle) bool {
	return contains(c, r, geom.FromRectangle(r))
}

func contains(c *Clip, r image.Rectangle, box geom.Box) bool {
	switch {
	case c == nil:
		return true
	case c.IsAllClipped(), c.path != nil:
		return false
	case !r.In(c.extents):
		return false
	case len(c.boxes) == 0:
		return true
	}
	for _, b := range c.boxes {
		if b.Contains(box) {
			return true
		}
	}
	return false
}

// Composite is the part of a composite operation a clip needs: the
// device rectangle the operation can modify.
type Composite interface {
	ClipRectangle() image.Rectangle
}

// ContainsExtents reports whether c contains the rectangle the composite
// operation touches.
func ContainsExtents(c *Clip, op Composite) bool {
	return ContainsRectangle(c, op.ClipRectangle())
}

// Coverage renders the coverage of c over bounds as an A8 image.
func (c *Clip) Coverage(bounds image.Rectangle) (*image.Alpha, error) {
	if c == nil || c.IsAllClipped() {
		img := image.NewAlpha(bounds)
		if c == nil {
			for i := range img.Pix {
				img.Pix[i] = 0xff
			}
		}
		return img, nil
	}
	s, err := c.arena.Image(c, nil, bounds)
	if err != nil {
		return nil, err
	}
	return s.Image(), nil
}
