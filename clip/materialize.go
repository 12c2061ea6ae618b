package clip

import (
	"fmt"
	"image"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/surface"
)

// copyBoxes returns a path-free copy of c: its boxes and extents only.
func (a *Arena) copyBoxes(c *Clip) (*Clip, error) {
	cp, err := a.create()
	if err != nil {
		return nil, err
	}
	cp.boxes = append([]geom.Box(nil), c.boxes...)
	cp.extents = c.extents
	return cp, nil
}

// regionClip returns the clip the residual paths of c are filled under:
// c's boxes when they form a pixel region, else their rounded-out region.
func (a *Arena) regionClip(c *Clip) (*Clip, error) {
	rc, err := a.copyBoxes(c)
	if err != nil {
		return nil, err
	}
	if rc.IsRegion() {
		return rc, nil
	}
	out := a.CopyRegion(rc)
	a.Destroy(rc)
	if out.IsAllClipped() {
		return nil, fmt.Errorf("clip: region copy failed")
	}
	return out, nil
}

// Surface renders the coverage of c into a new A8 surface covering c's
// extents, and returns the surface with its device offset. target, when
// not nil, is the surface the coverage will be used with; a target in
// error fails the call.
//
// On failure the returned surface carries the error and must not be used
// as a clip mask.
func (a *Arena) Surface(c *Clip, target surface.Surface) (*surface.ImageSurface, image.Point, error) {
	s, err := a.surface(c, target)
	if err != nil {
		a.log().Warn("clip: surface materialization failed", "err", err)
		return surface.NewInError(err), image.Point{}, err
	}
	return s, c.extents.Min, nil
}

func (a *Arena) surface(c *Clip, target surface.Surface) (*surface.ImageSurface, error) {
	switch {
	case target != nil && target.Err() != nil:
		return nil, target.Err()
	case c == nil || geom.IsUnbounded(c.extents):
		return nil, fmt.Errorf("%w: unbounded clip", ErrUnsupported)
	case c.IsAllClipped():
		return nil, fmt.Errorf("%w: all-clipped", ErrUnsupported)
	}

	s, err := surface.NewScratch(c.extents, len(c.boxes) == 0)
	if err != nil {
		return nil, err
	}
	if len(c.boxes) > 0 {
		// Boxes are disjoint, so adding them forms their union.
		if err := s.FillBoxes(surface.OperatorAdd, pattern.Opaque(), c.boxes, nil); err != nil {
			return nil, err
		}
	}
	if c.path == nil {
		return s, nil
	}

	rc, err := a.regionClip(c)
	if err != nil {
		return nil, err
	}
	defer a.Destroy(rc)
	for n := c.path; n != nil; n = n.prev {
		err := s.Fill(surface.OperatorIn, pattern.Opaque(), n.path, n.fillRule, n.tolerance, n.antialias, rc)
		if err != nil {
			return nil, fmt.Errorf("clip: fill clip path: %w", err)
		}
	}
	return s, nil
}

// Image renders the coverage of c over the device rectangle extents.
func (a *Arena) Image(c *Clip, target surface.Surface, extents image.Rectangle) (*surface.ImageSurface, error) {
	if target != nil && target.Err() != nil {
		return surface.NewInError(target.Err()), target.Err()
	}
	s, err := surface.NewScratch(extents, true)
	if err == nil {
		err = a.CombineWithSurface(c, s, 0, 0)
	}
	if err != nil {
		a.log().Warn("clip: image materialization failed", "err", err)
		return surface.NewInError(err), err
	}
	return s, nil
}

// CombineWithSurface multiplies the contents of dst by the coverage of
// c. Pixel (x, y) of dst is device pixel (x+dstX, y+dstY).
func (a *Arena) CombineWithSurface(c *Clip, dst *surface.ImageSurface, dstX, dstY int) error {
	switch {
	case c == nil:
		return nil
	case c.IsAllClipped():
		return dst.Paint(surface.OperatorClear, pattern.Opaque(), nil)
	}

	cp := a.CopyWithTranslation(c, -dstX, -dstY)
	if cp.IsAllClipped() {
		return fmt.Errorf("clip: translated copy failed")
	}
	chain := cp.path
	cp.path = nil
	cp.region = nil
	cp.isRegion = false
	defer func() {
		cp.path = chain
		a.Destroy(cp)
	}()

	if len(cp.boxes) > 0 {
		if err := dst.FillBoxes(surface.OperatorIn, pattern.Opaque(), cp.boxes, nil); err != nil {
			return err
		}
	}

	var rc surface.Clip
	if cp.IsRegion() {
		rc = cp
	}
	for n := chain; n != nil; n = n.prev {
		if err := dst.Fill(surface.OperatorIn, pattern.Opaque(), n.path, n.fillRule, n.tolerance, n.antialias, rc); err != nil {
			return err
		}
	}
	return nil
}
