package clip

import (
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// translateExtents shifts c's extents unless it is the unbounded sentinel.
func translateExtents(c *Clip, tx, ty int) {
	if !geom.IsUnbounded(c.extents) {
		c.extents = c.extents.Add(image.Pt(tx, ty))
	}
}

// Translate shifts c by whole device pixels in place.
func (a *Arena) Translate(c *Clip, tx, ty int) *Clip {
	if c == nil || c.IsAllClipped() || (tx == 0 && ty == 0) {
		return c
	}
	fx, fy := fixed.I(tx), fixed.I(ty)
	for i := range c.boxes {
		c.boxes[i] = c.boxes[i].Translate(fx, fy)
	}
	translateExtents(c, tx, ty)
	c.region = c.region.Translate(tx, ty)

	if c.path == nil {
		return c
	}
	old := c.path
	c.path = nil
	c, err := a.copyPathWithTranslation(c, old, fx, fy)
	a.destroyPath(old)
	if err != nil {
		return a.degrade(c, "translate", err)
	}
	return c
}

// CopyWithTranslation returns a copy of c shifted by whole device pixels.
// c is not consumed.
func (a *Arena) CopyWithTranslation(c *Clip, tx, ty int) *Clip {
	if c == nil || c.IsAllClipped() {
		return c
	}
	if tx == 0 && ty == 0 {
		return a.Copy(c)
	}
	cp, err := a.create()
	if err != nil {
		return a.degrade(nil, "copy with translation", err)
	}
	fx, fy := fixed.I(tx), fixed.I(ty)
	if len(c.boxes) > 0 {
		cp.boxes = make([]geom.Box, len(c.boxes))
		for i, b := range c.boxes {
			cp.boxes[i] = b.Translate(fx, fy)
		}
	}
	cp.extents = c.extents
	translateExtents(cp, tx, ty)
	cp.region = c.region.Translate(tx, ty)
	cp.isRegion = c.isRegion

	if c.path == nil {
		return cp
	}
	cp, err = a.copyPathWithTranslation(cp, c.path, fx, fy)
	if err != nil {
		return a.degrade(cp, "copy with translation", err)
	}
	return cp
}

// Transform maps c through m in place. Whole-pixel translations shift the
// clip; any other matrix rebuilds it from transformed geometry.
func (a *Arena) Transform(c *Clip, m geom.Matrix) *Clip {
	if c == nil || c.IsAllClipped() {
		return c
	}
	if tx, ty, ok := m.IsIntegerTranslation(); ok {
		return a.Translate(c, tx, ty)
	}

	cp := a.Create()
	if len(c.boxes) > 0 {
		p := path.FromBoxes(c.boxes).Transform(m)
		cp = a.intersectPath(cp, p, geom.Winding, a.opts.Tolerance, geom.AntialiasDefault, true)
	}
	for _, n := range oldestFirst(c.path) {
		cp = a.intersectPath(cp, n.path.Transform(m), n.fillRule, n.tolerance, n.antialias, true)
		if cp.IsAllClipped() {
			break
		}
	}
	a.Destroy(c)
	return cp
}
