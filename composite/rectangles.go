// Package composite computes the device rectangles a drawing operation
// can affect.
//
// For every operation the destination, source and mask extents are
// combined with the clip into two rectangles: Bounded, the area the
// operator can change when it is bounded by its inputs, and Unbounded,
// the area it may touch at all (the whole clip for unbounded operators).
// The clip is reduced to what matters inside that area.
package composite

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/ggclip/clip"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/glyph"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/surface"
)

// ErrNothingToDo is returned when an operation cannot change any pixel.
var ErrNothingToDo = errors.New("composite: nothing to do")

// Rectangles holds the extents of one composite operation. A Rectangles
// returned by an Init function owns a reduced clip and must be released
// with Fini.
type Rectangles struct {
	Destination image.Rectangle
	Source      image.Rectangle
	Mask        image.Rectangle

	// Bounded is the area the operation can change when it is bounded by
	// its source or mask; Unbounded is the area it may change at all.
	Bounded   image.Rectangle
	Unbounded image.Rectangle
	IsBounded surface.Bound

	Op surface.Operator

	// SourcePattern and MaskPattern are reduced copies of the inputs. A
	// nil MaskPattern stands for an opaque mask.
	SourcePattern pattern.Pattern
	MaskPattern   pattern.Pattern

	// Pattern-space areas read from non-solid patterns.
	SourceSampleArea image.Rectangle
	MaskSampleArea   image.Rectangle

	// Clip is the operation's clip reduced to the bounded area.
	Clip *clip.Clip

	arena *clip.Arena
}

// Compile-time interface check.
var _ clip.Composite = (*Rectangles)(nil)

// ClipRectangle returns the rectangle the clip is reduced to.
func (r *Rectangles) ClipRectangle() image.Rectangle {
	if r.IsBounded != 0 {
		return r.Bounded
	}
	return r.Unbounded
}

// init fills the rectangles shared by every operation. It reports false
// when nothing can be drawn.
func (r *Rectangles) init(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src pattern.Pattern, c *clip.Clip) bool {
	r.arena = a
	if c.IsAllClipped() {
		return false
	}
	r.Op = op
	r.Destination = dst.Extents()

	r.Unbounded = r.Destination
	if c != nil && !geom.IntersectRect(&r.Unbounded, c.Extents()) {
		return false
	}

	r.Bounded = r.Unbounded
	r.IsBounded = op.BoundedBy()

	r.SourcePattern = pattern.Reduce(src)
	r.Source = r.SourcePattern.Extents()
	if r.IsBounded&surface.BoundBySource != 0 {
		if !geom.IntersectRect(&r.Bounded, r.Source) {
			return false
		}
	}
	return true
}

// reduceClip replaces the owned clip by c reduced for r.
func (r *Rectangles) reduceClip(c *clip.Clip) {
	old := r.Clip
	r.Clip = r.arena.ReduceForComposite(c, r)
	if old != nil && old != r.Clip {
		r.arena.Destroy(old)
	}
}

// sampleAreas updates the pattern sample areas from Bounded. It reports
// false when a mask pattern reads no pixels.
func (r *Rectangles) sampleAreas() bool {
	if _, solid := r.SourcePattern.(*pattern.Solid); !solid {
		r.SourceSampleArea = r.SourcePattern.SampledArea(r.Bounded)
	}
	if r.MaskPattern == nil {
		return true
	}
	if _, solid := r.MaskPattern.(*pattern.Solid); solid {
		return true
	}
	r.MaskSampleArea = r.MaskPattern.SampledArea(r.Bounded)
	return !r.MaskSampleArea.Empty()
}

// boundUnbounded narrows Unbounded after Bounded or Mask changed.
func (r *Rectangles) boundUnbounded() bool {
	switch {
	case r.IsBounded == surface.BoundByMask|surface.BoundBySource:
		r.Unbounded = r.Bounded
	case r.IsBounded&surface.BoundByMask != 0:
		return geom.IntersectRect(&r.Unbounded, r.Mask)
	}
	return true
}

// intersect combines the mask rectangle and the clip.
func (r *Rectangles) intersect(c *clip.Clip) error {
	byMask := r.IsBounded&surface.BoundByMask != 0
	if !geom.IntersectRect(&r.Bounded, r.Mask) && byMask {
		return ErrNothingToDo
	}
	if !r.boundUnbounded() {
		return ErrNothingToDo
	}

	r.reduceClip(c)
	if r.Clip.IsAllClipped() {
		return ErrNothingToDo
	}
	if !geom.IntersectRect(&r.Unbounded, r.Clip.Extents()) {
		return ErrNothingToDo
	}
	if !geom.IntersectRect(&r.Bounded, r.Clip.Extents()) && byMask {
		return ErrNothingToDo
	}
	if !r.sampleAreas() {
		return ErrNothingToDo
	}
	return nil
}

// finish releases r when err is set.
func (r *Rectangles) finish(err error) (*Rectangles, error) {
	if err != nil {
		r.Fini()
		return nil, err
	}
	return r, nil
}

// InitPaint computes the rectangles for painting src through c.
func InitPaint(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src pattern.Pattern, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.Mask = r.Destination

	r.reduceClip(c)
	if r.Clip.IsAllClipped() {
		return r.finish(ErrNothingToDo)
	}
	if !geom.IntersectRect(&r.Unbounded, r.Clip.Extents()) {
		return r.finish(ErrNothingToDo)
	}
	r.sampleAreas()
	return r, nil
}

// InitMask computes the rectangles for compositing src through mask.
func InitMask(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src, mask pattern.Pattern, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.MaskPattern = pattern.Reduce(mask)
	r.Mask = r.MaskPattern.Extents()
	return r.finish(r.intersect(c))
}

// InitStroke computes the rectangles for stroking p with style under ctm.
func InitStroke(a *clip.Arena, dst surface.Surface, op surface.Operator, src pattern.Pattern,
	p *path.Path, style path.StrokeStyle, ctm geom.Matrix, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.Mask = p.ApproximateStrokeExtents(style, ctm)
	return r.finish(r.intersect(c))
}

// InitFill computes the rectangles for filling p.
func InitFill(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src pattern.Pattern, p *path.Path, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.Mask = p.ApproximateFillExtents()
	return r.finish(r.intersect(c))
}

// InitPolygon computes the rectangles for filling poly.
func InitPolygon(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src pattern.Pattern, poly *polygon.Polygon, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.Mask = poly.Extents().RoundOut()
	return r.finish(r.intersect(c))
}

// InitBoxes computes the rectangles for filling boxes.
func InitBoxes(a *clip.Arena, dst surface.Surface, op surface.Operator,
	src pattern.Pattern, boxes []geom.Box, c *clip.Clip) (*Rectangles, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		return r.finish(ErrNothingToDo)
	}
	r.Mask = geom.Extents(boxes).RoundOut()
	return r.finish(r.intersect(c))
}

// InitGlyphs computes the rectangles for showing glyphs and reports
// whether their ink overlaps. Overlap is irrelevant, and reported false,
// for aliased glyphs in an opaque solid colour.
func InitGlyphs(a *clip.Arena, dst surface.Surface, op surface.Operator, src pattern.Pattern,
	face glyph.Extenter, glyphs []glyph.Glyph, c *clip.Clip) (*Rectangles, bool, error) {
	r := &Rectangles{}
	if !r.init(a, dst, op, src, c) {
		_, err := r.finish(ErrNothingToDo)
		return nil, false, err
	}

	mask, overlap, err := glyph.InkExtents(face, glyphs)
	if err != nil {
		_, err = r.finish(fmt.Errorf("composite: glyph extents: %w", err))
		return nil, false, err
	}
	r.Mask = mask
	if overlap && face.Antialias() == geom.AntialiasNone {
		if s, ok := r.SourcePattern.(*pattern.Solid); ok && s.IsOpaque() {
			overlap = false
		}
	}

	if err := r.intersect(c); err != nil {
		_, err = r.finish(err)
		return nil, false, err
	}
	return r, overlap, nil
}

// narrow intersects *rect with the rounded-out box and recomputes the
// dependent rectangles and the clip. bound is the boundedness bit of the
// input *rect describes.
func (r *Rectangles) narrow(rect *image.Rectangle, box geom.Box, bound surface.Bound) error {
	ri := box.RoundOut()
	if ri == *rect {
		return nil
	}
	geom.IntersectRect(rect, ri)

	prev := r.Bounded
	if !geom.IntersectRect(&r.Bounded, *rect) && r.IsBounded&bound != 0 {
		return ErrNothingToDo
	}
	if prev == r.Bounded {
		return nil
	}
	if !r.boundUnbounded() {
		return ErrNothingToDo
	}

	r.reduceClip(r.Clip)
	if r.Clip.IsAllClipped() {
		return ErrNothingToDo
	}
	if !geom.IntersectRect(&r.Unbounded, r.Clip.Extents()) {
		return ErrNothingToDo
	}
	if !r.sampleAreas() {
		return ErrNothingToDo
	}
	return nil
}

// IntersectSourceExtents narrows the source to box, once the exact extents
// of the source are known.
func (r *Rectangles) IntersectSourceExtents(box geom.Box) error {
	return r.narrow(&r.Source, box, surface.BoundBySource)
}

// IntersectMaskExtents narrows the mask to box, once the exact extents of
// the mask are known.
func (r *Rectangles) IntersectMaskExtents(box geom.Box) error {
	return r.narrow(&r.Mask, box, surface.BoundByMask)
}

// CanReduceClip reports whether c can be ignored for the operation: it
// contains every pixel the operation may draw.
func (r *Rectangles) CanReduceClip(c *clip.Clip) bool {
	if c == nil {
		return true
	}
	extents := r.Destination
	if r.IsBounded&surface.BoundBySource != 0 {
		geom.IntersectRect(&extents, r.Source)
	}
	if r.IsBounded&surface.BoundByMask != 0 {
		geom.IntersectRect(&extents, r.Mask)
	}
	return clip.ContainsBox(c, geom.FromRectangle(extents))
}

// AddToDamage adds the clip boxes of the operation to damage.
func (r *Rectangles) AddToDamage(damage *geom.Boxes) {
	for _, b := range r.Clip.Boxes() {
		damage.Add(geom.AntialiasNone, b)
	}
}

// Fini releases the reduced clip. It is safe to call more than once.
func (r *Rectangles) Fini() {
	if r == nil || r.Clip == nil {
		return
	}
	r.arena.Destroy(r.Clip)
	r.Clip = nil
}
