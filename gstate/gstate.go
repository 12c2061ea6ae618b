// Package gstate is a drawing state over a surface: a current path, a
// transformation matrix, paint settings and a clip, with Save and Restore.
//
// Coordinates passed to path construction are user space and are mapped
// to device space through the current transformation matrix (CTM) as the
// path is built. Clipping happens in device space and is unaffected by
// later CTM changes.
//
// Every drawing call computes the composite rectangles of the operation,
// skipping operations that cannot change a pixel, and hands the reduced
// clip to a Compositor.
//
// A State is not safe for concurrent use.
package gstate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/ggclip"
	"github.com/gogpu/ggclip/clip"
	"github.com/gogpu/ggclip/composite"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/glyph"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/surface"
)

var (
	// ErrInvalidRestore is returned by Restore without a matching Save.
	ErrInvalidRestore = errors.New("gstate: restore without matching save")

	// ErrNoCurrentPoint is returned by relative path operations on a path
	// without a current point.
	ErrNoCurrentPoint = errors.New("gstate: no current point")

	// ErrNoFace is returned by ShowGlyphs when no font face is set.
	ErrNoFace = errors.New("gstate: no font face")
)

// frame is the part of the state saved by Save.
type frame struct {
	clip      *clip.Clip
	ctm       geom.Matrix
	source    pattern.Pattern
	op        surface.Operator
	fillRule  geom.FillRule
	stroke    path.StrokeStyle
	tolerance float64
	antialias geom.Antialias
	face      glyph.Face
}

// State is a drawing state targeting one surface.
type State struct {
	arena  *clip.Arena
	target surface.Surface
	comp   Compositor

	frame
	saved []frame
	path  *path.Path
}

// New returns a state drawing onto target with an opaque source, the OVER
// operator, no clip and the identity CTM. Clips are allocated from an
// arena configured by opts.
func New(target surface.Surface, opts ...ggclip.Option) *State {
	a := clip.NewArena(opts...)
	o := a.Options()
	return &State{
		arena:  a,
		target: target,
		comp:   NewMaskCompositor(a),
		frame: frame{
			ctm:       geom.Identity(),
			source:    pattern.Opaque(),
			op:        surface.OperatorOver,
			fillRule:  geom.Winding,
			stroke:    path.DefaultStrokeStyle(),
			tolerance: o.Tolerance,
			antialias: o.Antialias,
		},
		path: path.New(),
	}
}

// Arena returns the arena clips are allocated from.
func (s *State) Arena() *clip.Arena { return s.arena }

// Target returns the surface drawn to.
func (s *State) Target() surface.Surface { return s.target }

// SetCompositor replaces the compositor operations are drawn with.
func (s *State) SetCompositor(c Compositor) { s.comp = c }

func (s *State) SetSource(p pattern.Pattern)        { s.source = p }
func (s *State) SetOperator(op surface.Operator)    { s.op = op }
func (s *State) SetFillRule(r geom.FillRule)        { s.fillRule = r }
func (s *State) SetStrokeStyle(st path.StrokeStyle) { s.stroke = st }
func (s *State) SetTolerance(t float64)             { s.tolerance = t }
func (s *State) SetAntialias(aa geom.Antialias)     { s.antialias = aa }
func (s *State) SetFace(f glyph.Face)               { s.face = f }
func (s *State) CTM() geom.Matrix                   { return s.ctm }
func (s *State) Operator() surface.Operator         { return s.op }
func (s *State) Depth() int                         { return len(s.saved) }

// Save pushes a copy of the current state.
func (s *State) Save() {
	f := s.frame
	f.clip = s.arena.Copy(s.clip)
	s.saved = append(s.saved, f)
}

// Restore pops the state pushed by the matching Save. The current path
// is not part of the saved state.
func (s *State) Restore() error {
	if len(s.saved) == 0 {
		return ErrInvalidRestore
	}
	s.arena.Destroy(s.clip)
	s.frame = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

// Close releases every clip held by the state, including saved ones.
func (s *State) Close() error {
	for _, f := range s.saved {
		s.arena.Destroy(f.clip)
	}
	s.saved = nil
	s.arena.Destroy(s.clip)
	s.clip = nil
	return nil
}

// Translate moves the user-space origin.
func (s *State) Translate(tx, ty float64) {
	s.ctm = s.ctm.Multiply(geom.Translation(tx, ty))
}

// Scale scales user space.
func (s *State) Scale(sx, sy float64) {
	s.ctm = s.ctm.Multiply(geom.Scaling(sx, sy))
}

// Transform applies m to user space, before the current CTM.
func (s *State) Transform(m geom.Matrix) {
	s.ctm = s.ctm.Multiply(m)
}

// IdentityMatrix resets the CTM.
func (s *State) IdentityMatrix() {
	s.ctm = geom.Identity()
}

// DeviceTransform remaps device space by m: the current and every saved
// clip are transformed with it, as when the target is redirected to a
// surface with a different device origin.
func (s *State) DeviceTransform(m geom.Matrix) {
	s.clip = s.arena.Transform(s.clip, m)
	for i := range s.saved {
		s.saved[i].clip = s.arena.Transform(s.saved[i].clip, m)
	}
}

// Path construction.

// NewPath discards the current path.
func (s *State) NewPath() { s.path = path.New() }

// Path returns the current device-space path.
func (s *State) Path() *path.Path { return s.path }

// MoveTo starts a new subpath at the user-space point (x, y).
func (s *State) MoveTo(x, y float64) {
	s.path.MoveTo(s.ctm.Apply(x, y))
}

// LineTo adds a line to the user-space point (x, y).
func (s *State) LineTo(x, y float64) {
	s.path.LineTo(s.ctm.Apply(x, y))
}

// CurveTo adds a cubic Bézier with user-space control points.
func (s *State) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := s.ctm.Apply(x1, y1)
	bx, by := s.ctm.Apply(x2, y2)
	cx, cy := s.ctm.Apply(x3, y3)
	s.path.CurveTo(ax, ay, bx, by, cx, cy)
}

// RelLineTo adds a line relative to the current point.
func (s *State) RelLineTo(dx, dy float64) error {
	cur, ok := s.path.CurrentPoint()
	if !ok {
		return ErrNoCurrentPoint
	}
	ddx, ddy := s.ctm.ApplyDistance(dx, dy)
	s.path.LineTo(geom.Float(cur.X)+ddx, geom.Float(cur.Y)+ddy)
	return nil
}

// RelMoveTo starts a subpath relative to the current point.
func (s *State) RelMoveTo(dx, dy float64) error {
	cur, ok := s.path.CurrentPoint()
	if !ok {
		return ErrNoCurrentPoint
	}
	ddx, ddy := s.ctm.ApplyDistance(dx, dy)
	s.path.MoveTo(geom.Float(cur.X)+ddx, geom.Float(cur.Y)+ddy)
	return nil
}

// ClosePath closes the current subpath.
func (s *State) ClosePath() { s.path.Close() }

// Rectangle adds a closed rectangle in user space.
func (s *State) Rectangle(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

// Clipping.

// Clip intersects the clip with the current path and clears the path.
func (s *State) Clip() {
	s.ClipPreserve()
	s.NewPath()
}

// ClipPreserve intersects the clip with the current path, keeping it.
func (s *State) ClipPreserve() {
	s.clip = s.arena.IntersectPath(s.clip, s.path, s.fillRule, s.tolerance, s.antialias)
}

// ClipRectangle intersects the clip with a device-space rectangle.
func (s *State) ClipRectangle(r image.Rectangle) {
	s.clip = s.arena.IntersectRectangle(s.clip, r)
}

// ResetClip removes the clip.
func (s *State) ResetClip() {
	s.arena.Destroy(s.clip)
	s.clip = nil
}

// ClipHandle returns the current clip. It remains owned by the state.
func (s *State) ClipHandle() *clip.Clip { return s.clip }

// ClipExtents returns the user-space bounding box of the visible area:
// the clip extents within the target. An all-clipped state yields an
// empty box.
func (s *State) ClipExtents() (x0, y0, x1, y1 float64) {
	r := s.target.Extents().Intersect(s.clip.Extents())
	if r.Empty() {
		return 0, 0, 0, 0
	}
	inv, ok := s.ctm.Invert()
	if !ok {
		return 0, 0, 0, 0
	}
	return inv.TransformBounds(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// ClipRectangleList returns the clip as device-space rectangles when it
// is a pixel region.
func (s *State) ClipRectangleList() ([]image.Rectangle, error) {
	if s.clip == nil {
		return []image.Rectangle{s.target.Extents()}, nil
	}
	return clip.RectangleList(s.clip)
}

// InClip reports whether the user-space point (x, y) is visible through
// the clip.
func (s *State) InClip(x, y float64) bool {
	c := s.clip
	switch {
	case c == nil:
		return true
	case c.IsAllClipped():
		return false
	}
	dx, dy := s.ctm.Apply(x, y)
	pt := geom.Pt(dx, dy)

	if boxes := c.Boxes(); len(boxes) > 0 {
		inside := false
		for _, b := range boxes {
			if b.ContainsPoint(pt) {
				inside = true
				break
			}
		}
		if !inside {
			return false
		}
	} else if !geom.FromRectangle(c.Extents()).ContainsPoint(pt) {
		return false
	}

	in := true
	c.Walk(func(p clip.PathInfo) bool {
		poly := polygon.FromPath(p.Path, p.Tolerance)
		in = poly.Contains(dx, dy, p.FillRule)
		return in
	})
	return in
}

// Drawing.

// draw runs fn with the composite rectangles from init, treating an
// operation that cannot change any pixel as done.
func (s *State) draw(r *composite.Rectangles, err error, fn func(*composite.Rectangles) error) error {
	if errors.Is(err, composite.ErrNothingToDo) {
		return nil
	}
	if err != nil {
		return err
	}
	defer r.Fini()
	return fn(r)
}

// Paint paints the source everywhere within the clip.
func (s *State) Paint() error {
	r, err := composite.InitPaint(s.arena, s.target, s.op, s.source, s.clip)
	return s.draw(r, err, func(r *composite.Rectangles) error {
		return s.comp.Paint(s.target, r)
	})
}

// PaintWithAlpha paints the source attenuated by a constant alpha.
func (s *State) PaintWithAlpha(alpha float64) error {
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 0xff))
	return s.Mask(pattern.NewSolid(color.Alpha{A: a}))
}

// Mask composites the source through the alpha of mask.
func (s *State) Mask(mask pattern.Pattern) error {
	r, err := composite.InitMask(s.arena, s.target, s.op, s.source, mask, s.clip)
	return s.draw(r, err, func(r *composite.Rectangles) error {
		return s.comp.Mask(s.target, r)
	})
}

// Fill fills the current path and clears it.
func (s *State) Fill() error {
	err := s.FillPreserve()
	s.NewPath()
	return err
}

// FillPreserve fills the current path, keeping it.
func (s *State) FillPreserve() error {
	p := s.path
	r, err := composite.InitFill(s.arena, s.target, s.op, s.source, p, s.clip)
	return s.draw(r, err, func(r *composite.Rectangles) error {
		return s.comp.Fill(s.target, r, p, s.fillRule, s.tolerance, s.antialias)
	})
}

// Stroke strokes the current path and clears it. The stroke width is in
// user space.
func (s *State) Stroke() error {
	err := s.StrokePreserve()
	s.NewPath()
	return err
}

// StrokePreserve strokes the current path, keeping it.
func (s *State) StrokePreserve() error {
	p := s.path
	r, err := composite.InitStroke(s.arena, s.target, s.op, s.source, p, s.stroke, s.ctm, s.clip)
	return s.draw(r, err, func(r *composite.Rectangles) error {
		return s.comp.Stroke(s.target, r, p, s.stroke, s.ctm, s.tolerance, s.antialias)
	})
}

// ShowGlyphs draws glyphs with the current face. Glyph positions are user
// space; glyph shapes are in device pixels at the face size.
func (s *State) ShowGlyphs(glyphs []glyph.Glyph) error {
	if s.face == nil {
		return ErrNoFace
	}
	dev := make([]glyph.Glyph, len(glyphs))
	for i, g := range glyphs {
		x, y := s.ctm.Apply(g.X, g.Y)
		dev[i] = glyph.Glyph{Index: g.Index, X: x, Y: y}
	}
	r, overlap, err := composite.InitGlyphs(s.arena, s.target, s.op, s.source, s.face, dev, s.clip)
	return s.draw(r, err, func(r *composite.Rectangles) error {
		if err := s.comp.Glyphs(s.target, r, s.face, dev, s.face.Antialias(), overlap); err != nil {
			return fmt.Errorf("gstate: show glyphs: %w", err)
		}
		return nil
	})
}
