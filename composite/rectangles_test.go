package composite

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/ggclip/clip"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/glyph"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/polygon"
	"github.com/gogpu/ggclip/surface"
)

func newTarget(t *testing.T) *surface.ImageSurface {
	t.Helper()
	s, err := surface.NewImageSurface(100, 100)
	if err != nil {
		t.Fatalf("NewImageSurface() error = %v", err)
	}
	return s
}

func rect(x0, y0, x1, y1 float64) *path.Path {
	p := path.New()
	p.Rectangle(x0, y0, x1-x0, y1-y0)
	return p
}

func TestInitFill(t *testing.T) {
	dst := newTarget(t)
	tests := []struct {
		name          string
		op            surface.Operator
		clip          image.Rectangle // empty means no clip
		fill          *path.Path
		wantBounded   image.Rectangle
		wantUnbounded image.Rectangle
		wantClip      []geom.Box
	}{
		{
			name:          "over unclipped",
			op:            surface.OperatorOver,
			fill:          rect(10, 10, 30, 30),
			wantBounded:   image.Rect(10, 10, 30, 30),
			wantUnbounded: image.Rect(10, 10, 30, 30),
			wantClip:      []geom.Box{geom.B(10, 10, 30, 30)},
		},
		{
			name:          "over clipped",
			op:            surface.OperatorOver,
			clip:          image.Rect(20, 0, 100, 100),
			fill:          rect(10, 10, 30, 30),
			wantBounded:   image.Rect(20, 10, 30, 30),
			wantUnbounded: image.Rect(20, 10, 30, 30),
			wantClip:      []geom.Box{geom.B(20, 10, 30, 30)},
		},
		{
			name:          "in is unbounded",
			op:            surface.OperatorIn,
			clip:          image.Rect(20, 0, 100, 100),
			fill:          rect(10, 10, 30, 30),
			wantBounded:   image.Rect(20, 10, 30, 30),
			wantUnbounded: image.Rect(20, 0, 100, 100),
			wantClip:      []geom.Box{geom.B(20, 0, 100, 100)},
		},
		{
			name:          "source is bounded by mask",
			op:            surface.OperatorSource,
			fill:          rect(10, 10, 30, 30),
			wantBounded:   image.Rect(10, 10, 30, 30),
			wantUnbounded: image.Rect(10, 10, 30, 30),
			wantClip:      []geom.Box{geom.B(10, 10, 30, 30)},
		},
		{
			name:          "clipped to destination",
			op:            surface.OperatorOver,
			fill:          rect(-10, 90, 20, 120),
			wantBounded:   image.Rect(0, 90, 20, 100),
			wantUnbounded: image.Rect(0, 90, 20, 100),
			wantClip:      []geom.Box{geom.B(0, 90, 20, 100)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := clip.NewArena()
			var c *clip.Clip
			if !tt.clip.Empty() {
				c = a.IntersectRectangle(nil, tt.clip)
				defer a.Destroy(c)
			}
			r, err := InitFill(a, dst, tt.op, pattern.Opaque(), tt.fill, c)
			if err != nil {
				t.Fatalf("InitFill() error = %v", err)
			}
			defer r.Fini()
			if r.Bounded != tt.wantBounded {
				t.Errorf("Bounded = %v, want %v", r.Bounded, tt.wantBounded)
			}
			if r.Unbounded != tt.wantUnbounded {
				t.Errorf("Unbounded = %v, want %v", r.Unbounded, tt.wantUnbounded)
			}
			if got := r.Clip.Boxes(); !slices.Equal(got, tt.wantClip) {
				t.Errorf("Clip.Boxes() = %v, want %v", got, tt.wantClip)
			}
			if r.IsBounded != tt.op.BoundedBy() {
				t.Errorf("IsBounded = %v, want %v", r.IsBounded, tt.op.BoundedBy())
			}
		})
	}
}

func TestNothingToDo(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	disjoint := a.IntersectRectangle(nil, image.Rect(200, 200, 300, 300))
	defer a.Destroy(disjoint)
	clipped := a.IntersectRectangle(nil, image.Rect(50, 50, 60, 60))
	defer a.Destroy(clipped)

	tests := []struct {
		name string
		init func() (*Rectangles, error)
	}{
		{"all clipped", func() (*Rectangles, error) {
			return InitPaint(a, dst, surface.OperatorOver, pattern.Opaque(), a.AllClipped())
		}},
		{"clip outside destination", func() (*Rectangles, error) {
			return InitPaint(a, dst, surface.OperatorOver, pattern.Opaque(), disjoint)
		}},
		{"fill outside destination", func() (*Rectangles, error) {
			return InitFill(a, dst, surface.OperatorOver, pattern.Opaque(), rect(200, 200, 210, 210), nil)
		}},
		{"fill outside clip", func() (*Rectangles, error) {
			return InitFill(a, dst, surface.OperatorOver, pattern.Opaque(), rect(0, 0, 10, 10), clipped)
		}},
		{"empty source", func() (*Rectangles, error) {
			src := pattern.NewSurface(image.NewAlpha(image.Rect(0, 0, 10, 10)))
			src.Matrix = geom.Translation(-500, -500)
			return InitPaint(a, dst, surface.OperatorOver, src, nil)
		}},
		{"empty boxes", func() (*Rectangles, error) {
			return InitBoxes(a, dst, surface.OperatorOver, pattern.Opaque(), nil, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.init()
			if !errors.Is(err, ErrNothingToDo) {
				t.Errorf("error = %v, want %v", err, ErrNothingToDo)
			}
			if r != nil {
				t.Errorf("Rectangles = %+v, want nil", r)
			}
		})
	}
	if got := a.Stats().Clips; got != 2 {
		t.Errorf("Stats().Clips = %d, want 2", got)
	}
}

func TestUnboundedOperatorIgnoresEmptyMask(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	r, err := InitFill(a, dst, surface.OperatorIn, pattern.Opaque(), rect(200, 200, 210, 210), nil)
	if err != nil {
		t.Fatalf("InitFill() error = %v", err)
	}
	defer r.Fini()
	if r.Unbounded != image.Rect(0, 0, 100, 100) {
		t.Errorf("Unbounded = %v, want the destination", r.Unbounded)
	}
	if !r.Bounded.Empty() {
		t.Errorf("Bounded = %v, want empty", r.Bounded)
	}
}

func TestInitPaintSurfaceSource(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	src := pattern.NewSurface(image.NewAlpha(image.Rect(0, 0, 20, 20)))
	src.Matrix = geom.Translation(-10, -10)

	r, err := InitPaint(a, dst, surface.OperatorOver, src, nil)
	if err != nil {
		t.Fatalf("InitPaint() error = %v", err)
	}
	defer r.Fini()
	if want := image.Rect(10, 10, 30, 30); r.Source != want || r.Bounded != want || r.Unbounded != want {
		t.Errorf("Source, Bounded, Unbounded = %v, %v, %v, want %v", r.Source, r.Bounded, r.Unbounded, want)
	}
	if r.Mask != r.Destination {
		t.Errorf("Mask = %v, want %v", r.Mask, r.Destination)
	}
	if want := image.Rect(0, 0, 20, 20); r.SourceSampleArea != want {
		t.Errorf("SourceSampleArea = %v, want %v", r.SourceSampleArea, want)
	}
	if got, ok := r.SourcePattern.(*pattern.Surface); !ok || got == src || got.Filter != pattern.FilterNearest {
		t.Errorf("SourcePattern = %+v, want a reduced copy with the nearest filter", r.SourcePattern)
	}
}

func TestInitMask(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	mask := pattern.NewSurface(image.NewAlpha(image.Rect(40, 40, 60, 70)))

	r, err := InitMask(a, dst, surface.OperatorOver, pattern.Opaque(), mask, nil)
	if err != nil {
		t.Fatalf("InitMask() error = %v", err)
	}
	defer r.Fini()
	want := image.Rect(40, 40, 60, 70)
	if r.Mask != want || r.Bounded != want {
		t.Errorf("Mask, Bounded = %v, %v, want %v", r.Mask, r.Bounded, want)
	}
	if r.MaskSampleArea != want {
		t.Errorf("MaskSampleArea = %v, want %v", r.MaskSampleArea, want)
	}
}

func TestInitShapes(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()

	t.Run("boxes", func(t *testing.T) {
		boxes := []geom.Box{geom.B(10.5, 10, 20, 20), geom.B(30, 30, 40.25, 40)}
		r, err := InitBoxes(a, dst, surface.OperatorOver, pattern.Opaque(), boxes, nil)
		if err != nil {
			t.Fatalf("InitBoxes() error = %v", err)
		}
		defer r.Fini()
		if want := image.Rect(10, 10, 41, 40); r.Mask != want {
			t.Errorf("Mask = %v, want %v", r.Mask, want)
		}
	})

	t.Run("polygon", func(t *testing.T) {
		p := path.New()
		p.Polygon(5, 5, 25.5, 5, 5, 25.5)
		r, err := InitPolygon(a, dst, surface.OperatorOver, pattern.Opaque(), polygon.FromPath(p, 0.1), nil)
		if err != nil {
			t.Fatalf("InitPolygon() error = %v", err)
		}
		defer r.Fini()
		if want := image.Rect(5, 5, 26, 26); r.Mask != want {
			t.Errorf("Mask = %v, want %v", r.Mask, want)
		}
	})

	t.Run("stroke", func(t *testing.T) {
		style := path.DefaultStrokeStyle()
		style.Width = 4
		r, err := InitStroke(a, dst, surface.OperatorOver, pattern.Opaque(),
			rect(20, 20, 40, 40), style, geom.Identity(), nil)
		if err != nil {
			t.Fatalf("InitStroke() error = %v", err)
		}
		defer r.Fini()
		if fill := image.Rect(20, 20, 40, 40); !fill.In(r.Mask) || r.Mask == fill {
			t.Errorf("Mask = %v, want a rectangle strictly containing %v", r.Mask, fill)
		}
	})

	if got := a.Stats().Clips; got != 0 {
		t.Errorf("Stats().Clips = %d, want 0 after Fini", got)
	}
}

type inkFace struct {
	ink geom.Box
	aa  geom.Antialias
}

func (f inkFace) Bounds(uint32) (geom.Box, error) { return f.ink, nil }
func (f inkFace) Antialias() geom.Antialias        { return f.aa }

func TestInitGlyphs(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	glyphs := []glyph.Glyph{{Index: 1, X: 10, Y: 30}, {Index: 1, X: 15, Y: 30}}

	tests := []struct {
		name        string
		aa          geom.Antialias
		src         pattern.Pattern
		wantOverlap bool
	}{
		{"antialiased", geom.AntialiasDefault, pattern.Opaque(), true},
		{"aliased opaque", geom.AntialiasNone, pattern.Opaque(), false},
		{"aliased surface", geom.AntialiasNone, pattern.NewSurface(image.NewAlpha(image.Rect(0, 0, 100, 100))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := inkFace{ink: geom.B(0, -10, 8, 2), aa: tt.aa}
			r, overlap, err := InitGlyphs(a, dst, surface.OperatorOver, tt.src, face, glyphs, nil)
			if err != nil {
				t.Fatalf("InitGlyphs() error = %v", err)
			}
			defer r.Fini()
			if want := image.Rect(10, 20, 23, 32); r.Mask != want {
				t.Errorf("Mask = %v, want %v", r.Mask, want)
			}
			if overlap != tt.wantOverlap {
				t.Errorf("overlap = %v, want %v", overlap, tt.wantOverlap)
			}
		})
	}
}

func TestIntersectMaskExtents(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	r, err := InitFill(a, dst, surface.OperatorOver, pattern.Opaque(), rect(0, 0, 50, 50), nil)
	if err != nil {
		t.Fatalf("InitFill() error = %v", err)
	}
	defer r.Fini()

	if err := r.IntersectMaskExtents(geom.B(0, 0, 50, 50)); err != nil {
		t.Fatalf("IntersectMaskExtents(same) error = %v", err)
	}
	if err := r.IntersectMaskExtents(geom.B(10.5, 10, 20, 20)); err != nil {
		t.Fatalf("IntersectMaskExtents() error = %v", err)
	}
	want := image.Rect(10, 10, 20, 20)
	if r.Mask != want || r.Bounded != want || r.Unbounded != want {
		t.Errorf("Mask, Bounded, Unbounded = %v, %v, %v, want %v", r.Mask, r.Bounded, r.Unbounded, want)
	}
	if got, wantBoxes := r.Clip.Boxes(), []geom.Box{geom.FromRectangle(want)}; !slices.Equal(got, wantBoxes) {
		t.Errorf("Clip.Boxes() = %v, want %v", got, wantBoxes)
	}
	if got := a.Stats().Clips; got != 1 {
		t.Errorf("Stats().Clips = %d, want 1: the replaced clip is released", got)
	}
	if err := r.IntersectSourceExtents(geom.B(60, 60, 70, 70)); !errors.Is(err, ErrNothingToDo) {
		t.Errorf("IntersectSourceExtents(disjoint) error = %v, want %v", err, ErrNothingToDo)
	}
}

func TestCanReduceClip(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	r, err := InitFill(a, dst, surface.OperatorOver, pattern.Opaque(), rect(10, 10, 30, 30), nil)
	if err != nil {
		t.Fatalf("InitFill() error = %v", err)
	}
	defer r.Fini()

	covering := a.IntersectRectangle(nil, image.Rect(0, 0, 50, 50))
	defer a.Destroy(covering)
	partial := a.IntersectRectangle(nil, image.Rect(15, 15, 50, 50))
	defer a.Destroy(partial)

	tests := []struct {
		name string
		clip *clip.Clip
		want bool
	}{
		{"nil", nil, true},
		{"covering", covering, true},
		{"partial", partial, false},
		{"all clipped", a.AllClipped(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.CanReduceClip(tt.clip); got != tt.want {
				t.Errorf("CanReduceClip() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddToDamage(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	c := a.FromBoxes([]geom.Box{geom.B(0, 0, 10, 10), geom.B(20, 0, 30, 10)})
	defer a.Destroy(c)

	r, err := InitPaint(a, dst, surface.OperatorOver, pattern.Opaque(), c)
	if err != nil {
		t.Fatalf("InitPaint() error = %v", err)
	}
	defer r.Fini()

	damage := geom.NewBoxes(4)
	r.AddToDamage(damage)
	if got, want := damage.Slice(), c.Boxes(); !slices.Equal(got, want) {
		t.Errorf("damage = %v, want %v", got, want)
	}
}

func TestFiniIdempotent(t *testing.T) {
	dst := newTarget(t)
	a := clip.NewArena()
	r, err := InitPaint(a, dst, surface.OperatorOver, pattern.Opaque(), nil)
	if err != nil {
		t.Fatalf("InitPaint() error = %v", err)
	}
	r.Fini()
	r.Fini()
	if r.Clip != nil {
		t.Errorf("Clip = %v after Fini, want nil", r.Clip)
	}
	if got := a.Stats().Clips; got != 0 {
		t.Errorf("Stats().Clips = %d, want 0", got)
	}
	var nilRects *Rectangles
	nilRects.Fini()
}

func TestClipRectangle(t *testing.T) {
	r := &Rectangles{
		Bounded:   image.Rect(1, 1, 2, 2),
		Unbounded: image.Rect(0, 0, 4, 4),
	}
	if got := r.ClipRectangle(); got != r.Unbounded {
		t.Errorf("ClipRectangle() = %v, want %v", got, r.Unbounded)
	}
	r.IsBounded = surface.BoundByMask
	if got := r.ClipRectangle(); got != r.Bounded {
		t.Errorf("ClipRectangle() = %v, want %v", got, r.Bounded)
	}
}
