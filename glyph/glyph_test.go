package glyph

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggclip/geom"
)

// boxFace gives every glyph the same ink box.
type boxFace struct {
	ink geom.Box
}

func (f boxFace) Bounds(index uint32) (geom.Box, error) {
	switch index {
	case 0:
		return geom.Box{}, nil
	case 99:
		return geom.Box{}, ErrNoGlyph
	}
	return f.ink, nil
}

func (f boxFace) Antialias() geom.Antialias { return geom.AntialiasDefault }

func TestInkExtents(t *testing.T) {
	face := boxFace{ink: geom.B(0, -8, 6, 0)}
	tests := []struct {
		name        string
		glyphs      []Glyph
		want        image.Rectangle
		wantOverlap bool
	}{
		{"empty", nil, image.Rectangle{}, false},
		{"single", []Glyph{{1, 10, 20}}, image.Rect(10, 12, 16, 20), false},
		{"apart", []Glyph{{1, 10, 20}, {1, 16, 20}}, image.Rect(10, 12, 22, 20), false},
		{"overlapping", []Glyph{{1, 10, 20}, {1, 13, 20}}, image.Rect(10, 12, 19, 20), true},
		{"no ink", []Glyph{{1, 10, 20}, {0, 12, 20}}, image.Rect(10, 12, 16, 20), false},
		{"fractional", []Glyph{{1, 0.5, 0.5}}, image.Rect(0, -8, 7, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, overlap, err := InkExtents(face, tt.glyphs)
			if err != nil {
				t.Fatalf("InkExtents() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("InkExtents() = %v, want %v", got, tt.want)
			}
			if overlap != tt.wantOverlap {
				t.Errorf("InkExtents() overlap = %v, want %v", overlap, tt.wantOverlap)
			}
		})
	}
}

func TestInkExtentsError(t *testing.T) {
	_, _, err := InkExtents(boxFace{}, []Glyph{{Index: 99}})
	if !errors.Is(err, ErrNoGlyph) {
		t.Errorf("InkExtents() error = %v, want %v", err, ErrNoGlyph)
	}
}

func loadFaces(t *testing.T) (*XImageFace, *OpenTypeFace) {
	t.Helper()
	xf, err := NewXImageFace(goregular.TTF, 32, font.HintingNone, geom.AntialiasDefault)
	if err != nil {
		t.Fatalf("NewXImageFace() error = %v", err)
	}
	of, err := NewOpenTypeFace(goregular.TTF, 32, geom.AntialiasDefault)
	if err != nil {
		t.Fatalf("NewOpenTypeFace() error = %v", err)
	}
	return xf, of
}

func TestFacesAgree(t *testing.T) {
	xf, of := loadFaces(t)
	for _, r := range "AgH" {
		t.Run(string(r), func(t *testing.T) {
			xi, err := xf.Index(r)
			if err != nil {
				t.Fatalf("XImageFace.Index() error = %v", err)
			}
			oi, err := of.Index(r)
			if err != nil {
				t.Fatalf("OpenTypeFace.Index() error = %v", err)
			}
			if xi != oi {
				t.Fatalf("Index(%q) = %d and %d", r, xi, oi)
			}

			xb, err := xf.Bounds(xi)
			if err != nil {
				t.Fatalf("XImageFace.Bounds() error = %v", err)
			}
			ob, err := of.Bounds(oi)
			if err != nil {
				t.Fatalf("OpenTypeFace.Bounds() error = %v", err)
			}
			if xb.IsEmpty() || ob.IsEmpty() {
				t.Fatalf("Bounds() = %v and %v, want ink", xb, ob)
			}
			if xb.Min.Y >= 0 {
				t.Errorf("Bounds().Min.Y = %v, want above the baseline", xb.Min.Y)
			}
			// Both read the same outline; only rounding may differ.
			near := func(a, b int) bool { return a-b <= 4 && b-a <= 4 }
			if !near(int(xb.Min.X), int(ob.Min.X)) || !near(int(xb.Min.Y), int(ob.Min.Y)) ||
				!near(int(xb.Max.X), int(ob.Max.X)) || !near(int(xb.Max.Y), int(ob.Max.Y)) {
				t.Errorf("Bounds() = %v (x/image) and %v (go-text), want within 4/64 px", xb, ob)
			}
		})
	}
}

func TestOutlineWithinBounds(t *testing.T) {
	xf, of := loadFaces(t)
	faces := []struct {
		name string
		face interface {
			Face
			Index(rune) (uint32, error)
		}
	}{
		{"ximage", xf},
		{"opentype", of},
	}
	for _, tt := range faces {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := tt.face.Index('O')
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			p, err := tt.face.Outline(idx, 100, 50)
			if err != nil {
				t.Fatalf("Outline() error = %v", err)
			}
			if p.FillIsEmpty() {
				t.Fatal("Outline() is empty")
			}
			b, err := tt.face.Bounds(idx)
			if err != nil {
				t.Fatalf("Bounds() error = %v", err)
			}
			want := b.Translate(geom.Fixed(100), geom.Fixed(50)).RoundOut().Inset(-1)
			if got := p.Extents().RoundOut(); !got.In(want) {
				t.Errorf("Outline().Extents() = %v, want within %v", got, want)
			}
		})
	}
}

func TestOutlines(t *testing.T) {
	xf, _ := loadFaces(t)
	h, err := xf.Index('H')
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	one, err := xf.Outline(h, 0, 40)
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	two, err := Outlines(xf, []Glyph{{h, 0, 40}, {h, 30, 40}})
	if err != nil {
		t.Fatalf("Outlines() error = %v", err)
	}
	if got, want := two.Extents().Max.X, one.Extents().Max.X+geom.Fixed(30); got != want {
		t.Errorf("Outlines() right edge = %v, want %v", got, want)
	}
}

func TestFaceErrors(t *testing.T) {
	if _, err := NewXImageFace([]byte("not a font"), 12, font.HintingNone, geom.AntialiasDefault); err == nil {
		t.Error("NewXImageFace(garbage) error = nil")
	}
	if _, err := NewOpenTypeFace([]byte("not a font"), 12, geom.AntialiasDefault); err == nil {
		t.Error("NewOpenTypeFace(garbage) error = nil")
	}
	if _, err := NewXImageFace(goregular.TTF, 0, font.HintingNone, geom.AntialiasDefault); err == nil {
		t.Error("NewXImageFace(size 0) error = nil")
	}
	xf, _ := loadFaces(t)
	if _, err := xf.Bounds(1 << 20); !errors.Is(err, ErrNoGlyph) {
		t.Errorf("Bounds(out of range) error = %v, want %v", err, ErrNoGlyph)
	}
}

func TestCachedFace(t *testing.T) {
	xf, _ := loadFaces(t)
	idx, err := xf.Index('g')
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	cf := NewCachedFace(xf, 0)

	want, _ := xf.Bounds(idx)
	for range 2 {
		got, err := cf.Bounds(idx)
		if err != nil {
			t.Fatalf("Bounds() error = %v", err)
		}
		if got != want {
			t.Errorf("Bounds() = %v, want %v", got, want)
		}
	}

	direct, err := xf.Outline(idx, 0, 0)
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	got, err := cf.Outline(idx, 10, 20)
	if err != nil {
		t.Fatalf("cached Outline() error = %v", err)
	}
	if !got.Equal(direct.Translate(geom.Fixed(10), geom.Fixed(20))) {
		t.Error("cached Outline() differs from the translated outline")
	}

	st := cf.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Len != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, 1 entry", st)
	}

	if _, err := cf.Bounds(1 << 20); !errors.Is(err, ErrNoGlyph) {
		t.Errorf("Bounds() error = %v, want %v", err, ErrNoGlyph)
	}
}
