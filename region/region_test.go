package region

import (
	"image"
	"testing"

	"github.com/gogpu/ggclip/geom"
)

func TestFromRectangles(t *testing.T) {
	tests := []struct {
		name    string
		rects   []image.Rectangle
		wantN   int
		extents image.Rectangle
	}{
		{"empty", nil, 0, image.Rectangle{}},
		{"single", []image.Rectangle{image.Rect(0, 0, 4, 4)}, 1, image.Rect(0, 0, 4, 4)},
		{"overlap", []image.Rectangle{image.Rect(0, 0, 4, 4), image.Rect(2, 2, 6, 6)}, 3, image.Rect(0, 0, 6, 6)},
		{"merge", []image.Rectangle{image.Rect(0, 0, 4, 2), image.Rect(0, 2, 4, 4)}, 1, image.Rect(0, 0, 4, 4)},
		{"drops empty", []image.Rectangle{image.Rect(3, 3, 3, 9)}, 0, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromRectangles(tt.rects...)
			if got := r.NumRectangles(); got != tt.wantN {
				t.Errorf("NumRectangles() = %d, want %d (%v)", got, tt.wantN, r.Rectangles())
			}
			if got := r.Extents(); got != tt.extents {
				t.Errorf("Extents() = %v, want %v", got, tt.extents)
			}
		})
	}
}

func TestFromBoxesRoundsOut(t *testing.T) {
	r := FromBoxes([]geom.Box{geom.B(0.5, 0.5, 3.5, 3.5)})
	if r.NumRectangles() != 1 || r.Rectangle(0) != image.Rect(0, 0, 4, 4) {
		t.Errorf("FromBoxes() = %v, want [(0,0)-(4,4)]", r.Rectangles())
	}
}

func TestContains(t *testing.T) {
	r := FromRectangles(image.Rect(0, 0, 10, 10), image.Rect(20, 0, 30, 10))
	tests := []struct {
		name string
		rect image.Rectangle
		want Overlap
	}{
		{"inside first", image.Rect(1, 1, 5, 5), OverlapIn},
		{"gap", image.Rect(12, 2, 18, 8), OverlapOut},
		{"spans gap", image.Rect(5, 0, 25, 10), OverlapPart},
		{"far", image.Rect(100, 100, 110, 110), OverlapOut},
		{"empty", image.Rectangle{}, OverlapOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsRectangle(tt.rect); got != tt.want {
				t.Errorf("ContainsRectangle(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
	if !r.ContainsPoint(25, 5) || r.ContainsPoint(15, 5) || r.ContainsPoint(30, 5) {
		t.Error("ContainsPoint() disagrees with the rectangle list")
	}
}

func TestTranslateAndEqual(t *testing.T) {
	r := FromRectangles(image.Rect(0, 0, 4, 4), image.Rect(2, 2, 6, 6))
	moved := r.Translate(10, -3).Translate(-10, 3)
	if !moved.Equal(r) {
		t.Errorf("translate round trip = %v, want %v", moved.Rectangles(), r.Rectangles())
	}
	if r.Equal(FromRectangles(image.Rect(0, 0, 4, 4))) {
		t.Error("Equal() of different regions = true")
	}
	var empty *Region
	if !empty.Equal(FromRectangles()) {
		t.Error("nil region should equal an empty region")
	}
}

func TestIntersect(t *testing.T) {
	a := FromRectangles(image.Rect(0, 0, 10, 10))
	b := FromRectangles(image.Rect(5, 5, 15, 15), image.Rect(-5, -5, 2, 2))
	got := a.Intersect(b)
	want := FromRectangles(image.Rect(0, 0, 2, 2), image.Rect(5, 5, 10, 10))
	if !got.Equal(want) {
		t.Errorf("Intersect() = %v, want %v", got.Rectangles(), want.Rectangles())
	}
	if !a.IntersectRectangle(image.Rect(20, 20, 30, 30)).IsEmpty() {
		t.Error("IntersectRectangle() outside the region should be empty")
	}
}
