package geom

import (
	"image"
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestBoxRoundOut(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want image.Rectangle
	}{
		{"aligned", B(0, 0, 10, 10), image.Rect(0, 0, 10, 10)},
		{"fractional", B(0.5, 1.25, 9.5, 9.75), image.Rect(0, 1, 10, 10)},
		{"negative", B(-1.5, -0.25, -0.5, 0.25), image.Rect(-2, -1, 0, 1)},
		{"tiny", B(3.1, 3.1, 3.2, 3.2), image.Rect(3, 3, 4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.RoundOut(); got != tt.want {
				t.Errorf("RoundOut() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxRoundDown(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want Box
	}{
		{"aligned", B(1, 2, 3, 4), B(1, 2, 3, 4)},
		{"below half", B(1.25, 2.25, 3.25, 4.25), B(1, 2, 3, 4)},
		{"above half", B(1.75, 2.75, 3.75, 4.75), B(2, 3, 4, 5)},
		{"exact half rounds down", B(1.5, 2.5, 3.5, 4.5), B(1, 2, 3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.RoundDown(); got != tt.want {
				t.Errorf("RoundDown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxPredicates(t *testing.T) {
	outer := B(0, 0, 10, 10)
	tests := []struct {
		name     string
		box      Box
		empty    bool
		aligned  bool
		contains bool
	}{
		{"inside", B(1, 1, 5, 5), false, true, true},
		{"same", B(0, 0, 10, 10), false, true, true},
		{"crossing", B(5, 5, 15, 15), false, true, false},
		{"zero width", B(3, 3, 3, 8), true, true, true},
		{"inverted", B(5, 5, 4, 4), true, true, true},
		{"fractional", B(0.5, 0, 1, 1), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
			if got := tt.box.IsPixelAligned(); got != tt.aligned {
				t.Errorf("IsPixelAligned() = %v, want %v", got, tt.aligned)
			}
			if got := outer.Contains(tt.box); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
		})
	}
}

func TestBoxContainsPointHalfOpen(t *testing.T) {
	b := B(0, 0, 10, 10)
	tests := []struct {
		name string
		p    fixed.Point26_6
		want bool
	}{
		{"top left corner", Pt(0, 0), true},
		{"right edge", Pt(10, 5), false},
		{"bottom edge", Pt(5, 10), false},
		{"interior", Pt(9.9, 9.9), true},
		{"outside", Pt(-0.1, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoxIntersectUnion(t *testing.T) {
	a := B(0, 0, 10, 10)
	b := B(5, 5, 15, 15)
	if got, want := a.Intersect(b), B(5, 5, 10, 10); got != want {
		t.Errorf("Intersect() = %v, want %v", got, want)
	}
	if got, want := a.Union(b), B(0, 0, 15, 15); got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if !a.Intersect(B(20, 20, 30, 30)).IsEmpty() {
		t.Error("Intersect() of disjoint boxes should be empty")
	}
	if a.Overlaps(B(10, 0, 20, 10)) {
		t.Error("Overlaps() of touching boxes = true, want false")
	}
}

func TestFromRectangleRoundTrip(t *testing.T) {
	r := image.Rect(-3, 4, 17, 29)
	b := FromRectangle(r)
	if !b.IsPixelAligned() {
		t.Fatal("FromRectangle() produced unaligned box")
	}
	if got := b.RoundOut(); got != r {
		t.Errorf("RoundOut(FromRectangle(r)) = %v, want %v", got, r)
	}
	if got := FromRectangle(Unbounded).RoundOut(); got != Unbounded {
		t.Errorf("unbounded round trip = %v, want %v", got, Unbounded)
	}
}

func TestIntersectRect(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	if !IntersectRect(&r, image.Rect(5, 5, 20, 20)) {
		t.Fatal("IntersectRect() = false, want true")
	}
	if r != image.Rect(5, 5, 10, 10) {
		t.Errorf("IntersectRect() left %v, want (5,5)-(10,10)", r)
	}
	if IntersectRect(&r, image.Rect(50, 50, 60, 60)) {
		t.Error("IntersectRect() with disjoint rect = true, want false")
	}
	if r != (image.Rectangle{}) {
		t.Errorf("empty result = %v, want zero rectangle", r)
	}
}

func TestBoxesAddWithLimits(t *testing.T) {
	bs := NewBoxes(4)
	bs.Limit(B(0, 0, 10, 10), B(20, 0, 30, 10))
	bs.Add(AntialiasDefault, B(5, 5, 25, 15))
	bs.Add(AntialiasDefault, B(40, 40, 50, 50))
	bs.Add(AntialiasDefault, B(1, 1, 1, 5))

	want := []Box{B(5, 5, 10, 10), B(20, 5, 25, 10)}
	if bs.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d (%v)", bs.Len(), len(want), bs.Slice())
	}
	for i, w := range want {
		if got := bs.At(i); got != w {
			t.Errorf("At(%d) = %v, want %v", i, got, w)
		}
	}
	if got, want := bs.Extents(), B(5, 5, 25, 10); got != want {
		t.Errorf("Extents() = %v, want %v", got, want)
	}
}

func TestBoxesAddAntialiasNone(t *testing.T) {
	bs := NewBoxes(1)
	bs.Add(AntialiasNone, B(0.25, 0.75, 4.5, 4.6))
	bs.Add(AntialiasNone, B(7.2, 7.2, 7.4, 7.4))
	if bs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bs.Len())
	}
	if got, want := bs.At(0), B(0, 1, 4, 5); got != want {
		t.Errorf("At(0) = %v, want %v", got, want)
	}
	if !bs.IsPixelAligned() {
		t.Error("IsPixelAligned() = false after AntialiasNone add")
	}
	bs.Add(AntialiasDefault, B(10.5, 10, 11, 11))
	if bs.IsPixelAligned() {
		t.Error("IsPixelAligned() = true after fractional add")
	}
}
