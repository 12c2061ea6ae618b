package polygon

import (
	"testing"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

func square(x, y, size float64) *path.Path {
	p := path.New()
	p.Rectangle(x, y, size, size)
	return p
}

func TestWinding(t *testing.T) {
	// Rectangle winds clockwise in device space: the left edge runs up.
	poly := FromPath(square(0, 0, 10), 0.1)
	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"inside", 5, 5, -1},
		{"left edge", 0, 5, -1},
		{"right edge", 10, 5, 0},
		{"top edge", 5, 0, -1},
		{"bottom edge", 5, 10, 0},
		{"outside", 15, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := poly.Winding(tt.x, tt.y); got != tt.want {
				t.Errorf("Winding(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFromPathDropsHorizontal(t *testing.T) {
	poly := FromPath(square(0, 0, 10), 0.1)
	if got := poly.NumEdges(); got != 2 {
		t.Errorf("NumEdges() = %d, want 2", got)
	}
	if got, want := poly.Extents(), geom.B(0, 0, 10, 10); got != want {
		t.Errorf("Extents() = %v, want %v", got, want)
	}
}

// sameCoverage compares two shapes on a grid of sample points.
func sameCoverage(t *testing.T, got *Polygon, want func(x, y float64) bool, size int) {
	t.Helper()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			g := got.Winding(fx, fy) != 0
			if g != want(fx, fy) {
				t.Fatalf("coverage at (%v,%v) = %v, want %v", fx, fy, g, !g)
			}
		}
	}
}

func TestIntersectSquares(t *testing.T) {
	a := FromPath(square(0, 0, 10), 0.1)
	b := FromPath(square(5, 5, 10), 0.1)
	got := a.Intersect(b, geom.Winding, geom.Winding)
	if got.IsEmpty() {
		t.Fatal("Intersect() is empty")
	}
	if e, want := got.Extents(), geom.B(5, 5, 10, 10); e != want {
		t.Errorf("Extents() = %v, want %v", e, want)
	}
	sameCoverage(t, got, func(x, y float64) bool { return x >= 5 && x < 10 && y >= 5 && y < 10 }, 20)
}

func TestIntersectTriangle(t *testing.T) {
	tri := path.New()
	tri.Polygon(0, 0, 20, 0, 0, 20)
	a := FromPath(tri, 0.1)
	b := FromPath(square(4, 4, 12), 0.1)
	got := a.Intersect(b, geom.Winding, geom.Winding)
	sameCoverage(t, got, func(x, y float64) bool {
		return x+y < 20 && x >= 4 && x < 16 && y >= 4 && y < 16
	}, 20)
}

func TestIntersectEvenOdd(t *testing.T) {
	ring := square(0, 0, 12)
	ring.Rectangle(4, 4, 4, 4) // same orientation, hole only under even-odd
	a := FromPath(ring, 0.1)
	b := FromPath(square(2, 2, 8), 0.1)

	even := a.Intersect(b, geom.EvenOdd, geom.Winding)
	sameCoverage(t, even, func(x, y float64) bool {
		inB := x >= 2 && x < 10 && y >= 2 && y < 10
		inHole := x >= 4 && x < 8 && y >= 4 && y < 8
		return inB && !inHole
	}, 12)

	wind := a.Intersect(b, geom.Winding, geom.Winding)
	sameCoverage(t, wind, func(x, y float64) bool {
		return x >= 2 && x < 10 && y >= 2 && y < 10
	}, 12)
}

func TestIntersectDisjoint(t *testing.T) {
	a := FromPath(square(0, 0, 5), 0.1)
	b := FromPath(square(10, 10, 5), 0.1)
	if got := a.Intersect(b, geom.Winding, geom.Winding); !got.IsEmpty() {
		t.Errorf("Intersect() of disjoint squares has %d edges", got.NumEdges())
	}
}

func TestIntersectBoxes(t *testing.T) {
	circle := path.New()
	circle.Arc(10, 10, 8)
	poly := FromPath(circle, 0.05)
	boxes := []geom.Box{geom.B(0, 0, 10, 10), geom.B(10, 10, 20, 20)}
	got := poly.IntersectBoxes(boxes, geom.Winding)
	sameCoverage(t, got, func(x, y float64) bool {
		inBoxes := (x < 10 && y < 10) || (x >= 10 && y >= 10)
		return inBoxes && poly.Winding(x, y) != 0
	}, 20)
}

func TestTranslate(t *testing.T) {
	poly := FromPath(square(0, 0, 4), 0.1)
	moved := poly.Translate(geom.Fixed(3), geom.Fixed(5))
	if got, want := moved.Extents(), geom.B(3, 5, 7, 9); got != want {
		t.Errorf("Extents() = %v, want %v", got, want)
	}
	if moved.Winding(4, 6) == 0 || moved.Winding(1, 1) != 0 {
		t.Error("translated winding wrong")
	}
}
