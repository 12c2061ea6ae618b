package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix is a 2D affine transform:
//
//	| A B C |
//	| D E F |
//	| 0 0 1 |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation returns a pure translation.
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scaling returns a pure scale.
func Scaling(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotation returns a rotation by angle radians.
func Rotation(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ApplyDistance transforms the vector (dx, dy), ignoring translation.
func (m Matrix) ApplyDistance(dx, dy float64) (float64, float64) {
	return m.A*dx + m.B*dy, m.D*dx + m.E*dy
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	d := 1 / det
	return Matrix{
		A: m.E * d,
		B: -m.B * d,
		C: (m.B*m.F - m.C*m.E) * d,
		D: -m.D * d,
		E: m.A * d,
		F: (m.C*m.D - m.A*m.F) * d,
	}, true
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsIntegerTranslation reports whether m translates by whole pixels and
// returns the offset.
func (m Matrix) IsIntegerTranslation() (tx, ty int, ok bool) {
	if !m.IsTranslation() {
		return 0, 0, false
	}
	if m.C != math.Trunc(m.C) || m.F != math.Trunc(m.F) {
		return 0, 0, false
	}
	if m.C < MinInt || m.C > MaxInt || m.F < MinInt || m.F > MaxInt {
		return 0, 0, false
	}
	return int(m.C), int(m.F), true
}

// FixedTranslation returns the translation offset in 26.6 fixed point.
func (m Matrix) FixedTranslation() (fixed.Int26_6, fixed.Int26_6) {
	return Fixed(m.C), Fixed(m.F)
}

// HasUnityScale reports whether m preserves lengths along both axes.
func (m Matrix) HasUnityScale() bool {
	const eps = 1e-9
	if math.Abs(m.B) < eps && math.Abs(m.D) < eps {
		return math.Abs(math.Abs(m.A)-1) < eps && math.Abs(math.Abs(m.E)-1) < eps
	}
	if math.Abs(m.A) < eps && math.Abs(m.E) < eps {
		return math.Abs(math.Abs(m.B)-1) < eps && math.Abs(math.Abs(m.D)-1) < eps
	}
	return false
}

// TransformBounds returns the bounding box of the transformed rectangle
// (x0, y0)-(x1, y1).
func (m Matrix) TransformBounds(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		x, y := m.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

// ClampRect converts float bounds to an integer rectangle, rounding
// outward and clamping to device space.
func ClampRect(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(clampInt(math.Floor(x0)), clampInt(math.Floor(y0)),
		clampInt(math.Ceil(x1)), clampInt(math.Ceil(y1)))
}

func clampInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v < MinInt:
		return MinInt
	case v > MaxInt:
		return MaxInt
	}
	return int(v)
}
