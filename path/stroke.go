package path

import (
	"math"

	"github.com/gogpu/ggclip/geom"
)

// LineCap specifies the shape of open subpath end points.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin specifies the shape at segment joins.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle describes a stroke in user space.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle returns a 2 unit wide butt-capped mitered stroke.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Width: 2, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
}

// MaxDistanceFromPath returns how far, in device space along each axis, the
// stroke outline can reach from the path. Miter joins only matter when the
// path has diagonal segments.
func (s StrokeStyle) MaxDistanceFromPath(ctm geom.Matrix, rectilinear bool) (dx, dy float64) {
	expansion := 0.5
	if s.Cap == CapSquare {
		expansion = math.Sqrt2 / 2
	}
	if s.Join == JoinMiter && !rectilinear && expansion < math.Sqrt2*s.MiterLimit {
		expansion = math.Sqrt2 * s.MiterLimit
	}
	expansion *= s.Width
	if ctm.HasUnityScale() {
		return expansion, expansion
	}
	return expansion * math.Hypot(ctm.A, ctm.D), expansion * math.Hypot(ctm.E, ctm.B)
}
