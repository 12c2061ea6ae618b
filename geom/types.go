package geom

// FillRule selects how path winding decides what is inside a shape.
type FillRule int

const (
	// Winding treats any non-zero winding number as inside.
	Winding FillRule = iota
	// EvenOdd treats odd winding numbers as inside.
	EvenOdd
)

// Inside reports whether winding number w is inside under the rule.
func (r FillRule) Inside(w int) bool {
	if r == EvenOdd {
		return w&1 != 0
	}
	return w != 0
}

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case Winding:
		return "winding"
	case EvenOdd:
		return "even-odd"
	default:
		return "unknown"
	}
}

// Antialias selects how shape edges are sampled.
type Antialias int

const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasGray
	AntialiasSubpixel
	AntialiasFast
	AntialiasGood
	AntialiasBest
)

// String returns the antialias mode name.
func (a Antialias) String() string {
	switch a {
	case AntialiasDefault:
		return "default"
	case AntialiasNone:
		return "none"
	case AntialiasGray:
		return "gray"
	case AntialiasSubpixel:
		return "subpixel"
	case AntialiasFast:
		return "fast"
	case AntialiasGood:
		return "good"
	case AntialiasBest:
		return "best"
	default:
		return "unknown"
	}
}
