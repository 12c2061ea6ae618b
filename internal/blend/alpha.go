// Package blend implements Porter-Duff compositing on alpha-only (A8)
// pixels.
//
// Values are coverage in the range 0-255. With no colour channels every
// separable or non-separable blend mode reduces to the alpha term of
// source-over, so only the Porter-Duff family plus saturating add is
// distinguished here.
package blend

// BlendMode selects an alpha compositing operation.
type BlendMode uint8

const (
	BlendClear           BlendMode = iota // 0
	BlendSource                           // Sa
	BlendDestination                      // Da
	BlendSourceOver                       // Sa + Da*(1-Sa)
	BlendDestinationOver                  // Sa*(1-Da) + Da
	BlendSourceIn                         // Sa*Da
	BlendDestinationIn                    // Da*Sa
	BlendSourceOut                        // Sa*(1-Da)
	BlendDestinationOut                   // Da*(1-Sa)
	BlendSourceAtop                       // Da
	BlendDestinationAtop                  // Sa
	BlendXor                              // Sa*(1-Da) + Da*(1-Sa)
	BlendPlus                             // min(Sa + Da, 255)
)

// AlphaFunc combines source and destination alpha.
type AlphaFunc func(sa, da byte) byte

// Func returns the alpha function for mode. Unknown modes composite
// source-over.
func Func(mode BlendMode) AlphaFunc {
	switch mode {
	case BlendClear:
		return func(_, _ byte) byte { return 0 }
	case BlendSource, BlendDestinationAtop:
		return func(sa, _ byte) byte { return sa }
	case BlendDestination, BlendSourceAtop:
		return func(_, da byte) byte { return da }
	case BlendSourceIn, BlendDestinationIn:
		return MulDiv255
	case BlendSourceOut:
		return func(sa, da byte) byte { return MulDiv255(sa, 255-da) }
	case BlendDestinationOut:
		return func(sa, da byte) byte { return MulDiv255(da, 255-sa) }
	case BlendXor:
		return func(sa, da byte) byte {
			return AddClamp(MulDiv255(sa, 255-da), MulDiv255(da, 255-sa))
		}
	case BlendPlus:
		return AddClamp
	default:
		return sourceOver
	}
}

// sourceOver is symmetric for alpha, so it also serves destination-over.
func sourceOver(sa, da byte) byte {
	return AddClamp(sa, MulDiv255(da, 255-sa))
}

// MulDiv255 returns a*b/255 rounded to nearest without a division.
func MulDiv255(a, b byte) byte {
	t := uint32(a)*uint32(b) + 128
	return byte((t + t>>8) >> 8)
}

// AddClamp adds two bytes, saturating at 255.
func AddClamp(a, b byte) byte {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return byte(s)
}

// Lerp returns d + (r-d)*t/255: t of the way from d to r.
func Lerp(d, r, t byte) byte {
	switch t {
	case 0:
		return d
	case 255:
		return r
	}
	return AddClamp(MulDiv255(r, t), MulDiv255(d, 255-t))
}

// Composite applies f to one pixel: the source is attenuated by the mask
// coverage m, then the result is blended back over d by the clip
// coverage c.
func Composite(f AlphaFunc, sa, m, c, da byte) byte {
	if c == 0 {
		return da
	}
	return Lerp(da, f(MulDiv255(sa, m), da), c)
}

// Span composites src (uniform alpha sa) through mask and clip rows onto
// dst. Nil mask or clip rows mean full coverage.
func Span(f AlphaFunc, dst []byte, sa byte, mask, clip []byte) {
	for i, da := range dst {
		m, c := byte(255), byte(255)
		if mask != nil {
			m = mask[i]
		}
		if clip != nil {
			c = clip[i]
		}
		dst[i] = Composite(f, sa, m, c, da)
	}
}

// CompositeCoverage is Composite for operators that treat the mask as a
// coverage weight rather than attenuating the source: the blended result
// is interpolated over d by mask and clip together.
func CompositeCoverage(f AlphaFunc, sa, m, c, da byte) byte {
	return Lerp(da, f(sa, da), MulDiv255(m, c))
}
