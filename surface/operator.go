// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "github.com/gogpu/ggclip/internal/blend"

// Operator is a compositing operator.
type Operator uint8

const (
	OperatorClear Operator = iota
	OperatorSource
	OperatorOver
	OperatorIn
	OperatorOut
	OperatorAtop
	OperatorDest
	OperatorDestOver
	OperatorDestIn
	OperatorDestOut
	OperatorDestAtop
	OperatorXor
	OperatorAdd
	OperatorSaturate
	OperatorMultiply
	OperatorScreen
	OperatorOverlay
	OperatorDarken
	OperatorLighten
	OperatorColorDodge
	OperatorColorBurn
	OperatorHardLight
	OperatorSoftLight
	OperatorDifference
	OperatorExclusion
	OperatorHue
	OperatorSaturation
	OperatorColor
	OperatorLuminosity
)

var operatorNames = [...]string{
	"CLEAR", "SOURCE", "OVER", "IN", "OUT", "ATOP",
	"DEST", "DEST_OVER", "DEST_IN", "DEST_OUT", "DEST_ATOP",
	"XOR", "ADD", "SATURATE",
	"MULTIPLY", "SCREEN", "OVERLAY", "DARKEN", "LIGHTEN",
	"COLOR_DODGE", "COLOR_BURN", "HARD_LIGHT", "SOFT_LIGHT",
	"DIFFERENCE", "EXCLUSION", "HSL_HUE", "HSL_SATURATION",
	"HSL_COLOR", "HSL_LUMINOSITY",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "UNKNOWN"
}

// Bound records which inputs limit the pixels an operator can change.
type Bound uint8

const (
	// BoundBySource: pixels where the source is transparent are unchanged.
	BoundBySource Bound = 1 << iota
	// BoundByMask: pixels outside the mask are unchanged.
	BoundByMask
)

// BoundedBy reports which inputs bound op. An operator bounded by neither
// modifies the destination everywhere inside the clip.
func (op Operator) BoundedBy() Bound {
	switch op {
	case OperatorClear, OperatorSource:
		return BoundByMask
	case OperatorOut, OperatorIn, OperatorDestIn, OperatorDestAtop:
		return 0
	}
	return BoundByMask | BoundBySource
}

// IsBounded reports whether op is bounded by its source or its mask.
func (op Operator) IsBounded() bool {
	return op.BoundedBy() != 0
}

// interpolates reports whether the mask weights the result of op rather
// than attenuating its source.
func (op Operator) interpolates() bool {
	return op == OperatorClear || op == OperatorSource
}

// blendMode maps op onto the alpha-only operator set. Separable and
// non-separable blend modes all produce the source-over alpha.
func (op Operator) blendMode() blend.BlendMode {
	switch op {
	case OperatorClear:
		return blend.BlendClear
	case OperatorSource:
		return blend.BlendSource
	case OperatorIn:
		return blend.BlendSourceIn
	case OperatorOut:
		return blend.BlendSourceOut
	case OperatorAtop:
		return blend.BlendSourceAtop
	case OperatorDest:
		return blend.BlendDestination
	case OperatorDestOver:
		return blend.BlendDestinationOver
	case OperatorDestIn:
		return blend.BlendDestinationIn
	case OperatorDestOut:
		return blend.BlendDestinationOut
	case OperatorDestAtop:
		return blend.BlendDestinationAtop
	case OperatorXor:
		return blend.BlendXor
	case OperatorAdd, OperatorSaturate:
		return blend.BlendPlus
	}
	return blend.BlendSourceOver
}
