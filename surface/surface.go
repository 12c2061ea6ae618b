// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
	"github.com/gogpu/ggclip/pattern"
	"github.com/gogpu/ggclip/region"
)

var (
	// ErrInvalidDimensions is returned when a surface would have no pixels.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrClosed is returned when drawing to a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrFormat is returned when an image has a pixel format other than A8.
	ErrFormat = errors.New("surface: unsupported format")

	// ErrUnsupportedClip is returned for a clip that is neither a region
	// nor able to render its own coverage.
	ErrUnsupportedClip = errors.New("surface: unsupported clip")
)

// Content describes which channels a surface stores.
type Content uint8

const (
	ContentAlpha Content = iota
	ContentColor
	ContentColorAlpha
)

func (c Content) String() string {
	switch c {
	case ContentAlpha:
		return "alpha"
	case ContentColor:
		return "color"
	case ContentColorAlpha:
		return "color-alpha"
	default:
		return "unknown"
	}
}

// Clip is the view of a clip a surface needs to bound drawing. A nil Clip
// means no clipping.
type Clip interface {
	IsAllClipped() bool
	Extents() image.Rectangle
	IsRegion() bool
	Region() *region.Region
}

// CoverageClip is a Clip that can rasterize its own coverage. Surfaces use
// it when the clip is not a region.
type CoverageClip interface {
	Clip
	Coverage(bounds image.Rectangle) (*image.Alpha, error)
}

// Surface is a drawing target in device space.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Extents returns the device rectangle covered by the surface.
	Extents() image.Rectangle

	Content() Content

	// Err returns the error the surface was created in, if any.
	Err() error

	Paint(op Operator, src pattern.Pattern, clip Clip) error
	Mask(op Operator, src, mask pattern.Pattern, clip Clip) error
	Fill(op Operator, src pattern.Pattern, p *path.Path, rule geom.FillRule,
		tolerance float64, aa geom.Antialias, clip Clip) error
	Stroke(op Operator, src pattern.Pattern, p *path.Path, style path.StrokeStyle,
		ctm geom.Matrix, tolerance float64, aa geom.Antialias, clip Clip) error

	// Close releases the surface. Close is idempotent.
	Close() error
}
