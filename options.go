package ggclip

import (
	"log/slog"

	"github.com/gogpu/ggclip/geom"
)

// Default configuration values.
const (
	// DefaultTolerance is the flattening tolerance, in device pixels, used
	// when a clip has to be rebuilt from transformed geometry.
	DefaultTolerance = 0.1

	// DefaultSlabSize is the number of nodes in the first slab of a pool.
	DefaultSlabSize = 128
)

// Option configures an arena or drawing state during creation.
//
// Example:
//
//	arena := clip.NewArena(ggclip.WithSlabSize(32), ggclip.WithMaxSlabs(4))
type Option func(*Options)

// Options holds the resolved configuration. Zero values are replaced by
// defaults in NewOptions.
type Options struct {
	// SlabSize is the node count of the first pool slab; later slabs double.
	SlabSize int

	// MaxSlabs bounds the number of slabs a pool may allocate.
	// Zero means unlimited.
	MaxSlabs int

	// Tolerance is the flattening tolerance for rebuilt geometry.
	Tolerance float64

	// Antialias is the antialias mode applied to rebuilt geometry.
	Antialias geom.Antialias

	// Logger overrides the package logger for one arena. Nil uses Logger().
	Logger *slog.Logger
}

// NewOptions applies opts on top of the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		SlabSize:  DefaultSlabSize,
		Tolerance: DefaultTolerance,
		Antialias: geom.AntialiasDefault,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.SlabSize <= 0 {
		o.SlabSize = DefaultSlabSize
	}
	if o.MaxSlabs < 0 {
		o.MaxSlabs = 0
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// Log returns the configured logger, falling back to the package logger.
func (o Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}

// WithSlabSize sets the node count of the first pool slab.
func WithSlabSize(n int) Option {
	return func(o *Options) {
		o.SlabSize = n
	}
}

// WithMaxSlabs bounds how many slabs each pool may allocate. Once the
// bound is reached further allocations fail and clip operations degrade
// to all-clipped.
func WithMaxSlabs(n int) Option {
	return func(o *Options) {
		o.MaxSlabs = n
	}
}

// WithTolerance sets the flattening tolerance used for rebuilt geometry.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		o.Tolerance = t
	}
}

// WithAntialias sets the antialias mode used for rebuilt geometry.
func WithAntialias(aa geom.Antialias) Option {
	return func(o *Options) {
		o.Antialias = aa
	}
}

// WithLogger overrides the package logger for a single arena.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
