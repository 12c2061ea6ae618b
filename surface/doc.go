// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing targets clips are applied to.
//
// A Surface covers a device rectangle, which need not start at the
// origin, and accepts paint, mask, fill and stroke operations bounded by
// an optional Clip. The only implementation here is ImageSurface, an A8
// coverage buffer: clip materialization and composition only need
// coverage, so color channels are not stored.
//
// # Clips
//
// Drawing calls take a Clip. A region clip bounds drawing directly; any
// other clip must implement CoverageClip and is rendered to a coverage
// mask over the affected area first. A nil Clip means no clipping.
//
// # Operators
//
// Operator is the Porter-Duff and Cairo operator set. BoundedBy reports
// whether an operator leaves pixels outside its source or its mask
// untouched, which decides how far a clipped operation can reach.
//
// # Registry
//
// Surfaces can be created by name through a registry of factories:
//
//	s, err := surface.NewByName("image", surface.Options{
//	    Bounds: image.Rect(0, 0, 640, 480),
//	})
//
// The "image" factory creating ImageSurface is registered by default.
package surface
