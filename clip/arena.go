// Package clip implements device-space clips: a reduced set of boxes, a
// cached pixel region and a residual chain of arbitrary clip paths.
//
// Clips are allocated from an Arena, which owns the node pools. A nil
// *Clip means "no clip" and every function accepts it. The all-clipped
// clip is a shared sentinel, compared by identity through IsAllClipped.
//
// Operations that return a *Clip take ownership of their input clip: the
// input must not be used afterwards unless it is the returned value.
// Clip construction never reports errors; any failure degrades the clip
// to all-clipped, which always draws nothing.
//
// An Arena and the clips it hands out are not safe for concurrent use.
// Clip path nodes are reference counted atomically and immutable once
// built, so chains may be shared between clips.
package clip

import (
	"log/slog"

	"github.com/gogpu/ggclip"
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/internal/pool"
)

// Arena owns the pools clips and clip path nodes are carved from.
type Arena struct {
	clips *pool.FreePool[Clip]
	paths *pool.FreePool[clipPath]
	opts  ggclip.Options
}

// Stats describes arena occupancy.
type Stats struct {
	Clips     int // clips handed out and not destroyed
	Paths     int // live clip path nodes
	ClipSlabs int
	PathSlabs int
}

// NewArena creates an arena configured by opts.
func NewArena(opts ...ggclip.Option) *Arena {
	o := ggclip.NewOptions(opts...)
	a := &Arena{
		clips: pool.New[Clip](o.SlabSize, o.MaxSlabs),
		paths: pool.New[clipPath](o.SlabSize, o.MaxSlabs),
		opts:  o,
	}
	a.clips.OnGrow = func(slab, nodes int) {
		a.log().Debug("clip: pool grew", "pool", "clips", "slab", slab, "nodes", nodes)
	}
	a.paths.OnGrow = func(slab, nodes int) {
		a.log().Debug("clip: pool grew", "pool", "paths", "slab", slab, "nodes", nodes)
	}
	return a
}

func (a *Arena) log() *slog.Logger {
	return a.opts.Log()
}

// Reset releases every slab. Clips handed out before Reset remain valid
// for their holders but are no longer recycled.
func (a *Arena) Reset() {
	a.clips.Reset()
	a.paths.Reset()
}

// Stats reports the current occupancy of the arena's pools.
func (a *Arena) Stats() Stats {
	c, p := a.clips.Stats(), a.paths.Stats()
	return Stats{
		Clips:     c.InUse(),
		Paths:     p.InUse(),
		ClipSlabs: c.Slabs,
		PathSlabs: p.Slabs,
	}
}

// Options returns the arena configuration.
func (a *Arena) Options() ggclip.Options { return a.opts }

// create allocates an unbounded clip with no boxes and no path.
func (a *Arena) create() (*Clip, error) {
	c, err := a.clips.Get()
	if err != nil {
		return nil, err
	}
	c.arena = a
	c.extents = geom.Unbounded
	return c, nil
}

// Create returns a new unbounded clip, or the all-clipped clip when the
// arena is exhausted.
func (a *Arena) Create() *Clip {
	c, err := a.create()
	if err != nil {
		return a.degrade(nil, "create", err)
	}
	return c
}

// AllClipped returns the all-clipped sentinel.
func (a *Arena) AllClipped() *Clip { return allClipped }

// setAllClipped releases c and returns the all-clipped sentinel.
func (a *Arena) setAllClipped(c *Clip) *Clip {
	a.Destroy(c)
	return allClipped
}

// degrade releases c after a failure and returns the all-clipped sentinel.
func (a *Arena) degrade(c *Clip, op string, err error) *Clip {
	a.log().Debug("clip: degraded to all-clipped", "op", op, "err", err)
	return a.setAllClipped(c)
}

// Destroy returns c and its references to the arena. Nil and the
// all-clipped clip are ignored.
func (a *Arena) Destroy(c *Clip) {
	if c == nil || c.IsAllClipped() {
		return
	}
	if c.path != nil {
		a.destroyPath(c.path)
	}
	a.clips.Put(c)
}

// Copy returns an independent clip with the same boxes, sharing the path
// chain and region of c.
func (a *Arena) Copy(c *Clip) *Clip {
	if c == nil || c.IsAllClipped() {
		return c
	}
	cp, err := a.create()
	if err != nil {
		return a.degrade(nil, "copy", err)
	}
	if c.path != nil {
		cp.path = reference(c.path)
	}
	cp.boxes = append([]geom.Box(nil), c.boxes...)
	cp.extents = c.extents
	cp.region = c.region
	cp.isRegion = c.isRegion
	return cp
}

// CopyPath returns a clip with the extents and path chain of c but no
// boxes.
func (a *Arena) CopyPath(c *Clip) *Clip {
	if c == nil || c.IsAllClipped() {
		return c
	}
	cp, err := a.create()
	if err != nil {
		return a.degrade(nil, "copy path", err)
	}
	cp.extents = c.extents
	if c.path != nil {
		cp.path = reference(c.path)
	}
	return cp
}

// CopyRegion returns a path-free clip whose boxes are those of c rounded
// out to whole pixels, flagged as a region. Boxes that overlap after
// rounding are merged so the result stays disjoint.
func (a *Arena) CopyRegion(c *Clip) *Clip {
	if c == nil || c.IsAllClipped() {
		return c
	}
	cp, err := a.create()
	if err != nil {
		return a.degrade(nil, "copy region", err)
	}
	cp.extents = c.extents
	cp.boxes = make([]geom.Box, len(c.boxes))
	aligned := true
	for i, b := range c.boxes {
		cp.boxes[i] = geom.FromRectangle(b.RoundOut())
		aligned = aligned && cp.boxes[i] == b
	}
	if !aligned && len(cp.boxes) > 1 {
		cp.boxes = geom.Union(cp.boxes)
	}
	cp.region = c.region
	cp.isRegion = true
	return cp
}

// FromBoxes builds a path-free clip from boxes, which must be disjoint.
func (a *Arena) FromBoxes(boxes []geom.Box) *Clip {
	c, err := a.create()
	if err != nil {
		return a.degrade(nil, "from boxes", err)
	}
	if len(boxes) == 0 {
		return a.setAllClipped(c)
	}
	c.boxes = append([]geom.Box(nil), boxes...)
	c.extents = geom.Extents(boxes).RoundOut()
	return c
}
