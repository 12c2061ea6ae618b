package geom

// Boxes accumulates boxes, optionally clipped to a set of limit boxes.
// The zero value is an empty, unlimited set.
type Boxes struct {
	items        []Box
	limits       []Box
	limitExtents Box
	aligned      bool
}

// NewBoxes returns an empty set with room for n boxes.
func NewBoxes(n int) *Boxes {
	return &Boxes{items: make([]Box, 0, n), aligned: true}
}

// BoxesOf wraps existing boxes. The slice is owned by the result.
func BoxesOf(items ...Box) *Boxes {
	b := &Boxes{items: items, aligned: true}
	for _, x := range items {
		b.aligned = b.aligned && x.IsPixelAligned()
	}
	return b
}

// Limit clips every subsequently added box to the union of limits.
// The limit boxes are expected to be disjoint.
func (b *Boxes) Limit(limits ...Box) {
	b.limits = limits
	if len(limits) == 0 {
		return
	}
	b.limitExtents = limits[0]
	for _, l := range limits[1:] {
		b.limitExtents = b.limitExtents.Union(l)
	}
}

// Add appends box. With AntialiasNone the box is snapped to pixels first.
// Empty boxes and boxes outside the limits are dropped.
func (b *Boxes) Add(aa Antialias, box Box) {
	if aa == AntialiasNone {
		box = box.RoundDown()
	}
	if box.IsEmpty() {
		return
	}
	if len(b.limits) == 0 {
		b.push(box)
		return
	}
	if !b.limitExtents.Overlaps(box) {
		return
	}
	for _, l := range b.limits {
		if r := box.Intersect(l); !r.IsEmpty() {
			b.push(r)
		}
	}
}

func (b *Boxes) push(box Box) {
	if len(b.items) == 0 {
		b.aligned = true
	}
	b.aligned = b.aligned && box.IsPixelAligned()
	b.items = append(b.items, box)
}

// Len returns the number of boxes.
func (b *Boxes) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// At returns the i-th box.
func (b *Boxes) At(i int) Box { return b.items[i] }

// Slice returns the boxes. The slice must not be modified.
func (b *Boxes) Slice() []Box {
	if b == nil {
		return nil
	}
	return b.items
}

// IsPixelAligned reports whether every box has integer coordinates.
func (b *Boxes) IsPixelAligned() bool {
	return b.Len() == 0 || b.aligned
}

// Clear removes all boxes but keeps the limits.
func (b *Boxes) Clear() {
	b.items = b.items[:0]
	b.aligned = true
}

// Extents returns the bounding box of the set, or the zero box if empty.
func (b *Boxes) Extents() Box {
	return Extents(b.Slice())
}

// Extents folds boxes into their bounding box.
func Extents(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	e := boxes[0]
	for _, x := range boxes[1:] {
		e = e.Union(x)
	}
	return e
}
