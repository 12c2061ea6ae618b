// Package pool provides a slab-backed free pool for fixed-size nodes.
package pool

import "errors"

// ErrExhausted is returned by Get when a new slab would exceed the
// pool's slab limit.
var ErrExhausted = errors.New("pool: slab limit reached")

// FreePool recycles nodes of type T. Nodes are carved out of slabs; the
// first slab holds slabSize nodes and every following slab doubles. Put
// pushes a node onto a free list without releasing memory; only Reset
// drops the slabs.
//
// Thread safety: FreePool is not safe for concurrent use. Owners must
// confine a pool to one goroutine or guard it with their own lock.
type FreePool[T any] struct {
	free     []*T
	slabs    [][]T
	current  []T // unused tail of the newest slab
	next     int // size of the next slab
	first    int
	maxSlabs int

	// OnGrow is called after a new slab is allocated.
	OnGrow func(slab, nodes int)
}

// New creates a pool whose first slab holds slabSize nodes. maxSlabs
// bounds the number of slabs; 0 means unlimited.
func New[T any](slabSize, maxSlabs int) *FreePool[T] {
	if slabSize <= 0 {
		slabSize = 1
	}
	return &FreePool[T]{next: slabSize, first: slabSize, maxSlabs: maxSlabs}
}

// Get returns a zeroed node, reusing a freed one when available.
func (p *FreePool[T]) Get() (*T, error) {
	if n := len(p.free); n > 0 {
		node := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return node, nil
	}
	if len(p.current) == 0 {
		if err := p.grow(); err != nil {
			return nil, err
		}
	}
	node := &p.current[0]
	p.current = p.current[1:]
	return node, nil
}

func (p *FreePool[T]) grow() error {
	if p.maxSlabs > 0 && len(p.slabs) >= p.maxSlabs {
		return ErrExhausted
	}
	slab := make([]T, p.next)
	p.slabs = append(p.slabs, slab)
	p.current = slab
	p.next *= 2
	if p.OnGrow != nil {
		p.OnGrow(len(p.slabs), len(slab))
	}
	return nil
}

// Put zeroes node and returns it to the free list. Nil is ignored.
func (p *FreePool[T]) Put(node *T) {
	if node == nil {
		return
	}
	var zero T
	*node = zero
	p.free = append(p.free, node)
}

// Reset drops every slab and free node. Nodes handed out before Reset
// stay valid for their holders but are never recycled.
func (p *FreePool[T]) Reset() {
	p.free = nil
	p.slabs = nil
	p.current = nil
	p.next = p.first
}

// Stats describes pool occupancy.
type Stats struct {
	Slabs    int // allocated slabs
	Capacity int // nodes across all slabs
	Free     int // nodes on the free list
	Unused   int // nodes never handed out from the newest slab
}

// InUse returns the number of nodes currently handed out.
func (s Stats) InUse() int {
	return s.Capacity - s.Free - s.Unused
}

// Stats reports the current occupancy.
func (p *FreePool[T]) Stats() Stats {
	s := Stats{Slabs: len(p.slabs), Free: len(p.free), Unused: len(p.current)}
	for _, slab := range p.slabs {
		s.Capacity += len(slab)
	}
	return s
}
