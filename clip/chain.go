package clip

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/path"
)

// clipPath is one node of a clip's residual path chain. The newest node
// is the head; prev points at the node applied before it. Nodes are
// immutable once linked and shared between clips by reference count.
type clipPath struct {
	path      *path.Path
	fillRule  geom.FillRule
	tolerance float64
	antialias geom.Antialias
	prev      *clipPath
	refs      atomic.Int32
}

// createPath allocates a node and pushes it as the new head of c's chain.
// The node takes over c's previous head reference.
func (a *Arena) createPath(c *Clip) (*clipPath, error) {
	n, err := a.paths.Get()
	if err != nil {
		return nil, err
	}
	n.refs.Store(1)
	n.prev = c.path
	c.path = n
	return n, nil
}

func reference(n *clipPath) *clipPath {
	if n.refs.Add(1) <= 1 {
		panic("clip: reference to a released clip path")
	}
	return n
}

// destroyPath drops one reference to n, releasing every node of the
// chain whose count reaches zero.
func (a *Arena) destroyPath(n *clipPath) {
	for n != nil {
		switch refs := n.refs.Add(-1); {
		case refs < 0:
			panic("clip: clip path released twice")
		case refs > 0:
			return
		}
		prev := n.prev
		a.paths.Put(n)
		n = prev
	}
}

// copyPathWithTranslation appends to c a translated copy of the chain
// ending at n, rebuilding the oldest node first so every new node's prev
// is its already rebuilt predecessor.
func (a *Arena) copyPathWithTranslation(c *Clip, n *clipPath, dx, dy fixed.Int26_6) (*Clip, error) {
	var nodes []*clipPath
	for ; n != nil; n = n.prev {
		nodes = append(nodes, n)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		src := nodes[i]
		dst, err := a.createPath(c)
		if err != nil {
			return c, fmt.Errorf("copy clip path: %w", err)
		}
		dst.path = src.path.Translate(dx, dy)
		dst.fillRule = src.fillRule
		dst.tolerance = src.tolerance
		dst.antialias = src.antialias
	}
	return c, nil
}

// oldestFirst returns the chain ending at n ordered from oldest to newest.
func oldestFirst(n *clipPath) []*clipPath {
	var nodes []*clipPath
	for ; n != nil; n = n.prev {
		nodes = append(nodes, n)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// PathInfo describes one residual clip path.
type PathInfo struct {
	Path      *path.Path
	FillRule  geom.FillRule
	Tolerance float64
	Antialias geom.Antialias
}

// Walk calls fn for each residual path of c, newest first, until fn
// returns false. The paths must not be modified.
func (c *Clip) Walk(fn func(PathInfo) bool) {
	if c == nil || c.IsAllClipped() {
		return
	}
	for n := c.path; n != nil; n = n.prev {
		if !fn(PathInfo{n.path, n.fillRule, n.tolerance, n.antialias}) {
			return
		}
	}
}

// NumPaths returns the length of c's residual path chain.
func (c *Clip) NumPaths() int {
	n := 0
	c.Walk(func(PathInfo) bool { n++; return true })
	return n
}
