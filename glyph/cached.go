package glyph

import (
	"github.com/gogpu/ggclip/geom"
	"github.com/gogpu/ggclip/internal/cache"
	"github.com/gogpu/ggclip/path"
)

// DefaultCacheSize is the number of glyphs a CachedFace keeps.
const DefaultCacheSize = 256

type cachedGlyph struct {
	bounds  geom.Box
	outline *path.Path // at origin (0, 0); nil until first drawn
}

// CachedFace memoizes the bounds and outlines of a face. Outlines are
// cached at the origin and translated to each glyph position, so cached
// runs may differ from direct outlines by the 26.6 rounding of the
// position.
type CachedFace struct {
	face  Face
	cache *cache.Cache[uint32, cachedGlyph]
}

// Compile-time interface check.
var _ Face = (*CachedFace)(nil)

// NewCachedFace wraps f with a cache of size glyphs. A size of 0 uses
// DefaultCacheSize.
func NewCachedFace(f Face, size int) *CachedFace {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &CachedFace{face: f, cache: cache.New[uint32, cachedGlyph](size)}
}

func (c *CachedFace) Antialias() geom.Antialias { return c.face.Antialias() }

func (c *CachedFace) Bounds(index uint32) (geom.Box, error) {
	if g, ok := c.cache.Get(index); ok {
		return g.bounds, nil
	}
	b, err := c.face.Bounds(index)
	if err != nil {
		return geom.Box{}, err
	}
	c.cache.Set(index, cachedGlyph{bounds: b})
	return b, nil
}

func (c *CachedFace) Outline(index uint32, x, y float64) (*path.Path, error) {
	g, ok := c.cache.Get(index)
	if !ok || g.outline == nil {
		if !ok {
			b, err := c.face.Bounds(index)
			if err != nil {
				return nil, err
			}
			g.bounds = b
		}
		p, err := c.face.Outline(index, 0, 0)
		if err != nil {
			return nil, err
		}
		g.outline = p
		c.cache.Set(index, g)
	}
	return g.outline.Translate(geom.Fixed(x), geom.Fixed(y)), nil
}

// Stats returns the cache statistics.
func (c *CachedFace) Stats() cache.Stats { return c.cache.Stats() }
