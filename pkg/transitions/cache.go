package transitions

import (
	"context"
	"sync/atomic"
)

// BuildFunc produces a catalog from the application's API descriptor.
type BuildFunc func(ctx context.Context) (*Catalog, error)

// Cache owns the per-application-instance catalog, built lazily on the first
// resolution request. The check-then-build sequence is deliberately not lock
// protected: construction is a pure function of a static descriptor, so
// concurrent first requests can at worst duplicate the build and store
// equivalent tables. Readers never block on a build in progress.
type Cache struct {
	build   BuildFunc
	current atomic.Pointer[Catalog]
}

// NewCache wraps a build function in a lazy cache.
func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build}
}

// Get returns the cached catalog, building it on first use.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	if catalog := c.current.Load(); catalog != nil {
		return catalog, nil
	}

	catalog, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.current.Store(catalog)
	return catalog, nil
}

// Invalidate drops the cached catalog so the next Get rebuilds it. Intended
// for tests and descriptor reloads.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}
