// Package factory holds the cached model factory: the stateful callable that
// memoizes model construction per schema name.
package factory

import (
	"sync"

	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

// Cached wraps a build function with a per-instance, unbounded cache. Each
// distinct name triggers at most one build for the lifetime of the factory;
// repeat calls return the identical *Model. The cache is owned by the
// instance, so separate factories never share state.
type Cached struct {
	mu      sync.Mutex
	base    *pkgmodel.Base
	schemas pkgopenapi.SchemaIndex
	build   pkgmodel.BuildFunc
	cache   map[string]*pkgmodel.Model
}

// Ensure the implementation satisfies the public interface.
var _ pkgmodel.Factory = (*Cached)(nil)

// New constructs a factory bound to one (base, schemas) pair. base may be nil
// when callers only want descriptors without registry bookkeeping.
func New(base *pkgmodel.Base, schemas pkgopenapi.SchemaIndex, build pkgmodel.BuildFunc) *Cached {
	return &Cached{
		base:    base,
		schemas: schemas,
		build:   build,
		cache:   make(map[string]*pkgmodel.Model),
	}
}

// Model returns the model for the named schema, building and registering it
// on first use. The mutex covers the whole check-and-populate step so
// concurrent callers for the same name cannot build twice, which would be
// rejected by the base's duplicate-table check. Build errors are returned
// unchanged and are not cached; a failed name may be retried.
func (c *Cached) Model(name string) (*pkgmodel.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.cache[name]; ok {
		return m, nil
	}

	m, err := c.build(name, c.schemas)
	if err != nil {
		return nil, err
	}
	if c.base != nil {
		if err := c.base.Register(m); err != nil {
			return nil, err
		}
	}

	c.cache[name] = m
	return m, nil
}
