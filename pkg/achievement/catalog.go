package achievement

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Catalog provides the list of achievement definitions.
// The order of the returned slice is the evaluation order.
type Catalog interface {
	GetAll(ctx context.Context) ([]Definition, error)
}

// StaticCatalog is an immutable in-process catalog.
// It is safe for concurrent reads from any number of evaluation passes.
type StaticCatalog struct {
	definitions []Definition
	byID        map[string]int
}

// NewStaticCatalog creates a catalog from definitions.
// Returns an error for invalid definitions or duplicate IDs.
func NewStaticCatalog(definitions []Definition) (*StaticCatalog, error) {
	c := &StaticCatalog{
		definitions: make([]Definition, 0, len(definitions)),
		byID:        make(map[string]int, len(definitions)),
	}

	for _, d := range definitions {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate achievement ID: %s", d.ID)
		}
		c.byID[d.ID] = len(c.definitions)
		c.definitions = append(c.definitions, d)
	}

	return c, nil
}

// GetAll returns a copy of all definitions in catalog order.
func (c *StaticCatalog) GetAll(ctx context.Context) ([]Definition, error) {
	out := make([]Definition, len(c.definitions))
	copy(out, c.definitions)
	return out, nil
}

// Get returns a definition by ID.
func (c *StaticCatalog) Get(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.definitions[i], true
}

// Count returns the number of definitions.
func (c *StaticCatalog) Count() int {
	return len(c.definitions)
}

// CachedCatalog keeps the first successful read of an underlying catalog in memory.
// The catalog is append-mostly, so there is no invalidation; a restart picks up changes.
type CachedCatalog struct {
	source Catalog

	mu     sync.RWMutex
	cached []Definition
	loaded bool
}

// NewCachedCatalog wraps source with an in-process cache.
func NewCachedCatalog(source Catalog) *CachedCatalog {
	return &CachedCatalog{source: source}
}

// GetAll returns the cached definitions, loading them on first use.
// Failed loads are not cached so the next pass retries.
func (c *CachedCatalog) GetAll(ctx context.Context) ([]Definition, error) {
	c.mu.RLock()
	if c.loaded {
		out := make([]Definition, len(c.cached))
		copy(out, c.cached)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		definitions, err := c.source.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		c.cached = definitions
		c.loaded = true
		logrus.Infof("cached achievement catalog with %d definitions", len(definitions))
	}

	out := make([]Definition, len(c.cached))
	copy(out, c.cached)
	return out, nil
}
