package rule

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps requirement types to their extractors.
// It provides thread-safe registration and lookup.
type Registry struct {
	extractors map[string]Extractor
	mu         sync.RWMutex
}

// NewRegistry creates a new empty requirement registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// Register adds an extractor for a requirement type.
// Returns an error if the type is already registered.
func (r *Registry) Register(requirementType string, extractor Extractor) error {
	if requirementType == "" {
		return fmt.Errorf("requirement type is empty")
	}
	if extractor == nil {
		return fmt.Errorf("extractor for requirement type %s is nil", requirementType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[requirementType]; exists {
		return fmt.Errorf("requirement type %s already registered", requirementType)
	}

	r.extractors[requirementType] = extractor
	return nil
}

// Get returns the extractor for a requirement type.
func (r *Registry) Get(requirementType string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[requirementType]
	return e, ok
}

// Supports reports whether a requirement type has a registered extractor.
func (r *Registry) Supports(requirementType string) bool {
	_, ok := r.Get(requirementType)
	return ok
}

// Types returns all registered requirement types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Strings(types)

	return types
}

// Count returns the number of registered requirement types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.extractors)
}
