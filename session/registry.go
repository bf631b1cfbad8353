package session

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps engine provider names to factories. The loader asks it to
// construct the engine for a bundle's graph definition.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under the given provider name.
func (r *Registry) Register(provider string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, provider)
	}

	r.factories[provider] = f
	return nil
}

// New constructs an engine via the named provider's factory.
func (r *Registry) New(provider string, graphDef []byte, cfg *Config) (Engine, error) {
	r.mu.RLock()
	f, ok := r.factories[provider]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, provider)
	}

	return f(graphDef, cfg)
}

// Providers returns the registered provider names, sorted.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DefaultRegistry is the process-wide engine registry used when a loader
// is not handed an explicit one.
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(provider string, f Factory) error {
	return DefaultRegistry.Register(provider, f)
}
