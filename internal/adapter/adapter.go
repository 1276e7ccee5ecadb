// Package adapter populates catalogs by introspecting live databases.
//
// Adapters are the bridge between a running database and the in-memory
// catalog: they read table and column metadata and register it through
// the catalog's mutation API. The resolver itself never touches a
// connection.
package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/polyquery/polyquery/internal/catalog"
	"github.com/polyquery/polyquery/internal/logging"
)

// Adapter introspects one database into a catalog.
type Adapter interface {
	// Name returns the adapter identifier (e.g. "postgres", "sqlite").
	Name() string

	// Introspect reads the live schema and registers every discovered
	// table in cat.
	Introspect(ctx context.Context, cat *catalog.Catalog) error
}

// Options configures adapter construction.
type Options struct {
	DSN    string
	Logger logging.Logger
}

// Factory creates an Adapter instance.
type Factory func(opts Options) (Adapter, error)

var registry = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register adds an adapter factory under a driver name. Panics if the
// name is already taken.
func Register(name string, factory Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.factories[name]; exists {
		panic(fmt.Sprintf("adapter: driver %q already registered", name))
	}
	registry.factories[name] = factory
}

// New creates an Adapter for the named driver.
func New(name string, opts Options) (Adapter, error) {
	registry.mu.RLock()
	factory, exists := registry.factories[name]
	registry.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported adapter driver: %s", name)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return factory(opts)
}

// List returns the registered driver names.
func List() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	return names
}
