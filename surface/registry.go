// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"sort"
	"sync"
)

// Options describes a surface to create.
type Options struct {
	// Bounds is the device rectangle the surface covers. Surfaces are
	// device positioned: Bounds.Min need not be the origin.
	Bounds image.Rectangle

	// Opaque starts the surface fully covered instead of transparent.
	Opaque bool
}

// Factory creates a surface for opts.
type Factory func(opts Options) (Surface, error)

// RegistryEntry is a registered surface factory.
type RegistryEntry struct {
	Name string

	// Priority orders factories for New; higher is preferred.
	Priority int

	Factory Factory

	// Available reports whether the factory can create surfaces now.
	Available func() bool
}

var (
	// ErrNoFactory is returned by New when no factory is available.
	ErrNoFactory = errors.New("surface: no factory available")
)

// FactoryNotFoundError is returned for an unregistered factory name.
type FactoryNotFoundError struct {
	Name string
}

func (e *FactoryNotFoundError) Error() string {
	return "surface: factory not found: " + e.Name
}

// FactoryUnavailableError is returned for a registered factory whose
// Available func reports false.
type FactoryUnavailableError struct {
	Name string
}

func (e *FactoryUnavailableError) Error() string {
	return "surface: factory unavailable: " + e.Name
}

// Registry maps names to surface factories. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

var defaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds factory to the default registry under name, replacing any
// previous entry. A nil available means always available.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Names returns the available names of the default registry, preferred
// first.
func Names() []string { return defaultRegistry.Names() }

// New creates a surface from the most preferred available factory of the
// default registry.
func New(opts Options) (Surface, error) { return defaultRegistry.New(opts) }

// NewByName creates a surface with the named factory of the default
// registry.
func NewByName(name string, opts Options) (Surface, error) {
	return defaultRegistry.NewByName(name, opts)
}

func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return RegistryEntry{}, false
	}
	return *e, true
}

// Names returns the names of the available factories, highest priority
// first; equal priorities sort by name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if e.Available() {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.entries[names[i]].Priority, r.entries[names[j]].Priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// New tries the available factories in priority order and returns the
// first surface created, or the last error.
func (r *Registry) New(opts Options) (Surface, error) {
	err := ErrNoFactory
	for _, name := range r.Names() {
		var s Surface
		if s, err = r.NewByName(name, opts); err == nil {
			return s, nil
		}
	}
	return nil, err
}

func (r *Registry) NewByName(name string, opts Options) (Surface, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, &FactoryNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &FactoryUnavailableError{Name: name}
	}
	return e.Factory(opts)
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		s, err := NewScratch(opts.Bounds, opts.Opaque)
		if err != nil {
			return nil, err
		}
		return s, nil
	}, nil)
}
