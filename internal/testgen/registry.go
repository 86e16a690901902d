package testgen

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a live object (a provider page model, a backend
// client) from an inventory item.
type Constructor func(key string, item Item) (any, error)

// UnknownTypeError is returned when an inventory item's type tag has no
// registered constructor.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no constructor registered for inventory type %q", e.Type)
}

// Registry maps inventory type tags to constructors. Registration happens
// during setup; lookups afterwards are read-only and concurrency-safe.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

func (r *Registry) Register(typeTag string, construct Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[typeTag] = construct
}

// New constructs the live object for the item, dispatching on its type
// tag. An unregistered tag is an explicit error, not a lookup panic.
func (r *Registry) New(key string, item Item) (any, error) {
	r.mu.RLock()
	construct, ok := r.constructors[item.Type()]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{Type: item.Type()}
	}
	return construct(key, item)
}

// Types returns the registered type tags, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
