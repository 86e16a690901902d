// Package mgmt talks to the management backends behind the console's
// providers. The framework only needs existence checks and cleanup; the
// heavy lifting stays in the backends themselves.
package mgmt

import (
	"context"
	"fmt"
	"sync"
)

// Backend is a provider's management system, used as the polling
// predicate for provisioning-completion waits and for cleaning up VMs a
// test created.
type Backend interface {
	DoesVMExist(ctx context.Context, name string) (bool, error)
	DeleteVM(ctx context.Context, name string) error
}

// Factory builds a backend client from a provider's inventory item.
type Factory func(key string, item map[string]any) (Backend, error)

// UnknownBackendError is returned when a provider's type tag has no
// registered backend factory.
type UnknownBackendError struct {
	Type string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("no management backend registered for provider type %q", e.Type)
}

// Registry maps provider type tags to backend factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(typeTag string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeTag] = factory
}

// New builds the backend for a provider item, dispatching on its type tag.
func (r *Registry) New(key string, item map[string]any) (Backend, error) {
	typeTag, _ := item["type"].(string)
	r.mu.RLock()
	factory, ok := r.factories[typeTag]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownBackendError{Type: typeTag}
	}
	return factory(key, item)
}
