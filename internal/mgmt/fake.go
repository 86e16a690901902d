package mgmt

import (
	"context"
	"sync"
)

// Fake is an in-memory backend for tests.
type Fake struct {
	mu  sync.Mutex
	vms map[string]bool
}

var _ Backend = (*Fake)(nil)

func NewFake(vms ...string) *Fake {
	f := &Fake{vms: make(map[string]bool)}
	for _, vm := range vms {
		f.vms[vm] = true
	}
	return f
}

// AddVM simulates a VM appearing on the backend, e.g. provisioning
// completing.
func (f *Fake) AddVM(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vms[name] = true
}

func (f *Fake) DoesVMExist(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vms[name], nil
}

func (f *Fake) DeleteVM(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.vms, name)
	return nil
}
