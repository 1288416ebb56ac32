package idregistry

import (
	"context"
	"sync"
)

// MemoryRegistry is an in-process reserve-if-absent registry used for
// tests/dev. The single mutex makes reservation atomic across
// concurrent creations.
type MemoryRegistry struct {
	mu       sync.Mutex
	reserved map[string]struct{}
}

// NewMemoryRegistry constructs an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{reserved: make(map[string]struct{})}
}

// Reserve returns true when the id was absent and is now held.
func (r *MemoryRegistry) Reserve(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.reserved[id]; taken {
		return false, nil
	}
	r.reserved[id] = struct{}{}
	return true, nil
}
