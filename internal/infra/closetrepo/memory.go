package closetrepo

import (
	"context"
	"sync"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
)

// MemoryRepository is an in-memory closet.Repository used for
// tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	items   map[string]closet.Item
	byPhoto map[string]string
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:   make(map[string]closet.Item),
		byPhoto: make(map[string]string),
	}
}

// Insert implements closet.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item closet.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	r.byPhoto[item.Photo] = item.ID
	return nil
}

// FindByID implements closet.Repository.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (closet.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok, nil
}

// FindByPhoto implements closet.Repository.
func (r *MemoryRepository) FindByPhoto(_ context.Context, photo string) (closet.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhoto[photo]
	if !ok {
		return closet.Item{}, false, nil
	}
	item, ok := r.items[id]
	return item, ok, nil
}

// FindByIDs implements closet.Repository. Duplicate ids collapse to a
// single resolved item, mirroring a set-based store query.
func (r *MemoryRepository) FindByIDs(_ context.Context, ids []string) ([]closet.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	out := make([]closet.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// List implements closet.Repository.
func (r *MemoryRepository) List(_ context.Context, filter closet.Filter) ([]closet.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]closet.Item, 0, len(r.items))
	for _, item := range r.items {
		if filter.Type != "" && string(item.Type) != filter.Type {
			continue
		}
		if filter.Color != "" && item.Color != filter.Color {
			continue
		}
		if filter.WaterProof != nil && item.WaterProof != *filter.WaterProof {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdatePhoto implements closet.Repository.
func (r *MemoryRepository) UpdatePhoto(_ context.Context, id, photo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	delete(r.byPhoto, item.Photo)
	item.Photo = photo
	r.items[id] = item
	r.byPhoto[photo] = id
	return true, nil
}

// Delete implements closet.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	delete(r.items, id)
	delete(r.byPhoto, item.Photo)
	return true, nil
}

var _ closet.Repository = (*MemoryRepository)(nil)
