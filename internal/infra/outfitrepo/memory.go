package outfitrepo

import (
	"context"
	"sync"

	"github.com/yanqian/closet-keeper/internal/domain/outfit"
)

// MemoryRepository is an in-memory outfit.Repository used for
// tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	outfits map[string]outfit.Outfit
	order   []string
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{outfits: make(map[string]outfit.Outfit)}
}

// Insert implements outfit.Repository.
func (r *MemoryRepository) Insert(_ context.Context, o outfit.Outfit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.outfits[o.ID]; !exists {
		r.order = append(r.order, o.ID)
	}
	r.outfits[o.ID] = o
	return nil
}

// FindByID implements outfit.Repository.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (outfit.Outfit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.outfits[id]
	return o, ok, nil
}

// Update implements outfit.Repository.
func (r *MemoryRepository) Update(_ context.Context, o outfit.Outfit) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.outfits[o.ID]; !ok {
		return false, nil
	}
	r.outfits[o.ID] = o
	return true, nil
}

// Delete implements outfit.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.outfits[id]; !ok {
		return false, nil
	}
	delete(r.outfits, id)
	r.dropFromOrder(id)
	return true, nil
}

// Query implements outfit.Repository. Results come back in insertion
// order so repeated queries are deterministic.
func (r *MemoryRepository) Query(_ context.Context, spec outfit.QuerySpec) ([]outfit.Outfit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]outfit.Outfit, 0)
	for _, id := range r.order {
		o := r.outfits[id]
		if spec.ID != "" && o.ID != spec.ID {
			continue
		}
		if spec.Style != "" && string(o.Style) != spec.Style {
			continue
		}
		if spec.SuitableWeathers != "" && string(o.SuitableWeathers) != spec.SuitableWeathers {
			continue
		}
		if spec.Waterproof != nil && o.Waterproof != *spec.Waterproof {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// DeleteByPhoto implements closet.OutfitPurger: it removes every
// outfit whose photo list contains the photo and reports their ids.
func (r *MemoryRepository) DeleteByPhoto(_ context.Context, photo string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := make([]string, 0)
	for _, id := range append([]string(nil), r.order...) {
		o := r.outfits[id]
		for _, p := range o.OutfitPhoto {
			if p == photo {
				delete(r.outfits, id)
				r.dropFromOrder(id)
				removed = append(removed, id)
				break
			}
		}
	}
	return removed, nil
}

func (r *MemoryRepository) dropFromOrder(id string) {
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

var _ outfit.Repository = (*MemoryRepository)(nil)
