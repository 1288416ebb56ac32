package ratingrepo

import (
	"context"
	"sync"

	"github.com/yanqian/closet-keeper/internal/domain/rating"
)

// MemoryRepository is an in-memory rating.Repository used for
// tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	ratings map[string]rating.Rating
	order   []string
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{ratings: make(map[string]rating.Rating)}
}

// Create implements rating.Repository. A recreated rating starts with
// an empty score list regardless of any prior record under the id.
func (r *MemoryRepository) Create(_ context.Context, outfitID string, pictures []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ratings[outfitID]; !exists {
		r.order = append(r.order, outfitID)
	}
	r.ratings[outfitID] = rating.Rating{
		ID:       outfitID,
		Pictures: append([]string(nil), pictures...),
	}
	return nil
}

// FindByID implements rating.Repository.
func (r *MemoryRepository) FindByID(_ context.Context, outfitID string) (rating.Rating, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.ratings[outfitID]
	return cloneRating(rec), ok, nil
}

// List implements rating.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]rating.Rating, error) {
	return r.list(func(rating.Rating) bool { return true })
}

// ListScored implements rating.Repository.
func (r *MemoryRepository) ListScored(_ context.Context) ([]rating.Rating, error) {
	return r.list(func(rec rating.Rating) bool { return len(rec.Scores) > 0 })
}

func (r *MemoryRepository) list(keep func(rating.Rating) bool) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]rating.Rating, 0, len(r.order))
	for _, id := range r.order {
		if rec := r.ratings[id]; keep(rec) {
			out = append(out, cloneRating(rec))
		}
	}
	return out, nil
}

// AppendScore implements rating.Repository. Append and average
// recompute happen under one lock, mirroring a store-side
// find-and-update.
func (r *MemoryRepository) AppendScore(_ context.Context, outfitID string, score int) (rating.Rating, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.ratings[outfitID]
	if !ok {
		return rating.Rating{}, false, nil
	}
	rec.Scores = append(rec.Scores, score)
	sum := 0
	for _, s := range rec.Scores {
		sum += s
	}
	rec.Average = float64(sum) / float64(len(rec.Scores))
	r.ratings[outfitID] = rec
	return cloneRating(rec), true, nil
}

// UpdatePictures implements rating.Repository with upsert semantics.
func (r *MemoryRepository) UpdatePictures(_ context.Context, outfitID string, pictures []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.ratings[outfitID]
	if !ok {
		rec = rating.Rating{ID: outfitID}
		r.order = append(r.order, outfitID)
	}
	rec.Pictures = append([]string(nil), pictures...)
	r.ratings[outfitID] = rec
	return nil
}

// Delete implements rating.Repository.
func (r *MemoryRepository) Delete(_ context.Context, outfitID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[outfitID]; !ok {
		return false, nil
	}
	r.remove(outfitID)
	return true, nil
}

// DeleteMany implements rating.Repository and closet.RatingPurger.
func (r *MemoryRepository) DeleteMany(_ context.Context, outfitIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range outfitIDs {
		r.remove(id)
	}
	return nil
}

func (r *MemoryRepository) remove(outfitID string) {
	delete(r.ratings, outfitID)
	for i, existing := range r.order {
		if existing == outfitID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func cloneRating(rec rating.Rating) rating.Rating {
	rec.Scores = append([]int(nil), rec.Scores...)
	rec.Pictures = append([]string(nil), rec.Pictures...)
	return rec
}

var _ rating.Repository = (*MemoryRepository)(nil)
