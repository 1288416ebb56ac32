package rating

import "context"

// Repository encapsulates rating persistence. AppendScore is the one
// find-and-update operation in the system: the append and the average
// recompute happen atomically against the store.
type Repository interface {
	Create(ctx context.Context, outfitID string, pictures []string) error
	FindByID(ctx context.Context, outfitID string) (Rating, bool, error)
	List(ctx context.Context) ([]Rating, error)
	// ListScored returns only ratings that have at least one score.
	ListScored(ctx context.Context) ([]Rating, error)
	AppendScore(ctx context.Context, outfitID string, score int) (Rating, bool, error)
	UpdatePictures(ctx context.Context, outfitID string, pictures []string) error
	Delete(ctx context.Context, outfitID string) (bool, error)
	DeleteMany(ctx context.Context, outfitIDs []string) error
}
