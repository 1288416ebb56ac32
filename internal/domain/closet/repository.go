package closet

import "context"

// Repository encapsulates clothing item persistence.
type Repository interface {
	Insert(ctx context.Context, item Item) error
	FindByID(ctx context.Context, id string) (Item, bool, error)
	FindByPhoto(ctx context.Context, photo string) (Item, bool, error)
	FindByIDs(ctx context.Context, ids []string) ([]Item, error)
	List(ctx context.Context, filter Filter) ([]Item, error)
	UpdatePhoto(ctx context.Context, id, photo string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IDRegistry reserves generated ids so concurrent creations can never
// be handed the same one.
type IDRegistry interface {
	// Reserve returns true when the id was absent and is now held by
	// the caller.
	Reserve(ctx context.Context, id string) (bool, error)
}

// ImageChecker probes whether a URL points at a reachable image. A
// returned error means the probe itself could not run, not that the
// URL is bad.
type ImageChecker interface {
	IsImageURL(ctx context.Context, rawURL string) (bool, error)
}

// OutfitPurger removes every outfit whose photo list contains the
// given photo and reports the ids it removed.
type OutfitPurger interface {
	DeleteByPhoto(ctx context.Context, photo string) ([]string, error)
}

// RatingPurger removes the ratings paired with deleted outfits.
type RatingPurger interface {
	DeleteMany(ctx context.Context, ids []string) error
}
