package outfit

import (
	"context"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	"github.com/yanqian/closet-keeper/internal/domain/weather"
)

// QuerySpec is the persistence-level filter built by the service. The
// weather-gated query always pins Waterproof and SuitableWeathers.
type QuerySpec struct {
	ID               string
	Style            string
	SuitableWeathers string
	Waterproof       *bool
}

// Repository encapsulates outfit persistence.
type Repository interface {
	Insert(ctx context.Context, o Outfit) error
	FindByID(ctx context.Context, id string) (Outfit, bool, error)
	Update(ctx context.Context, o Outfit) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Query(ctx context.Context, spec QuerySpec) ([]Outfit, error)
}

// RatingStore is the slice of the rating store the outfit lifecycle
// needs: an empty rating is created with every outfit and its pictures
// follow outfit updates.
type RatingStore interface {
	Create(ctx context.Context, outfitID string, pictures []string) error
	UpdatePictures(ctx context.Context, outfitID string, pictures []string) error
	Delete(ctx context.Context, outfitID string) (bool, error)
}

// ItemResolver resolves clothing item ids to full items, rejecting
// lists that do not resolve completely.
type ItemResolver interface {
	Resolve(ctx context.Context, ids []string) ([]closet.Item, error)
}

// Advisor supplies the live weather recommendation for queries.
type Advisor interface {
	Recommend(ctx context.Context, origin string) (weather.Recommendation, error)
}

// IDRegistry reserves generated outfit ids.
type IDRegistry interface {
	Reserve(ctx context.Context, id string) (bool, error)
}
