package rating

import (
	"context"
	"log/slog"
	"sort"

	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

// topSize is how many leaders the top-outfits view targets before tie
// expansion.
const topSize = 3

// Service exposes score aggregation over rated outfits.
type Service interface {
	AddScore(ctx context.Context, outfitID string, score int) (Rating, error)
	GetByID(ctx context.Context, outfitID string) (Rating, error)
	List(ctx context.Context) ([]Rating, error)
	Delete(ctx context.Context, outfitID string) error
	TopOutfits(ctx context.Context) ([]TopEntry, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the rating domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "rating.service"),
	}
}

// AddScore appends one score and returns the rating with its refreshed
// average. Out-of-range scores are rejected before anything mutates.
func (s *service) AddScore(ctx context.Context, outfitID string, score int) (Rating, error) {
	if score < 0 || score > 10 {
		return Rating{}, apperrors.Wrap(apperrors.CodeInvalidInput, "score must be an integer in the range 0 to 10", nil)
	}
	r, found, err := s.repo.AppendScore(ctx, outfitID, score)
	if err != nil {
		return Rating{}, apperrors.Wrap(apperrors.CodeStorage, "append score failed", err)
	}
	if !found {
		return Rating{}, apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}
	s.logger.Info("score recorded", "outfit_id", outfitID, "score", score, "average", r.Average)
	return r, nil
}

func (s *service) GetByID(ctx context.Context, outfitID string) (Rating, error) {
	r, found, err := s.repo.FindByID(ctx, outfitID)
	if err != nil {
		return Rating{}, apperrors.Wrap(apperrors.CodeStorage, "rating lookup failed", err)
	}
	if !found {
		return Rating{}, apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}
	return r, nil
}

func (s *service) List(ctx context.Context) ([]Rating, error) {
	ratings, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "rating listing failed", err)
	}
	return ratings, nil
}

func (s *service) Delete(ctx context.Context, outfitID string) error {
	deleted, err := s.repo.Delete(ctx, outfitID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "rating delete failed", err)
	}
	if !deleted {
		return apperrors.Wrap(apperrors.CodeNotFound, "rating not found", nil)
	}
	return nil
}

// TopOutfits returns the three best averages among rated outfits, plus
// every further outfit tying the third place exactly. Ties keep their
// encounter order; fewer than three rated outfits yield a shorter
// list.
func (s *service) TopOutfits(ctx context.Context) ([]TopEntry, error) {
	ratings, err := s.repo.ListScored(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "rating listing failed", err)
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].Average > ratings[j].Average
	})

	cut := len(ratings)
	if cut > topSize {
		threshold := ratings[topSize-1].Average
		cut = topSize
		for cut < len(ratings) && ratings[cut].Average == threshold {
			cut++
		}
	}

	top := make([]TopEntry, 0, cut)
	for _, r := range ratings[:cut] {
		top = append(top, TopEntry{ID: r.ID, Average: r.Average, Pictures: r.Pictures})
	}
	return top, nil
}
