package outfit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

const maxIDAttempts = 5

// Service exposes outfit composition and recommendation operations.
type Service interface {
	Create(ctx context.Context, req Request) (Outfit, error)
	Update(ctx context.Context, id string, req Request) (Outfit, error)
	GetByID(ctx context.Context, id string) (Outfit, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, style string) ([]Outfit, error)
	Query(ctx context.Context, filter QueryFilter, origin string) (RecommendationResult, error)
}

type service struct {
	repo     Repository
	ratings  RatingStore
	items    ItemResolver
	advisor  Advisor
	registry IDRegistry
	logger   *slog.Logger
}

// NewService wires up the outfit domain.
func NewService(repo Repository, ratings RatingStore, items ItemResolver, advisor Advisor, registry IDRegistry, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		ratings:  ratings,
		items:    items,
		advisor:  advisor,
		registry: registry,
		logger:   logger.With("component", "outfit.service"),
	}
}

// Create runs the full pipeline: payload validity, id resolution,
// composition rules, derived fields, then persists the outfit and its
// empty rating as a pair.
func (s *service) Create(ctx context.Context, req Request) (Outfit, error) {
	resolved, err := s.validate(ctx, req)
	if err != nil {
		return Outfit{}, err
	}

	id, err := s.newID(ctx)
	if err != nil {
		return Outfit{}, err
	}

	o := buildOutfit(id, req, resolved)
	if err := s.repo.Insert(ctx, o); err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "insert outfit failed", err)
	}
	if err := s.ratings.Create(ctx, id, o.OutfitPhoto); err != nil {
		// An outfit must never exist without its paired rating.
		if _, rbErr := s.repo.Delete(ctx, id); rbErr != nil {
			s.logger.Error("outfit rollback failed after rating create error", "id", id, "error", rbErr)
		}
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "create rating failed", err)
	}

	s.logger.Info("outfit created", "id", id, "style", string(o.Style), "items", len(o.ClothingItems))
	return o, nil
}

// Update replays the create pipeline against an existing outfit:
// existence first, then payload validity, id resolution and
// composition. The paired rating's pictures are upserted.
func (s *service) Update(ctx context.Context, id string, req Request) (Outfit, error) {
	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "outfit lookup failed", err)
	} else if !found {
		return Outfit{}, apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}

	resolved, err := s.validate(ctx, req)
	if err != nil {
		return Outfit{}, err
	}

	o := buildOutfit(id, req, resolved)
	if _, err := s.repo.Update(ctx, o); err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "update outfit failed", err)
	}
	if err := s.ratings.UpdatePictures(ctx, id, o.OutfitPhoto); err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "update rating pictures failed", err)
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Outfit, error) {
	o, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Outfit{}, apperrors.Wrap(apperrors.CodeStorage, "outfit lookup failed", err)
	}
	if !found {
		return Outfit{}, apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "delete outfit failed", err)
	}
	if !deleted {
		return apperrors.Wrap(apperrors.CodeNotFound, "outfit not found", nil)
	}
	if found, err := s.ratings.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "delete rating failed", err)
	} else if !found {
		s.logger.Warn("outfit had no paired rating at delete", "id", id)
	}
	return nil
}

// List is a plain style-filtered listing with no weather gate.
func (s *service) List(ctx context.Context, style string) ([]Outfit, error) {
	outfits, err := s.repo.Query(ctx, QuerySpec{Style: style})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "outfit listing failed", err)
	}
	return outfits, nil
}

// Query asks the advisor for the live weather and returns only outfits
// matching the resulting band and waterproofing need, plus any caller
// filters. An empty result is reported as not found with the weather
// context in the message; advisor failure means the recommendation is
// unavailable, not that the request was bad.
func (s *service) Query(ctx context.Context, filter QueryFilter, origin string) (RecommendationResult, error) {
	rec, err := s.advisor.Recommend(ctx, origin)
	if err != nil {
		return RecommendationResult{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "recommendation unavailable", err)
	}

	need := rec.NeedsWaterproof
	spec := QuerySpec{
		ID:               filter.ID,
		Style:            filter.Style,
		SuitableWeathers: string(rec.Band),
		Waterproof:       &need,
	}
	outfits, err := s.repo.Query(ctx, spec)
	if err != nil {
		return RecommendationResult{}, apperrors.Wrap(apperrors.CodeStorage, "outfit query failed", err)
	}

	if filter.ClothingType != "" {
		outfits = filterByClothingType(outfits, closet.ItemType(filter.ClothingType))
	}

	if len(outfits) == 0 {
		verb := "don't need"
		if rec.NeedsWaterproof {
			verb = "need"
		}
		msg := fmt.Sprintf("the weather is %s and we %s waterproof clothes, no outfits found matching this criteria", strings.ToLower(string(rec.Band)), verb)
		return RecommendationResult{}, apperrors.Wrap(apperrors.CodeNotFound, msg, nil)
	}

	return RecommendationResult{
		Band:            Weather(rec.Band),
		NeedsWaterproof: rec.NeedsWaterproof,
		Outfits:         outfits,
	}, nil
}

// validate runs payload validity, id resolution and the composition
// rules, returning the resolved items on success.
func (s *service) validate(ctx context.Context, req Request) ([]closet.Item, error) {
	if strings.TrimSpace(req.Style) == "" || strings.TrimSpace(req.SuitableWeathers) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "style, clothingItems and suitableWeathers are required", nil)
	}

	resolved, err := s.items.Resolve(ctx, req.ClothingItems)
	if err != nil {
		return nil, err
	}

	types := make([]closet.ItemType, 0, len(resolved))
	for _, item := range resolved {
		types = append(types, item.Type)
	}
	if err := ValidateComposition(types); err != nil {
		return nil, err
	}
	if err := ValidateAttributes(Style(req.Style), Weather(req.SuitableWeathers)); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *service) newID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := uuid.NewString()
		reserved, err := s.registry.Reserve(ctx, id)
		if err != nil {
			return "", apperrors.Wrap(apperrors.CodeStorage, "id reservation failed", err)
		}
		if reserved {
			return id, nil
		}
		s.logger.Warn("generated outfit id collided, retrying", "attempt", attempt+1)
	}
	return "", apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("could not reserve a unique outfit id after %d attempts", maxIDAttempts), nil)
}

func buildOutfit(id string, req Request, resolved []closet.Item) Outfit {
	summaries := make([]ItemSummary, 0, len(resolved))
	photos := make([]string, 0, len(resolved))
	waterproof := false
	for _, item := range resolved {
		summaries = append(summaries, ItemSummary{Type: item.Type, Photo: item.Photo})
		photos = append(photos, item.Photo)
		if item.Type == closet.TypeJacket && item.WaterProof {
			waterproof = true
		}
	}
	return Outfit{
		ID:               id,
		Style:            Style(req.Style),
		ClothingItems:    summaries,
		SuitableWeathers: Weather(req.SuitableWeathers),
		Waterproof:       waterproof,
		OutfitPhoto:      photos,
	}
}

func filterByClothingType(outfits []Outfit, t closet.ItemType) []Outfit {
	out := outfits[:0]
	for _, o := range outfits {
		for _, item := range o.ClothingItems {
			if item.Type == t {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
