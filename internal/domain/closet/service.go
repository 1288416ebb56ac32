package closet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

// maxIDAttempts bounds retry-until-unique id generation. With UUIDv4
// entropy a second collision in a row is effectively unreachable, so
// exhaustion is surfaced as a storage failure.
const maxIDAttempts = 5

// Service exposes clothing item operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, filter Filter) ([]Item, error)
	Photos(ctx context.Context, filter Filter) ([]string, error)
	UpdatePhoto(ctx context.Context, id, photo string) (Item, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
	Resolve(ctx context.Context, ids []string) ([]Item, error)
}

type service struct {
	repo     Repository
	registry IDRegistry
	checker  ImageChecker
	outfits  OutfitPurger
	ratings  RatingPurger
	logger   *slog.Logger
}

// NewService wires up the closet domain.
func NewService(repo Repository, registry IDRegistry, checker ImageChecker, outfits OutfitPurger, ratings RatingPurger, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		registry: registry,
		checker:  checker,
		outfits:  outfits,
		ratings:  ratings,
		logger:   logger.With("component", "closet.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	if strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Color) == "" || strings.TrimSpace(req.Photo) == "" {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "type, color and photo are required and cannot be blank", nil)
	}

	itemType := ItemType(req.Type)
	if !itemType.Valid() {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid type value", nil)
	}

	ok, err := s.checker.IsImageURL(ctx, req.Photo)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "photo validation unavailable", err)
	}
	if !ok {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "photo is not a reachable image url", nil)
	}

	if _, exists, err := s.repo.FindByPhoto(ctx, req.Photo); err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "photo lookup failed", err)
	} else if exists {
		return Item{}, apperrors.Wrap(apperrors.CodeConflict, "duplicate photo url, each clothing item must be unique", nil)
	}

	id, err := s.newID(ctx)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:         id,
		Type:       itemType,
		Color:      req.Color,
		Photo:      req.Photo,
		WaterProof: req.WaterProof,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "insert item failed", err)
	}
	s.logger.Info("clothing item created", "id", id, "type", string(itemType))
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Item, error) {
	item, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "item lookup failed", err)
	}
	if !found {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "clothing item not found", nil)
	}
	return item, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Item, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "item listing failed", err)
	}
	return items, nil
}

// Photos returns the photo URLs of the pieces matching the filter. An
// empty match is reported as not found, unlike List.
func (s *service) Photos(ctx context.Context, filter Filter) ([]string, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "no pieces matching the criteria found", nil)
	}
	photos := make([]string, 0, len(items))
	for _, item := range items {
		photos = append(photos, item.Photo)
	}
	return photos, nil
}

// UpdatePhoto is the only mutation allowed on an existing piece.
func (s *service) UpdatePhoto(ctx context.Context, id, photo string) (Item, error) {
	if strings.TrimSpace(photo) == "" {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "photo field is required", nil)
	}

	ok, err := s.checker.IsImageURL(ctx, photo)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "photo validation unavailable", err)
	}
	if !ok {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "photo is not a reachable image url", nil)
	}

	item, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "item lookup failed", err)
	}
	if !found {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "clothing item not found", nil)
	}

	if other, exists, err := s.repo.FindByPhoto(ctx, photo); err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "photo lookup failed", err)
	} else if exists && other.ID != id {
		return Item{}, apperrors.Wrap(apperrors.CodeConflict, "duplicate photo url, each clothing item must be unique", nil)
	}

	if _, err := s.repo.UpdatePhoto(ctx, id, photo); err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "photo update failed", err)
	}
	item.Photo = photo
	return item, nil
}

// Delete removes the piece and cascades into outfits referencing its
// photo and their ratings. The ordering guarantees no surviving outfit
// or rating references the deleted photo once the call returns.
func (s *service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	item, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DeleteResult{}, apperrors.Wrap(apperrors.CodeStorage, "item lookup failed", err)
	}
	if !found {
		return DeleteResult{}, apperrors.Wrap(apperrors.CodeNotFound, "clothing item not found", nil)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return DeleteResult{}, apperrors.Wrap(apperrors.CodeStorage, "item delete failed", err)
	}

	outfitIDs, err := s.outfits.DeleteByPhoto(ctx, item.Photo)
	if err != nil {
		return DeleteResult{}, apperrors.Wrap(apperrors.CodeStorage, "outfit cascade failed", err)
	}
	if len(outfitIDs) > 0 {
		if err := s.ratings.DeleteMany(ctx, outfitIDs); err != nil {
			return DeleteResult{}, apperrors.Wrap(apperrors.CodeStorage, "rating cascade failed", err)
		}
	}

	s.logger.Info("clothing item deleted", "id", id, "outfits_removed", len(outfitIDs))
	return DeleteResult{ID: id, Photo: item.Photo, OutfitsRemoved: outfitIDs}, nil
}

// Resolve fetches every referenced item, rejecting lists whose ids do
// not all resolve. Duplicate ids collapse to fewer resolved items than
// requested and are rejected for the same reason.
func (s *service) Resolve(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "clothingItems must contain at least one id", nil)
	}
	items, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "item resolution failed", err)
	}
	if len(items) != len(ids) {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "one or more clothing item ids are invalid", nil)
	}
	return items, nil
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
		s.logger.Warn("generated id collided, retrying", "attempt", attempt+1)
	}
	return "", apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("could not reserve a unique id after %d attempts", maxIDAttempts), nil)
}
