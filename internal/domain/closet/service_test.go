package closet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

type stubChecker struct {
	ok  bool
	err error
}

func (s *stubChecker) IsImageURL(context.Context, string) (bool, error) {
	return s.ok, s.err
}

type stubOutfitPurger struct {
	removed []string
	calls   int
	photo   string
}

func (s *stubOutfitPurger) DeleteByPhoto(_ context.Context, photo string) ([]string, error) {
	s.calls++
	s.photo = photo
	return s.removed, nil
}

type stubRatingPurger struct {
	deleted [][]string
}

func (s *stubRatingPurger) DeleteMany(_ context.Context, ids []string) error {
	s.deleted = append(s.deleted, ids)
	return nil
}

type memoryRegistry struct {
	reserved map[string]struct{}
}

func (r *memoryRegistry) Reserve(_ context.Context, id string) (bool, error) {
	if r.reserved == nil {
		r.reserved = make(map[string]struct{})
	}
	if _, taken := r.reserved[id]; taken {
		return false, nil
	}
	r.reserved[id] = struct{}{}
	return true, nil
}

// memoryRepo is a minimal in-package Repository so the domain tests
// stay free of infra imports.
type memoryRepo struct {
	items map[string]Item
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{items: make(map[string]Item)} }

func (r *memoryRepo) Insert(_ context.Context, item Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (Item, bool, error) {
	item, ok := r.items[id]
	return item, ok, nil
}

func (r *memoryRepo) FindByPhoto(_ context.Context, photo string) (Item, bool, error) {
	for _, item := range r.items {
		if item.Photo == photo {
			return item, true, nil
		}
	}
	return Item{}, false, nil
}

func (r *memoryRepo) FindByIDs(_ context.Context, ids []string) ([]Item, error) {
	seen := make(map[string]struct{})
	out := make([]Item, 0, len(ids))
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

func (r *memoryRepo) List(_ context.Context, filter Filter) ([]Item, error) {
	out := make([]Item, 0)
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

func (r *memoryRepo) UpdatePhoto(_ context.Context, id, photo string) (bool, error) {
	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	item.Photo = photo
	r.items[id] = item
	return true, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type testDeps struct {
	repo    *memoryRepo
	checker *stubChecker
	outfits *stubOutfitPurger
	ratings *stubRatingPurger
}

func newTestService(t *testing.T) (Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		repo:    newMemoryRepo(),
		checker: &stubChecker{ok: true},
		outfits: &stubOutfitPurger{},
		ratings: &stubRatingPurger{},
	}
	svc := NewService(deps.repo, &memoryRegistry{}, deps.checker, deps.outfits, deps.ratings,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, deps
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Create(ctx, CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := svc.Create(ctx, CreateRequest{Type: "Shoes", Color: "black", Photo: "http://img/2"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestCreateDuplicatePhotoRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.NoError(t, err)

	// Different fields, same photo: still a conflict.
	_, err = svc.Create(ctx, CreateRequest{Type: "Hat", Color: "red", Photo: "http://img/1"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestCreateMissingFieldsRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, req := range []CreateRequest{
		{Color: "blue", Photo: "http://img/1"},
		{Type: "Shirt", Photo: "http://img/1"},
		{Type: "Shirt", Color: "blue"},
		{Type: "  ", Color: "blue", Photo: "http://img/1"},
	} {
		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	}
}

func TestCreateUnknownTypeRejected(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateRequest{Type: "Cape", Color: "black", Photo: "http://img/1"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCreateUnreachableImage(t *testing.T) {
	svc, deps := newTestService(t)
	deps.checker.ok = false

	_, err := svc.Create(context.Background(), CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCreateImageProbeDown(t *testing.T) {
	svc, deps := newTestService(t)
	deps.checker.ok = false
	deps.checker.err = errors.New("connect timeout")

	_, err := svc.Create(context.Background(), CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeProviderUnavailable))
}

func TestResolveRejectsUnknownAndDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	item, err := svc.Create(ctx, CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, []string{item.ID, "no-such-id"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	// A repeated id collapses to one resolved item and is rejected
	// the same way.
	_, err = svc.Resolve(ctx, []string{item.ID, item.ID})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	resolved, err := svc.Resolve(ctx, []string{item.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
}

func TestDeleteCascadesIntoOutfitsAndRatings(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestService(t)

	item, err := svc.Create(ctx, CreateRequest{Type: "Shoes", Color: "black", Photo: "http://img/shoes"})
	require.NoError(t, err)

	deps.outfits.removed = []string{"outfit-1", "outfit-2"}

	result, err := svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ID, result.ID)
	require.Equal(t, "http://img/shoes", result.Photo)
	require.Equal(t, []string{"outfit-1", "outfit-2"}, result.OutfitsRemoved)
	require.Equal(t, "http://img/shoes", deps.outfits.photo)
	require.Equal(t, [][]string{{"outfit-1", "outfit-2"}}, deps.ratings.deleted)

	_, err = svc.GetByID(ctx, item.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestDeleteWithoutOutfitsSkipsRatingPurge(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestService(t)

	item, err := svc.Create(ctx, CreateRequest{Type: "Hat", Color: "green", Photo: "http://img/hat"})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.Empty(t, result.OutfitsRemoved)
	require.Empty(t, deps.ratings.deleted)
}

func TestDeleteUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Delete(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdatePhoto(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	item, err := svc.Create(ctx, CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/old"})
	require.NoError(t, err)

	updated, err := svc.UpdatePhoto(ctx, item.ID, "http://img/new")
	require.NoError(t, err)
	require.Equal(t, "http://img/new", updated.Photo)

	_, err = svc.UpdatePhoto(ctx, "missing", "http://img/other")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestPhotosProjection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateRequest{Type: "Shirt", Color: "blue", Photo: "http://img/1"})
	require.NoError(t, err)

	photos, err := svc.Photos(ctx, Filter{Type: "Shirt"})
	require.NoError(t, err)
	require.Equal(t, []string{"http://img/1"}, photos)

	_, err = svc.Photos(ctx, Filter{Type: "Scarf"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
