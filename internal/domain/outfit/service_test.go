package outfit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	"github.com/yanqian/closet-keeper/internal/domain/outfit"
	"github.com/yanqian/closet-keeper/internal/domain/weather"
	"github.com/yanqian/closet-keeper/internal/infra/idregistry"
	"github.com/yanqian/closet-keeper/internal/infra/outfitrepo"
	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

type stubResolver struct {
	items map[string]closet.Item
}

func (s *stubResolver) Resolve(_ context.Context, ids []string) ([]closet.Item, error) {
	if len(ids) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "clothingItems must contain at least one id", nil)
	}
	seen := make(map[string]struct{})
	out := make([]closet.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	if len(out) != len(ids) {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "one or more clothing item ids are invalid", nil)
	}
	return out, nil
}

type stubAdvisor struct {
	rec weather.Recommendation
	err error
}

func (s *stubAdvisor) Recommend(context.Context, string) (weather.Recommendation, error) {
	return s.rec, s.err
}

type stubRatingStore struct {
	created   map[string][]string
	updated   map[string][]string
	failNext  error
	deletions []string
}

func newStubRatingStore() *stubRatingStore {
	return &stubRatingStore{created: make(map[string][]string), updated: make(map[string][]string)}
}

func (s *stubRatingStore) Create(_ context.Context, outfitID string, pictures []string) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.created[outfitID] = pictures
	return nil
}

func (s *stubRatingStore) UpdatePictures(_ context.Context, outfitID string, pictures []string) error {
	s.updated[outfitID] = pictures
	return nil
}

func (s *stubRatingStore) Delete(_ context.Context, outfitID string) (bool, error) {
	s.deletions = append(s.deletions, outfitID)
	_, existed := s.created[outfitID]
	delete(s.created, outfitID)
	return existed, nil
}

type fixture struct {
	svc      outfit.Service
	repo     *outfitrepo.MemoryRepository
	ratings  *stubRatingStore
	advisor  *stubAdvisor
	resolver *stubResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    outfitrepo.NewMemoryRepository(),
		ratings: newStubRatingStore(),
		advisor: &stubAdvisor{rec: weather.Recommendation{Band: weather.BandMild}},
		resolver: &stubResolver{items: map[string]closet.Item{
			"shirt":  {ID: "shirt", Type: closet.TypeShirt, Color: "white", Photo: "http://img/shirt"},
			"pants":  {ID: "pants", Type: closet.TypeLongPants, Color: "navy", Photo: "http://img/pants"},
			"shoes":  {ID: "shoes", Type: closet.TypeShoes, Color: "black", Photo: "http://img/shoes"},
			"dress":  {ID: "dress", Type: closet.TypeDress, Color: "red", Photo: "http://img/dress"},
			"jacket": {ID: "jacket", Type: closet.TypeJacket, Color: "green", Photo: "http://img/jacket", WaterProof: true},
		}},
	}
	f.svc = outfit.NewService(f.repo, f.ratings, f.resolver, f.advisor, idregistry.NewMemoryRegistry(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func casualRequest() outfit.Request {
	return outfit.Request{
		Style:            "Casual",
		ClothingItems:    []string{"shirt", "pants", "shoes"},
		SuitableWeathers: "Mild",
	}
}

func TestCreatePairsOutfitWithRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	o, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)
	require.NotEmpty(t, o.ID)
	require.Equal(t, outfit.StyleCasual, o.Style)
	require.Len(t, o.ClothingItems, 3)
	require.Equal(t, []string{"http://img/shirt", "http://img/pants", "http://img/shoes"}, o.OutfitPhoto)
	require.False(t, o.Waterproof)
	require.Equal(t, o.OutfitPhoto, f.ratings.created[o.ID])
}

func TestCreateWaterproofDerivedFromJacket(t *testing.T) {
	f := newFixture(t)

	req := casualRequest()
	req.ClothingItems = append(req.ClothingItems, "jacket")
	o, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.True(t, o.Waterproof)
}

func TestCreateRollsBackWhenRatingFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ratings.failNext = errors.New("ratings store down")

	_, err := f.svc.Create(ctx, casualRequest())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))

	outfits, err := f.repo.Query(ctx, outfit.QuerySpec{})
	require.NoError(t, err)
	require.Empty(t, outfits)
}

func TestCreateRejectsBadComposition(t *testing.T) {
	f := newFixture(t)

	req := casualRequest()
	req.ClothingItems = []string{"shirt", "pants"}
	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Contains(t, err.Error(), "pair of shoes")
}

func TestCreateRejectsUnknownItemIDs(t *testing.T) {
	f := newFixture(t)

	req := casualRequest()
	req.ClothingItems = []string{"shirt", "pants", "no-such-id"}
	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestUpdateExistenceCheckedFirst(t *testing.T) {
	f := newFixture(t)

	// The request is also invalid; missing outfit still wins.
	req := outfit.Request{Style: "Casual", ClothingItems: []string{"shirt"}, SuitableWeathers: "Mild"}
	_, err := f.svc.Update(context.Background(), "missing", req)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdateRefreshesRatingPictures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	o, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	req := outfit.Request{
		Style:            "Elegant",
		ClothingItems:    []string{"dress", "shoes"},
		SuitableWeathers: "Hot",
	}
	updated, err := f.svc.Update(ctx, o.ID, req)
	require.NoError(t, err)
	require.Equal(t, o.ID, updated.ID)
	require.Equal(t, outfit.StyleElegant, updated.Style)
	require.Equal(t, []string{"http://img/dress", "http://img/shoes"}, updated.OutfitPhoto)
	require.Equal(t, updated.OutfitPhoto, f.ratings.updated[o.ID])
}

func TestDeleteRemovesPairedRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	o, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, o.ID))
	require.Equal(t, []string{o.ID}, f.ratings.deletions)

	err = f.svc.Delete(ctx, o.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListSkipsWeatherGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	elegant := outfit.Request{
		Style:            "Elegant",
		ClothingItems:    []string{"dress", "shoes"},
		SuitableWeathers: "Hot",
	}
	_, err = f.svc.Create(ctx, elegant)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	casual, err := f.svc.List(ctx, "Casual")
	require.NoError(t, err)
	require.Len(t, casual, 1)
	require.Equal(t, outfit.StyleCasual, casual[0].Style)
}

func TestQueryGatesOnWeather(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mild, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	hot := casualRequest()
	hot.ClothingItems = []string{"dress", "shoes"}
	hot.SuitableWeathers = "Hot"
	hot.Style = "Elegant"
	_, err = f.svc.Create(ctx, hot)
	require.NoError(t, err)

	result, err := f.svc.Query(ctx, outfit.QueryFilter{}, "203.0.113.9")
	require.NoError(t, err)
	require.Equal(t, outfit.WeatherMild, result.Band)
	require.False(t, result.NeedsWaterproof)
	require.Len(t, result.Outfits, 1)
	require.Equal(t, mild.ID, result.Outfits[0].ID)
}

func TestQueryWetWeatherWantsWaterproof(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.advisor.rec = weather.Recommendation{Band: weather.BandMild, NeedsWaterproof: true}

	_, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	wet := casualRequest()
	wet.ClothingItems = append(wet.ClothingItems, "jacket")
	_, err = f.svc.Create(ctx, wet)
	require.NoError(t, err)

	result, err := f.svc.Query(ctx, outfit.QueryFilter{}, "")
	require.NoError(t, err)
	require.True(t, result.NeedsWaterproof)
	require.Len(t, result.Outfits, 1)
	require.True(t, result.Outfits[0].Waterproof)
}

func TestQueryFiltersByClothingType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, casualRequest())
	require.NoError(t, err)

	elegant := outfit.Request{
		Style:            "Elegant",
		ClothingItems:    []string{"dress", "shoes"},
		SuitableWeathers: "Mild",
	}
	withDress, err := f.svc.Create(ctx, elegant)
	require.NoError(t, err)

	result, err := f.svc.Query(ctx, outfit.QueryFilter{ClothingType: "Dress"}, "")
	require.NoError(t, err)
	require.Len(t, result.Outfits, 1)
	require.Equal(t, withDress.ID, result.Outfits[0].ID)
}

func TestQueryEmptyResultMentionsWeather(t *testing.T) {
	f := newFixture(t)
	f.advisor.rec = weather.Recommendation{Band: weather.BandHot, NeedsWaterproof: true}

	_, err := f.svc.Query(context.Background(), outfit.QueryFilter{}, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.Contains(t, err.Error(), "the weather is hot and we need waterproof clothes")
}

func TestQueryAdvisorDown(t *testing.T) {
	f := newFixture(t)
	f.advisor.err = errors.New("provider timeout")

	_, err := f.svc.Query(context.Background(), outfit.QueryFilter{}, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeProviderUnavailable))
}
