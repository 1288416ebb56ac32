package weather

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

// Geolocator resolves the caller's network origin to coordinates.
type Geolocator interface {
	Locate(ctx context.Context, origin string) (Coordinates, error)
}

// Conditions fetches the current weather for coordinates.
type Conditions interface {
	Current(ctx context.Context, c Coordinates) (Observation, error)
}

// Service derives a waterproofing requirement and a temperature band
// for a caller's location.
type Service interface {
	Recommend(ctx context.Context, origin string) (Recommendation, error)
}

type service struct {
	geo    Geolocator
	cond   Conditions
	logger *slog.Logger
}

// NewService wires up the weather advisor.
func NewService(geo Geolocator, cond Conditions, logger *slog.Logger) Service {
	return &service{
		geo:    geo,
		cond:   cond,
		logger: logger.With("component", "weather.service"),
	}
}

// Recommend runs the two lookups in sequence. Both must succeed; a
// failure in either surfaces as a single provider_unavailable cause
// and no partial result is ever returned. Each call is a fresh best
// effort round trip, with no caching and no retry.
func (s *service) Recommend(ctx context.Context, origin string) (Recommendation, error) {
	coords, err := s.geo.Locate(ctx, origin)
	if err != nil {
		return Recommendation{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "could not determine location", err)
	}

	obs, err := s.cond.Current(ctx, coords)
	if err != nil {
		return Recommendation{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "could not fetch current weather", err)
	}

	_, wet := wetConditions[obs.Condition]
	rec := Recommendation{
		NeedsWaterproof: wet,
		Band:            BandFor(obs.TempC),
	}
	s.logger.Info("weather recommendation computed", "condition", obs.Condition, "temp_c", obs.TempC, "band", string(rec.Band), "needs_waterproof", rec.NeedsWaterproof)
	return rec, nil
}
