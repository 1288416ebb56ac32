package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	"github.com/yanqian/closet-keeper/internal/domain/outfit"
	"github.com/yanqian/closet-keeper/internal/domain/rating"
	"github.com/yanqian/closet-keeper/internal/domain/weather"
	"github.com/yanqian/closet-keeper/internal/infra/closetrepo"
	"github.com/yanqian/closet-keeper/internal/infra/config"
	"github.com/yanqian/closet-keeper/internal/infra/geoip"
	"github.com/yanqian/closet-keeper/internal/infra/idregistry"
	"github.com/yanqian/closet-keeper/internal/infra/imagecheck"
	"github.com/yanqian/closet-keeper/internal/infra/openweather"
	"github.com/yanqian/closet-keeper/internal/infra/outfitrepo"
	"github.com/yanqian/closet-keeper/internal/infra/ratingrepo"
)

// repositories bundles the persistence backends so the outfit repo
// instance serving queries is the same one serving the delete cascade.
type repositories struct {
	items        closet.Repository
	outfits      outfit.Repository
	outfitPurger closet.OutfitPurger
	ratings      rating.Repository
}

func provideRepositories(cfg *config.Config, logger *slog.Logger) *repositories {
	dsn := strings.TrimSpace(cfg.Storage.PostgresDSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return memoryRepositories()
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return memoryRepositories()
	}
	if cfg.Storage.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.MaxConns
	}
	if cfg.Storage.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return memoryRepositories()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return memoryRepositories()
	}

	logger.Info("postgres repositories enabled")
	outfits := outfitrepo.NewPostgresRepository(pool)
	return &repositories{
		items:        closetrepo.NewPostgresRepository(pool),
		outfits:      outfits,
		outfitPurger: outfits,
		ratings:      ratingrepo.NewPostgresRepository(pool),
	}
}

func memoryRepositories() *repositories {
	outfits := outfitrepo.NewMemoryRepository()
	return &repositories{
		items:        closetrepo.NewMemoryRepository(),
		outfits:      outfits,
		outfitPurger: outfits,
		ratings:      ratingrepo.NewMemoryRepository(),
	}
}

func provideItemRepository(r *repositories) closet.Repository { return r.items }

func provideOutfitRepository(r *repositories) outfit.Repository { return r.outfits }

func provideOutfitPurger(r *repositories) closet.OutfitPurger { return r.outfitPurger }

func provideRatingRepository(r *repositories) rating.Repository { return r.ratings }

func provideRatingStore(r *repositories) outfit.RatingStore { return r.ratings }

func provideRatingPurger(r *repositories) closet.RatingPurger { return r.ratings }

func provideIDRegistry(cfg *config.Config, logger *slog.Logger) closet.IDRegistry {
	if cfg.Registry.ValkeyEnabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory registry", "error", err)
			return idregistry.NewMemoryRegistry()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory registry", "error", err)
			return idregistry.NewMemoryRegistry()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory registry", "error", err)
		} else {
			logger.Info("valkey id registry enabled", "addr", cfg.Registry.ValkeyAddr)
			return idregistry.NewValkeyRegistry(client, cfg.Registry.KeyPrefix)
		}
	}
	return idregistry.NewMemoryRegistry()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Registry.ValkeyAddr, "://") {
		opt, err = valkey.ParseURL(cfg.Registry.ValkeyAddr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Registry.ValkeyAddr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideOutfitRegistry(registry closet.IDRegistry) outfit.IDRegistry { return registry }

func provideGeolocator(cfg *config.Config) weather.Geolocator {
	return geoip.NewClient(cfg.Weather.GeoBaseURL)
}

func provideConditions(cfg *config.Config) weather.Conditions {
	return openweather.NewClient(cfg.Weather.OpenWeatherBaseURL, cfg.Weather.OpenWeatherAPIKey)
}

func provideImageChecker(cfg *config.Config) closet.ImageChecker {
	return imagecheck.NewChecker(cfg.ImageCheck.Timeout)
}

func provideAdvisor(svc weather.Service) outfit.Advisor { return svc }

func provideItemResolver(svc closet.Service) outfit.ItemResolver { return svc }
