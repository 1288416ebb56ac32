//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/closet-keeper/internal/bootstrap"
	"github.com/yanqian/closet-keeper/internal/domain/closet"
	"github.com/yanqian/closet-keeper/internal/domain/outfit"
	"github.com/yanqian/closet-keeper/internal/domain/rating"
	"github.com/yanqian/closet-keeper/internal/domain/weather"
	"github.com/yanqian/closet-keeper/internal/infra/config"
	httpiface "github.com/yanqian/closet-keeper/internal/interface/http"
	"github.com/yanqian/closet-keeper/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRepositories,
		provideItemRepository,
		provideOutfitRepository,
		provideOutfitPurger,
		provideRatingRepository,
		provideRatingStore,
		provideRatingPurger,
		provideIDRegistry,
		provideOutfitRegistry,
		provideGeolocator,
		provideConditions,
		provideImageChecker,
		provideAdvisor,
		provideItemResolver,
		weather.NewService,
		closet.NewService,
		outfit.NewService,
		rating.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
