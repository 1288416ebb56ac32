package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/closet-keeper/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured
// server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		requireJSON(),
	)

	router.GET("/healthz", handler.Healthz)

	clothes := router.Group("/clothes")
	{
		clothes.GET("", handler.ListClothes)
		clothes.POST("", handler.CreateClothing)
		clothes.GET("/:id", handler.GetClothing)
		clothes.PUT("/:id", handler.UpdateClothingPhoto)
		clothes.DELETE("/:id", handler.DeleteClothing)
	}

	outfits := router.Group("/outfits")
	{
		outfits.GET("", handler.QueryOutfits)
		outfits.POST("", handler.CreateOutfit)
		outfits.GET("/:id", handler.GetOutfit)
		outfits.PUT("/:id", handler.UpdateOutfit)
		outfits.DELETE("/:id", handler.DeleteOutfit)
	}

	ratings := router.Group("/ratings")
	{
		ratings.GET("", handler.ListRatings)
		ratings.GET("/:id", handler.GetRating)
		ratings.POST("/:id", handler.AddScore)
		ratings.DELETE("/:id", handler.DeleteRating)
	}

	router.GET("/top", handler.TopOutfits)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
