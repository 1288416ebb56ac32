package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	"github.com/yanqian/closet-keeper/internal/domain/outfit"
	"github.com/yanqian/closet-keeper/internal/domain/rating"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	items   closet.Service
	outfits outfit.Service
	ratings rating.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(items closet.Service, outfits outfit.Service, ratings rating.Service, logger *slog.Logger) *Handler {
	return &Handler{
		items:   items,
		outfits: outfits,
		ratings: ratings,
		logger:  logger.With("component", "http.handler"),
	}
}

// ListClothes returns the pieces matching optional query filters.
func (h *Handler) ListClothes(c *gin.Context) {
	filter := closet.Filter{
		Type:  c.Query("type"),
		Color: c.Query("color"),
	}
	if raw := c.Query("waterProof"); raw != "" {
		wp, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", "waterProof must be a boolean", err))
			return
		}
		filter.WaterProof = &wp
	}

	items, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateClothing adds a piece to the closet.
func (h *Handler) CreateClothing(c *gin.Context) {
	var req closet.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", errMessage(err), err))
		return
	}

	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": item.ID})
}

// GetClothing fetches one piece by id.
func (h *Handler) GetClothing(c *gin.Context) {
	item, err := h.items.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateClothingPhoto changes a piece's photo URL, the only field a
// piece allows to change.
func (h *Handler) UpdateClothingPhoto(c *gin.Context) {
	var req struct {
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", errMessage(err), err))
		return
	}

	item, err := h.items.UpdatePhoto(c.Request.Context(), c.Param("id"), req.Photo)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "piece photo updated successfully", "id": item.ID})
}

// DeleteClothing removes a piece and cascades into outfits referencing
// its photo and their ratings.
func (h *Handler) DeleteClothing(c *gin.Context) {
	result, err := h.items.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "clothing item, associated outfits and related ratings successfully deleted",
		"id":             result.ID,
		"deletedPhoto":   result.Photo,
		"outfitsRemoved": result.OutfitsRemoved,
	})
}

// QueryOutfits recommends outfits for the caller's current weather,
// optionally narrowed by style, outfit id or clothing type.
func (h *Handler) QueryOutfits(c *gin.Context) {
	filter := outfit.QueryFilter{
		Style:        c.Query("style"),
		ID:           c.Query("id"),
		ClothingType: c.Query("type"),
	}

	result, err := h.outfits.Query(c.Request.Context(), filter, c.ClientIP())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateOutfit composes clothing items into a validated outfit.
func (h *Handler) CreateOutfit(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", errMessage(err), err))
		return
	}

	o, err := h.outfits.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "outfit added successfully to your closet", "id": o.ID})
}

// GetOutfit fetches one outfit by id.
func (h *Handler) GetOutfit(c *gin.Context) {
	o, err := h.outfits.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, o)
}

// UpdateOutfit replaces an existing outfit's mutable fields.
func (h *Handler) UpdateOutfit(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", errMessage(err), err))
		return
	}

	o, err := h.outfits.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "outfit updated successfully", "id": o.ID})
}

// DeleteOutfit removes an outfit and its paired rating.
func (h *Handler) DeleteOutfit(c *gin.Context) {
	id := c.Param("id")
	if err := h.outfits.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "outfit successfully deleted", "id": id})
}

// ListRatings returns every rating record.
func (h *Handler) ListRatings(c *gin.Context) {
	ratings, err := h.ratings.List(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetRating fetches the rating of one outfit.
func (h *Handler) GetRating(c *gin.Context) {
	r, err := h.ratings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, r)
}

// AddScore appends a score to an outfit's rating.
func (h *Handler) AddScore(c *gin.Context) {
	var req struct {
		Score *int `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", errMessage(err), err))
		return
	}
	if req.Score == nil {
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_input", "you should enter a score field", nil))
		return
	}

	r, err := h.ratings.AddScore(c.Request.Context(), c.Param("id"), *req.Score)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"average": r.Average})
}

// DeleteRating removes an outfit's rating record.
func (h *Handler) DeleteRating(c *gin.Context) {
	id := c.Param("id")
	if err := h.ratings.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ratings successfully deleted", "id": id})
}

// TopOutfits returns the best rated outfits, third-place ties
// included.
func (h *Handler) TopOutfits(c *gin.Context) {
	top, err := h.ratings.TopOutfits(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, top)
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
