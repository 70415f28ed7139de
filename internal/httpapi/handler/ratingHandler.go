package handler

import (
	"net/http"
	"strconv"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes registers rating routes (already authenticated by parent
// middleware).
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/ratings")
	{
		ratings.POST("", h.Create)
		ratings.GET("/eligibility", h.Eligibility)
	}
}

// RegisterPublicRoutes registers the read side: anyone can see a user's
// reviews.
func (h *RatingHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/users/:id/ratings", h.ListForUser)
}

// Create leaves a review after a completed exchange
// POST /api/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// Eligibility answers whether the caller may still review on a donation
// GET /api/ratings/eligibility?donation_id=...
func (h *RatingHandler) Eligibility(c *gin.Context) {
	userID := c.GetString("user_id")

	donationID := c.Query("donation_id")
	if donationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "donation_id is required"})
		return
	}

	resp, err := h.ratingService.Eligibility(c.Request.Context(), userID, donationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListForUser retrieves the reviews left on a user with pagination
// GET /api/users/:id/ratings?page=1&page_size=20
func (h *RatingHandler) ListForUser(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ratings, total, err := h.ratingService.ListForUser(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      ratings,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}
