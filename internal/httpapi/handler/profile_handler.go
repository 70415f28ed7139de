package handler

import (
	"net/http"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes registers profile routes (already authenticated by parent
// middleware).
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
	router.PUT("/me", h.Update)
}

// RegisterPublicRoutes exposes the public profile card.
func (h *ProfileHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/users/:id", h.GetCard)
}

// Me returns the caller's profile, creating the row on first login
// GET /api/me
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	displayName := c.GetString("display_name")

	profile, err := h.profileService.GetOrCreate(c.Request.Context(), userID, displayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update edits the caller's profile
// PUT /api/me
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetCard returns the public subset of any profile
// GET /api/users/:id
func (h *ProfileHandler) GetCard(c *gin.Context) {
	card, err := h.profileService.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}
