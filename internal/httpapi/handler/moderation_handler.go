package handler

import (
	"net/http"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterRoutes registers the report endpoint for any authenticated user.
func (h *ModerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/flags", h.Report)
}

// RegisterAdminRoutes registers the moderation surface. The parent group
// carries RequireModerator.
func (h *ModerationHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/flags", h.ListFlags)
	router.POST("/flags/:id/resolve", h.ResolveFlag)
	router.POST("/donations/:id/hide", h.Hide)
	router.POST("/donations/:id/unhide", h.Unhide)
	router.DELETE("/donations/:id", h.Delete)
	router.POST("/users/:id/ban", h.Ban)
	router.POST("/users/:id/unban", h.Unban)
	router.GET("/stats", h.Stats)
}

// Report files a flag against a donation or user
// POST /api/flags
func (h *ModerationHandler) Report(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateFlagDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flag, err := h.moderationService.ReportFlag(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flag)
}

// ListFlags lists the moderation queue
// GET /api/admin/flags?status=pending
func (h *ModerationHandler) ListFlags(c *gin.Context) {
	flags, err := h.moderationService.ListFlags(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

type resolveFlagRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed resolved"`
}

// ResolveFlag moves a flag to reviewed or resolved
// POST /api/admin/flags/:id/resolve
func (h *ModerationHandler) ResolveFlag(c *gin.Context) {
	userID := c.GetString("user_id")

	var req resolveFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.moderationService.ResolveFlag(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flag updated"})
}

// Hide takes a listing off the public board
// POST /api/admin/donations/:id/hide
func (h *ModerationHandler) Hide(c *gin.Context) {
	if err := h.moderationService.HideDonation(c.Request.Context(), c.Param("id"), true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "donation hidden"})
}

// Unhide restores a hidden listing
// POST /api/admin/donations/:id/unhide
func (h *ModerationHandler) Unhide(c *gin.Context) {
	if err := h.moderationService.HideDonation(c.Request.Context(), c.Param("id"), false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "donation restored"})
}

// Delete removes a listing and its images
// DELETE /api/admin/donations/:id
func (h *ModerationHandler) Delete(c *gin.Context) {
	if err := h.moderationService.DeleteDonation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "donation deleted"})
}

// Ban blocks an account from write actions
// POST /api/admin/users/:id/ban
func (h *ModerationHandler) Ban(c *gin.Context) {
	if err := h.moderationService.BanUser(c.Request.Context(), c.Param("id"), true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user banned"})
}

// Unban lifts a ban
// POST /api/admin/users/:id/unban
func (h *ModerationHandler) Unban(c *gin.Context) {
	if err := h.moderationService.BanUser(c.Request.Context(), c.Param("id"), false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unbanned"})
}

// Stats serves the dashboard header counts
// GET /api/admin/stats
func (h *ModerationHandler) Stats(c *gin.Context) {
	stats, err := h.moderationService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
