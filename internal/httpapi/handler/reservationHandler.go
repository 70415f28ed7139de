package handler

import (
	"net/http"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService service.ReservationService
}

func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// RegisterRoutes registers reservation routes (already authenticated by
// parent middleware).
func (h *ReservationHandler) RegisterRoutes(router *gin.RouterGroup) {
	reservations := router.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.POST("/:id/approve", h.Approve)
		reservations.POST("/:id/decline", h.Decline)
		reservations.POST("/:id/complete", h.Complete)
		reservations.POST("/:id/cancel", h.Cancel)
	}
	router.GET("/my/reservations", h.ListMine)
}

// Create requests a reservation on an available donation
// POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateReservationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// Approve accepts one pending request and declines the rest
// POST /api/reservations/:id/approve
func (h *ReservationHandler) Approve(c *gin.Context) {
	userID := c.GetString("user_id")

	// Every decision field is optional, so an empty body is fine.
	var req dto.DecisionDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.reservationService.Approve(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation approved"})
}

// Decline rejects a single pending request
// POST /api/reservations/:id/decline
func (h *ReservationHandler) Decline(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.DecisionDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.reservationService.Decline(c.Request.Context(), userID, c.Param("id"), req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation declined"})
}

// Complete marks an accepted reservation as picked up
// POST /api/reservations/:id/complete
func (h *ReservationHandler) Complete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.reservationService.Complete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation completed"})
}

// Cancel withdraws the caller's own reservation
// POST /api/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.reservationService.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation canceled"})
}

// ListMine lists the caller's reservations across donations
// GET /api/my/reservations
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")

	reservations, err := h.reservationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}
