package handler

import (
	"net/http"
	"strconv"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/repository"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const (
	minRadiusKm = 1.0
	maxRadiusKm = 25.0
)

type DonationHandler struct {
	donationService    service.DonationService
	reservationService service.ReservationService
}

func NewDonationHandler(donationService service.DonationService, reservationService service.ReservationService) *DonationHandler {
	return &DonationHandler{
		donationService:    donationService,
		reservationService: reservationService,
	}
}

// RegisterPublicRoutes registers the discovery surface. No auth required:
// browsing the board is open.
func (h *DonationHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/donations", h.List)
	router.GET("/donations/:id", h.Get)
	router.GET("/categories", h.Categories)
}

// RegisterRoutes registers owner routes (already authenticated by parent
// middleware).
func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/donations")
	{
		donations.POST("", h.Create)
		donations.PUT("/:id", h.Update)
		donations.POST("/:id/cancel", h.Cancel)
		donations.GET("/:id/reservations", h.ListReservations)
	}
	router.GET("/my/donations", h.ListMine)
}

// List retrieves the visible board with filtering, sorting and pagination
// GET /api/donations?category=&sealed_only=&sort=&radius_km=&lat=&lng=&page=&page_size=
func (h *DonationHandler) List(c *gin.Context) {
	var f repository.DonationFilter

	f.Category = c.Query("category")
	f.SealedOnly = c.Query("sealed_only") == "true"
	f.Sort = c.DefaultQuery("sort", repository.SortNewest)

	if v := c.Query("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
			return
		}
		f.Lat = &lat
	}
	if v := c.Query("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
			return
		}
		f.Lng = &lng
	}
	if v := c.Query("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius_km"})
			return
		}
		// The board supports a 1-25 km search radius; out-of-range values
		// clamp rather than fail.
		if radius < minRadiusKm {
			radius = minRadiusKm
		}
		if radius > maxRadiusKm {
			radius = maxRadiusKm
		}
		f.RadiusKm = radius
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}

	result, err := h.donationService.ListVisible(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get retrieves a single donation
// GET /api/donations/:id
func (h *DonationHandler) Get(c *gin.Context) {
	// viewerID is empty for anonymous browsers. The service decides hidden
	// visibility: owners and moderators see their way through, others get 404.
	viewerID := c.GetString("user_id")

	donation, err := h.donationService.GetByID(c.Request.Context(), viewerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

// Categories lists the fixed category set
// GET /api/categories
func (h *DonationHandler) Categories(c *gin.Context) {
	cats, err := h.donationService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// Create publishes a new listing
// POST /api/donations
func (h *DonationHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateDonationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, donation)
}

// Update edits an available listing
// PUT /api/donations/:id
func (h *DonationHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdateDonationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := h.donationService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

// Cancel withdraws a listing and its open reservations
// POST /api/donations/:id/cancel
func (h *DonationHandler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.donationService.CancelListing(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "donation canceled"})
}

// ListMine lists the caller's own listings, hidden ones included
// GET /api/my/donations
func (h *DonationHandler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")

	donations, err := h.donationService.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, donations)
}

// ListReservations shows the owner every request on their listing
// GET /api/donations/:id/reservations
func (h *DonationHandler) ListReservations(c *gin.Context) {
	userID := c.GetString("user_id")

	reservations, err := h.reservationService.ListForDonation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}
