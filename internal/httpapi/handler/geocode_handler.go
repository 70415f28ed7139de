package handler

import (
	"net/http"
	"strconv"

	"mealbridge/internal/geocode"

	"github.com/gin-gonic/gin"
)

type GeocodeHandler struct {
	geocodeService *geocode.Service
}

func NewGeocodeHandler(geocodeService *geocode.Service) *GeocodeHandler {
	return &GeocodeHandler{geocodeService: geocodeService}
}

// RegisterRoutes registers the reverse-geocode proxy. The parent group
// carries the rate limit.
func (h *GeocodeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/geocode/reverse", h.Reverse)
}

// Reverse resolves a coordinate to an address
// GET /api/geocode/reverse?lat=..&lng=..
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
		return
	}

	address, cached, err := h.geocodeService.ReverseLookup(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "reverse geocoding failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "cached": cached})
}
