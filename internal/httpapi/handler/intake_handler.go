package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"mealbridge/internal/intake"

	"github.com/gin-gonic/gin"
)

// Images are forwarded to the model inline, so keep uploads small.
const maxIntakeImageBytes = 8 << 20

// Analyzer is satisfied by *intake.Client. The indirection keeps the handler
// testable without real model calls.
type Analyzer interface {
	Analyze(ctx context.Context, images []intake.Image) (*intake.Result, error)
}

type IntakeHandler struct {
	analyzer Analyzer
}

func NewIntakeHandler(analyzer Analyzer) *IntakeHandler {
	return &IntakeHandler{analyzer: analyzer}
}

// RegisterRoutes registers the photo intake endpoint. The parent group
// carries auth and the rate limit.
func (h *IntakeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ai/intake", h.Analyze)
}

// Analyze extracts listing fields from 1-3 product photos
// POST /api/ai/intake (multipart/form-data, field "images")
func (h *IntakeHandler) Analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form data"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
		return
	}
	if len(files) > intake.MaxImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maximum %d images allowed", intake.MaxImages)})
		return
	}

	images := make([]intake.Image, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxIntakeImageBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxIntakeImageBytes))
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		images = append(images, intake.Image{
			MIMEType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), images)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
