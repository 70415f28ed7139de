package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit gates a route group behind a shared token bucket. Used on the
// proxy endpoints (geocoding, photo intake) so one client cannot burn the
// upstream quota for everyone.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
