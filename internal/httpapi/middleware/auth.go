package middleware

import (
	"errors"
	"net/http"
	"strings"

	"mealbridge/internal/httpapi/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Claims is what we read out of the identity provider's access token. The
// subject is the user id; the profile row shares it.
type Claims struct {
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token and puts the caller's identity in
// the request context for handlers to use.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("display_name", claims.DisplayName)

		c.Next()
	}
}

// OptionalAuth identifies the caller when a Bearer token is supplied but
// lets anonymous requests through. Public routes use it so owners and
// moderators can still reach their hidden listings by id.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("display_name", claims.DisplayName)

		c.Next()
	}
}

// RequireNotBanned blocks write actions from banned accounts. Reads stay
// open so a banned user can still see their own data.
func RequireNotBanned(profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		p, err := profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No profile row yet means nothing to ban.
				c.Next()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			c.Abort()
			return
		}
		if p.IsBanned {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is banned"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireModerator restricts a route group to admin and ngo profiles. The
// role lives on the profile row, not in the token, so a revoked moderator
// loses access on the next request.
func RequireModerator(profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		p, err := profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
			c.Abort()
			return
		}
		if p.IsBanned || !p.IsModerator() {
			c.JSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
