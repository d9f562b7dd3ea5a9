package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
)

const (
	ProfileContextKey = "profile"
	SessionContextKey = "session"
)

// AuthMiddleware authenticates requests using a bearer session token. Guests
// get a 401 pointing at registration; customer-facing pages redirect there
// instead of mutating anything.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "redirect": "/register"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			c.Abort()
			return
		}

		auth := service.NewAuthService(repos, logger)
		profile, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Failed to authenticate session", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(ProfileContextKey, profile)
		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin gates the back office. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := GetProfileFromContext(c)
		if !ok || !profile.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetProfileFromContext retrieves the authenticated profile from the Gin context
func GetProfileFromContext(c *gin.Context) (*domain.Profile, bool) {
	value, exists := c.Get(ProfileContextKey)
	if !exists {
		return nil, false
	}

	profile, ok := value.(*domain.Profile)
	return profile, ok
}

// GetSessionFromContext retrieves the current session from the Gin context
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*domain.Session)
	return session, ok
}
