package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
)

// RegisterRequest represents the signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token and the signed-in profile
type AuthResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:       p.ID.String(),
		Email:    p.Email,
		FullName: p.FullName,
		IsAdmin:  p.IsAdmin,
	}
}

// HandleRegister creates an account and signs it in immediately
func HandleRegister(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		authService := service.NewAuthService(repos, logger)
		profile, token, err := authService.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		logger.Info("Registered new profile", zap.String("profile_id", profile.ID.String()))
		c.JSON(http.StatusCreated, AuthResponse{Token: token, Profile: toProfileResponse(profile)})
	}
}

// HandleLogin verifies credentials and opens a new session
func HandleLogin(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		authService := service.NewAuthService(repos, logger)
		profile, token, err := authService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, Profile: toProfileResponse(profile)})
	}
}

// HandleLogout deletes the session backing the presented token
func HandleLogout(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		authService := service.NewAuthService(repos, logger)
		if err := authService.Logout(c.Request.Context(), session.ID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// HandleMe returns the authenticated profile
func HandleMe(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(profile))
	}
}
