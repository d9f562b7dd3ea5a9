package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
)

// WishlistToggleRequest represents the toggle payload
type WishlistToggleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// WishlistItemResponse is the wishlist line wire shape
type WishlistItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// HandleListWishlist returns the caller's saved products
func HandleListWishlist(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		wishlistService := service.NewWishlistService(repos, logger)
		items, err := wishlistService.List(c.Request.Context(), profile.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]WishlistItemResponse, len(items))
		for i, item := range items {
			out[i] = WishlistItemResponse{
				ID:        item.ID.String(),
				ProductID: item.ProductID.String(),
			}
			if item.Product != nil {
				p := toProductResponse(item.Product)
				out[i].Product = &p
			}
		}

		c.JSON(http.StatusOK, gin.H{"items": out})
	}
}

// HandleToggleWishlist adds the product when absent, removes it when present,
// and reports the resulting membership.
func HandleToggleWishlist(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req WishlistToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}

		wishlistService := service.NewWishlistService(repos, logger)
		inWishlist, err := wishlistService.Toggle(c.Request.Context(), profile.ID, productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"in_wishlist": inWishlist})
	}
}
