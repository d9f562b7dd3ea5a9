package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
)

// CartAddRequest represents the add-to-cart payload
type CartAddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CartUpdateRequest represents the quantity-change payload
type CartUpdateRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartItemResponse is the cart line wire shape
type CartItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
	LineTotal float64          `json:"line_total"`
}

func toCartItemResponse(item *domain.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		p := toProductResponse(item.Product)
		resp.Product = &p
		resp.LineTotal = item.Product.Price * float64(item.Quantity)
	}
	return resp
}

// HandleListCart returns the caller's cart with the live-priced total
func HandleListCart(repos *repository.Repositories, counts *service.CartCountCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		cartService := service.NewCartService(repos, counts, logger)
		items, err := cartService.List(c.Request.Context(), profile.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]CartItemResponse, len(items))
		for i, item := range items {
			out[i] = toCartItemResponse(item)
		}

		c.JSON(http.StatusOK, gin.H{
			"items": out,
			"total": service.CartTotal(items),
		})
	}
}

// HandleAddToCart adds a product or bumps its quantity when already carted
func HandleAddToCart(repos *repository.Repositories, counts *service.CartCountCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CartAddRequest
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

		cartService := service.NewCartService(repos, counts, logger)
		item, err := cartService.AddToCart(c.Request.Context(), profile.ID, productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toCartItemResponse(item))
	}
}

// HandleUpdateCartItem changes a line's quantity. Quantities below one are
// rejected; removal is its own endpoint.
func HandleUpdateCartItem(repos *repository.Repositories, counts *service.CartCountCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
			return
		}

		var req CartUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cartService := service.NewCartService(repos, counts, logger)
		if err := cartService.UpdateQuantity(c.Request.Context(), profile.ID, itemID, req.Quantity); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
	}
}

// HandleRemoveCartItem deletes one line from the caller's cart
func HandleRemoveCartItem(repos *repository.Repositories, counts *service.CartCountCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
			return
		}

		cartService := service.NewCartService(repos, counts, logger)
		if err := cartService.RemoveItem(c.Request.Context(), profile.ID, itemID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
	}
}

// HandleCartCount returns the badge count, the sum of quantities across lines
func HandleCartCount(repos *repository.Repositories, counts *service.CartCountCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		cartService := service.NewCartService(repos, counts, logger)
		count, err := cartService.Count(c.Request.Context(), profile.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
