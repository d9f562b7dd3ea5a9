package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/internal/storage"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerEmail   string  `json:"customer_email" binding:"required,email"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	DeliveryCity    string  `json:"delivery_city"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	Notes           string  `json:"notes"`
	PaymentProofURL *string `json:"payment_proof_url,omitempty"`
}

// CheckoutResponse represents the checkout response
type CheckoutResponse struct {
	Order          OrderResponse `json:"order"`
	EmailSent      bool          `json:"email_sent"`
	FallbackMailto string        `json:"fallback_mailto,omitempty"`
}

// HandleCheckout converts the caller's cart into an order. With an
// Idempotency-Key header a retried request returns the first attempt's order.
func HandleCheckout(
	cfg *config.Config,
	repos *repository.Repositories,
	counts *service.CartCountCache,
	m mailer.Mailer,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		idemKey, requestHash, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			orderID, err := uuid.Parse(existingOrderID)
			if err != nil {
				logger.Error("Invalid existing order ID from idempotency", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}

			orderService := service.NewOrderService(repos, logger)
			order, items, err := orderService.GetWithItems(c.Request.Context(), orderID)
			if err != nil {
				respondError(c, logger, err)
				return
			}

			c.JSON(http.StatusOK, CheckoutResponse{Order: toOrderResponse(order, items)})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		checkoutService := service.NewCheckoutService(repos, counts, m, cfg.Delivery, cfg.SMTP.AdminEmail, logger)
		result, err := checkoutService.PlaceOrder(c.Request.Context(), profile.ID, service.CheckoutRequest{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			DeliveryAddress: req.DeliveryAddress,
			DeliveryCity:    req.DeliveryCity,
			PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
			Notes:           req.Notes,
			PaymentProofURL: req.PaymentProofURL,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}

		if idemKey != "" {
			err := repos.IdempotencyKey.Create(c.Request.Context(), &domain.IdempotencyKey{
				Key:         idemKey,
				ProfileID:   profile.ID,
				OrderID:     result.Order.ID,
				RequestHash: requestHash,
				CreatedAt:   time.Now(),
			})
			if err != nil {
				// The order exists; a retry without the key record just places again
				logger.Error("Failed to store idempotency key", zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, CheckoutResponse{
			Order:          toOrderResponse(result.Order, result.Items),
			EmailSent:      result.EmailSent,
			FallbackMailto: result.FallbackMailto,
		})
	}
}

// HandleListMyOrders returns the caller's orders, newest first
func HandleListMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		orders, err := orderService.ListForUser(c.Request.Context(), profile.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]OrderResponse, len(orders))
		for i, order := range orders {
			out[i] = toOrderResponse(order, nil)
		}

		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

// HandleGetMyOrder returns one of the caller's orders with its lines. Other
// users' orders return 404, not 403, to avoid confirming they exist.
func HandleGetMyOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, items, err := orderService.GetWithItems(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		if order.UserID != profile.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order, items))
	}
}

// HandleUploadPaymentProof stores a payment screenshot and returns its URL
// for the subsequent checkout call.
func HandleUploadPaymentProof(blobs storage.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetProfileFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		defer file.Close()

		url, err := blobs.Save(c.Request.Context(), header.Filename, file)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
