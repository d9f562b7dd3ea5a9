package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/handlers"
	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/internal/storage"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	counts *service.CartCountCache,
	blobs storage.Store,
	m mailer.Mailer,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "AKAZUBA FLORIST API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/categories",
				"GET /v1/products",
				"GET /v1/store/status",
				"POST /v1/auth/register",
				"POST /v1/auth/login",
				"POST /v1/cart/items",
				"POST /v1/checkout",
				"GET /v1/admin/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded images are served straight from the local store
	if local, ok := blobs.(*storage.LocalStore); ok && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, local.Dir())
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public storefront routes, no authentication
		v1.POST("/auth/register", handlers.HandleRegister(repos, logger))
		v1.POST("/auth/login", handlers.HandleLogin(repos, logger))
		v1.GET("/categories", handlers.HandleListCategories(repos, logger))
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))
		v1.GET("/store/status", handlers.HandleStoreStatus())
		v1.GET("/content/:page", handlers.HandleGetSiteContent(repos, logger))

		// Customer routes (require a session)
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(repos, logger))
		{
			authed.POST("/auth/logout", handlers.HandleLogout(repos, logger))
			authed.GET("/auth/me", handlers.HandleMe(logger))

			authed.GET("/cart", handlers.HandleListCart(repos, counts, logger))
			authed.GET("/cart/count", handlers.HandleCartCount(repos, counts, logger))
			authed.POST("/cart/items", handlers.HandleAddToCart(repos, counts, logger))
			authed.PUT("/cart/items/:id", handlers.HandleUpdateCartItem(repos, counts, logger))
			authed.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(repos, counts, logger))

			authed.GET("/wishlist", handlers.HandleListWishlist(repos, logger))
			authed.POST("/wishlist/toggle", handlers.HandleToggleWishlist(repos, logger))

			authed.POST("/uploads/payment-proof", handlers.HandleUploadPaymentProof(blobs, logger))

			checkout := authed.Group("")
			checkout.Use(middleware.IdempotencyMiddleware(repos, logger))
			{
				checkout.POST("/checkout", handlers.HandleCheckout(cfg, repos, counts, m, logger))
			}

			authed.GET("/orders", handlers.HandleListMyOrders(repos, logger))
			authed.GET("/orders/:id", handlers.HandleGetMyOrder(repos, logger))
		}

		// Back-office routes (require an admin session)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(repos, logger))
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/orders", handlers.HandleAdminListOrders(repos, logger))
			admin.GET("/orders/:id", handlers.HandleAdminGetOrder(repos, logger))
			admin.PUT("/orders/:id/status", handlers.HandleAdminUpdateOrderStatus(repos, logger))
			admin.DELETE("/orders/:id", handlers.HandleAdminDeleteOrder(repos, logger))

			admin.GET("/products", handlers.HandleAdminListProducts(repos, logger))
			admin.POST("/products", handlers.HandleAdminSaveProduct(repos, blobs, logger))
			admin.PUT("/products/:id", handlers.HandleAdminSaveProduct(repos, blobs, logger))
			admin.DELETE("/products/:id", handlers.HandleAdminDeleteProduct(repos, logger))
			admin.POST("/products/:id/restore", handlers.HandleAdminRestoreProduct(repos, logger))

			admin.POST("/categories", handlers.HandleAdminCreateCategory(repos, logger))
			admin.PUT("/categories/:id", handlers.HandleAdminUpdateCategory(repos, logger))

			admin.GET("/customers", handlers.HandleAdminListCustomers(repos, logger))
			admin.GET("/analytics/dashboard", handlers.HandleAdminDashboard(repos, logger))
			admin.PUT("/content", handlers.HandleAdminUpsertContent(repos, logger))
			admin.POST("/uploads", handlers.HandleAdminUpload(blobs, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
