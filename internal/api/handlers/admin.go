package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api/middleware"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/internal/storage"
)

// UpdateOrderStatusRequest represents the status change payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleAdminListOrders returns all orders, optionally filtered by ?status,
// paginated with ?limit and ?offset.
func HandleAdminListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := domain.OrderStatus(raw)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
				return
			}
			status = &s
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}
		offset := 0
		if raw := c.Query("offset"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				offset = n
			}
		}

		orderService := service.NewOrderService(repos, logger)
		orders, err := orderService.List(c.Request.Context(), status, limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]OrderResponse, len(orders))
		for i, order := range orders {
			out[i] = toOrderResponse(order, nil)
		}

		c.JSON(http.StatusOK, gin.H{"orders": out, "limit": limit, "offset": offset})
	}
}

// HandleAdminGetOrder returns any order with its lines
func HandleAdminGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		c.JSON(http.StatusOK, toOrderResponse(order, items))
	}
}

// HandleAdminUpdateOrderStatus sets an order's status. Any valid status is
// accepted regardless of the current one.
func HandleAdminUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.UpdateStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": req.Status})
	}
}

// HandleAdminDeleteOrder removes an order and its lines permanently
func HandleAdminDeleteOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.Delete(c.Request.Context(), orderID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

// HandleAdminListProducts returns all products, inactive ones included when
// ?include_inactive=true.
func HandleAdminListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		includeInactive := c.Query("include_inactive") == "true"

		productService := service.NewProductService(repos, nil, logger)
		products, err := productService.AdminList(c.Request.Context(), includeInactive)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
	}
}

// HandleAdminSaveProduct creates or updates a product from a multipart form.
// An "image" file part is optional; a failed upload falls back to the
// placeholder rather than aborting the save.
func HandleAdminSaveProduct(repos *repository.Repositories, blobs storage.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product := &domain.Product{}

		if raw := c.Param("id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
				return
			}
			product.ID = id
		}

		categoryID, err := uuid.Parse(c.PostForm("category_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		product.CategoryID = categoryID
		product.Name = c.PostForm("name")
		product.Description = c.PostForm("description")

		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		product.Price = price

		if raw := c.PostForm("stock_quantity"); raw != "" {
			stock, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock_quantity"})
				return
			}
			product.StockQuantity = stock
		}

		var image *service.ImageUpload
		if file, header, err := c.Request.FormFile("image"); err == nil {
			defer file.Close()
			image = &service.ImageUpload{Filename: header.Filename, Reader: file}
		}

		productService := service.NewProductService(repos, blobs, logger)
		saved, err := productService.Save(c.Request.Context(), product, image)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		status := http.StatusOK
		if c.Param("id") == "" {
			status = http.StatusCreated
		}
		c.JSON(status, toProductResponse(saved))
	}
}

// HandleAdminDeleteProduct soft-deletes a product. Historical order lines
// keep resolving it; the catalog stops listing it.
func HandleAdminDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		productService := service.NewProductService(repos, nil, logger)
		if err := productService.SoftDelete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deactivated"})
	}
}

// HandleAdminRestoreProduct puts a soft-deleted product back in the catalog
func HandleAdminRestoreProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		productService := service.NewProductService(repos, nil, logger)
		if err := productService.Restore(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product restored"})
	}
}

// CategoryRequest represents the create/update category payload
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required"`
	ImageURL    string `json:"image_url"`
}

// HandleAdminCreateCategory adds a category
func HandleAdminCreateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		category := &domain.Category{
			ID:          uuid.New(),
			Name:        req.Name,
			Description: req.Description,
			Slug:        req.Slug,
			ImageURL:    req.ImageURL,
		}
		if err := repos.Category.Create(c.Request.Context(), category); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": category.ID.String()})
	}
}

// HandleAdminUpdateCategory edits a category
func HandleAdminUpdateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		category, err := repos.Category.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		category.Name = req.Name
		category.Description = req.Description
		category.Slug = req.Slug
		category.ImageURL = req.ImageURL
		if err := repos.Category.Update(c.Request.Context(), category); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "category updated"})
	}
}

// HandleAdminListCustomers returns all registered profiles
func HandleAdminListCustomers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := repos.Profile.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]ProfileResponse, len(profiles))
		for i, p := range profiles {
			out[i] = toProfileResponse(p)
		}

		c.JSON(http.StatusOK, gin.H{"customers": out})
	}
}

// HandleAdminDashboard returns the dashboard stats, recomputed on each call
func HandleAdminDashboard(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		analyticsService := service.NewAnalyticsService(repos, logger)
		stats, err := analyticsService.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_products":      stats.TotalProducts,
			"total_orders":        stats.TotalOrders,
			"total_customers":     stats.TotalCustomers,
			"pending_orders":      stats.PendingOrders,
			"delivered_orders":    stats.DeliveredOrders,
			"low_stock_products":  stats.LowStockProducts,
			"total_revenue":       stats.TotalRevenue,
			"monthly_revenue":     stats.MonthlyRevenue,
			"average_order_value": stats.AverageOrderValue,
		})
	}
}

// SiteContentRequest represents the content upsert payload
type SiteContentRequest struct {
	Page    string `json:"page" binding:"required"`
	Section string `json:"section" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// HandleAdminUpsertContent writes an editable text block, keyed by
// (page, section). Existing blocks are overwritten.
func HandleAdminUpsertContent(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.GetProfileFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req SiteContentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		content := &domain.SiteContent{
			Page:      req.Page,
			Section:   req.Section,
			Content:   req.Content,
			UpdatedBy: &profile.ID,
		}
		if err := repos.SiteContent.Upsert(c.Request.Context(), content); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "content saved"})
	}
}

// HandleAdminUpload stores an arbitrary admin asset and returns its URL
func HandleAdminUpload(blobs storage.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
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
