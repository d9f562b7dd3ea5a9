package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/pkg/hours"
)

// CategoryResponse is the category wire shape
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"image_url,omitempty"`
}

// HandleListCategories returns all categories for storefront navigation
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]CategoryResponse, len(categories))
		for i, cat := range categories {
			out[i] = CategoryResponse{
				ID:          cat.ID.String(),
				Name:        cat.Name,
				Description: cat.Description,
				Slug:        cat.Slug,
				ImageURL:    cat.ImageURL,
			}
		}

		c.JSON(http.StatusOK, gin.H{"categories": out})
	}
}

// HandleListProducts returns active products, optionally filtered by
// ?category_id. Inactive products never appear here.
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *uuid.UUID
		if raw := c.Query("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
				return
			}
			categoryID = &id
		}

		productService := service.NewProductService(repos, nil, logger)
		products, err := productService.Catalog(c.Request.Context(), categoryID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
	}
}

// HandleGetProduct returns a single product by ID. Inactive products resolve
// here too so historical order lines keep a name and image.
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		productService := service.NewProductService(repos, nil, logger)
		product, err := productService.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleStoreStatus reports whether the shop is currently open
func HandleStoreStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := hours.Now()
		c.JSON(http.StatusOK, gin.H{
			"status":         status,
			"business_hours": hours.String(),
		})
	}
}

// HandleGetSiteContent returns the editable text blocks for one page
func HandleGetSiteContent(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := c.Param("page")
		blocks, err := repos.SiteContent.ListByPage(c.Request.Context(), page)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		// section -> content, the shape the storefront templates consume
		out := make(map[string]string, len(blocks))
		for _, b := range blocks {
			out[b.Section] = b.Content
		}

		c.JSON(http.StatusOK, gin.H{"page": page, "sections": out})
	}
}
