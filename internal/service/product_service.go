package service

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/storage"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type productService struct {
	repos  *repository.Repositories
	store  storage.Store
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repos *repository.Repositories, store storage.Store, logger *zap.Logger) *productService {
	return &productService{
		repos:  repos,
		store:  store,
		logger: logger,
	}
}

// ImageUpload is an optional attachment to Save
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// Save upserts a product: update when the ID is set, insert otherwise. Any
// attached image is stored first so the row never references an image that
// does not exist; a failed upload falls back to the placeholder.
func (s *productService) Save(ctx context.Context, product *domain.Product, image *ImageUpload) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, &errors.ErrValidation{Message: "product name is required"}
	}
	if product.Price < 0 {
		return nil, &errors.ErrValidation{Message: "price must be non-negative"}
	}
	if product.StockQuantity < 0 {
		return nil, &errors.ErrValidation{Message: "stock quantity must be non-negative"}
	}
	if _, err := s.repos.Category.GetByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.store.Save(ctx, image.Filename, image.Reader)
		if err != nil {
			s.logger.Warn("Product image upload failed, using placeholder",
				zap.String("name", product.Name), zap.Error(err))
			product.ImageURL = storage.PlaceholderImageURL
		} else {
			product.ImageURL = url
		}
	}
	if product.ImageURL == "" {
		product.ImageURL = storage.PlaceholderImageURL
	}

	if product.ID == uuid.Nil {
		product.IsActive = true
		if err := s.repos.Product.Create(ctx, product); err != nil {
			return nil, err
		}
		return product, nil
	}

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete hides the product from customers; the row survives for
// historical order items.
func (s *productService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.repos.Product.SetActive(ctx, id, false)
}

// Restore makes a soft-deleted product visible again
func (s *productService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repos.Product.SetActive(ctx, id, true)
}

// Catalog is the customer-facing listing; only active products, optionally
// narrowed to one category.
func (s *productService) Catalog(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Product, error) {
	return s.repos.Product.ListActive(ctx, categoryID)
}

// AdminList optionally includes soft-deleted rows
func (s *productService) AdminList(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	return s.repos.Product.List(ctx, includeInactive)
}

// Get resolves by ID regardless of the active flag
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repos.Product.GetByID(ctx, id)
}
