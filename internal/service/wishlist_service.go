package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type wishlistService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(repos *repository.Repositories, logger *zap.Logger) *wishlistService {
	return &wishlistService{
		repos:  repos,
		logger: logger,
	}
}

// Toggle flips membership for (user, product) and returns the resulting state:
// true when the call inserted, false when it removed. Two toggles in sequence
// restore the original membership; membership is always re-derived from the
// store here, never from a cached delta.
func (s *wishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if _, err := s.repos.Product.GetByID(ctx, productID); err != nil {
		return false, err
	}

	existing, err := s.repos.WishlistItem.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		if err := s.repos.WishlistItem.Delete(ctx, existing.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, ok := err.(*errors.ErrNotFound); !ok {
		return false, err
	}

	item := &domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.repos.WishlistItem.Create(ctx, item); err != nil {
		return false, err
	}
	return true, nil
}

// IsInWishlist tests membership against the authoritative set
func (s *wishlistService) IsInWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	_, err := s.repos.WishlistItem.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*errors.ErrNotFound); ok {
		return false, nil
	}
	return false, err
}

// List returns the user's saved products
func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	return s.repos.WishlistItem.ListByUserID(ctx, userID)
}
