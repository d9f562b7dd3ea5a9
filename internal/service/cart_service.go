package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type cartService struct {
	repos  *repository.Repositories
	counts *CartCountCache
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, counts *CartCountCache, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		counts: counts,
		logger: logger,
	}
}

// AddToCart inserts a cart row for (user, product) or increments the existing
// one; there is at most one row per pair. The cached badge count is bumped
// optimistically; the authoritative recount arrives via the change feed.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	product, err := s.repos.Product.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, &errors.ErrValidation{Message: "product is no longer available"}
	}

	existing, err := s.repos.CartItem.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		if err := s.repos.CartItem.UpdateQuantity(ctx, existing.ID, existing.Quantity+1); err != nil {
			return nil, err
		}
		existing.Quantity++
		s.counts.OptimisticAdd(userID, 1)
		return existing, nil
	}
	if _, ok := err.(*errors.ErrNotFound); !ok {
		return nil, err
	}

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := s.repos.CartItem.Create(ctx, item); err != nil {
		return nil, err
	}

	s.counts.OptimisticAdd(userID, 1)
	return item, nil
}

// UpdateQuantity overwrites the quantity. Quantities below 1 are rejected
// before any write; removal goes through RemoveItem.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return &errors.ErrValidation{Message: "quantity must be at least 1"}
	}

	item, err := s.repos.CartItem.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return &errors.ErrForbidden{Message: "cart item belongs to another user"}
	}

	if err := s.repos.CartItem.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return err
	}

	s.counts.OptimisticAdd(userID, quantity-item.Quantity)
	return nil
}

// RemoveItem deletes the cart row unconditionally
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.repos.CartItem.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return &errors.ErrForbidden{Message: "cart item belongs to another user"}
	}

	if err := s.repos.CartItem.Delete(ctx, itemID); err != nil {
		return err
	}

	s.counts.OptimisticAdd(userID, -item.Quantity)
	return nil
}

// List returns the user's cart rows with live products joined
func (s *cartService) List(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	return s.repos.CartItem.ListByUserID(ctx, userID)
}

// Count returns the cached badge count, recounting from the store when the
// cache holds nothing for this user.
func (s *cartService) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.counts.Count(ctx, userID)
}

// CartTotal sums current live price times quantity over the items. Delivery
// fee is never part of the cart total.
func CartTotal(items []*domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}
