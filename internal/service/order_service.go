package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// UpdateStatus overwrites the order's status with any valid value. Transitions
// are deliberately unrestricted for the admin; out-of-order changes are logged
// rather than rejected.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus) error {
	if !newStatus.IsValid() {
		return &errors.ErrValidation{Message: "unknown order status: " + string(newStatus)}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status != newStatus && !order.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("Out-of-order status change",
			zap.String("order_number", order.OrderNumber),
			zap.String("from", string(order.Status)),
			zap.String("to", string(newStatus)),
		)
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: "status_change",
		EventData: map[string]interface{}{
			"from": order.Status,
			"to":   newStatus,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record status_change event", zap.Error(err))
	}

	return nil
}

// Delete removes an order and its lines. Items go first so no orphaned rows
// survive even without an FK cascade.
func (s *orderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.repos.Order.GetByID(ctx, orderID); err != nil {
		return err
	}

	if err := s.repos.OrderItem.DeleteByOrderID(ctx, orderID); err != nil {
		return err
	}

	return s.repos.Order.Delete(ctx, orderID)
}

// GetWithItems loads an order and its lines
func (s *orderService) GetWithItems(ctx context.Context, orderID uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repos.OrderItem.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// List returns orders newest first, optionally filtered by status
func (s *orderService) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.repos.Order.List(ctx, status, limit, offset)
}

// ListForUser returns one customer's orders, scoped by ownership
func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.repos.Order.ListByUserID(ctx, userID)
}
