package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

// CheckoutRequest carries the customer fields snapshotted onto the order
type CheckoutRequest struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryCity    string
	PaymentMethod   domain.PaymentMethod
	Notes           string
	PaymentProofURL *string
}

// CheckoutResult is what PlaceOrder hands back. FallbackMailto is set when
// the notification relay failed and the admin mail must be composed manually.
type CheckoutResult struct {
	Order          *domain.Order
	Items          []*domain.OrderItem
	EmailSent      bool
	FallbackMailto string
}

type checkoutService struct {
	repos    *repository.Repositories
	counts   *CartCountCache
	mailer   mailer.Mailer
	delivery config.DeliveryConfig
	admin    string
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	repos *repository.Repositories,
	counts *CartCountCache,
	m mailer.Mailer,
	delivery config.DeliveryConfig,
	adminEmail string,
	logger *zap.Logger,
) *checkoutService {
	return &checkoutService{
		repos:    repos,
		counts:   counts,
		mailer:   m,
		delivery: delivery,
		admin:    adminEmail,
		logger:   logger,
	}
}

// DeliveryFee is 0 at or above the free-delivery threshold, flat otherwise
func DeliveryFee(subtotal float64, cfg config.DeliveryConfig) float64 {
	if subtotal >= cfg.FreeThreshold {
		return 0
	}
	return cfg.FlatFee
}

// PlaceOrder runs the checkout sequence. Ordering matters: the order header
// must exist before its items, and the cart is cleared last, only after both
// writes succeeded. A failed item insert leaves the cart untouched.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	cartItems, err := s.repos.CartItem.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	subtotal := CartTotal(cartItems)
	deliveryFee := DeliveryFee(subtotal, s.delivery)

	order := &domain.Order{
		UserID:          userID,
		OrderNumber:     GenerateOrderNumber(),
		Status:          domain.OrderStatusPending,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		DeliveryCity:    deliveryCity(req.DeliveryCity),
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		Total:           subtotal + deliveryFee,
		Notes:           req.Notes,
		PaymentProofURL: req.PaymentProofURL,
	}

	s.logger.Info("Creating order",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Float64("total", order.Total),
	)
	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	items := make([]*domain.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		if cartItem.Product == nil {
			continue
		}
		items = append(items, &domain.OrderItem{
			OrderID:   order.ID,
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			// Current price frozen into the line; later catalog changes must
			// not alter this order.
			Price:   cartItem.Product.Price,
			Product: cartItem.Product,
		})
	}

	if err := s.repos.OrderItem.CreateBatch(ctx, items); err != nil {
		// Cart stays intact so nothing the customer picked is lost
		s.logger.Error("Failed to create order items, cart left untouched",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
		return nil, err
	}

	// Cart clearing is last and gated on the writes above
	if err := s.repos.CartItem.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Warn("Order persisted but cart clear failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
	s.counts.Forget(userID)

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		EventData: map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total":        order.Total,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order_created event", zap.Error(err))
	}

	result := &CheckoutResult{Order: order, Items: items}

	// Notification is best-effort; its failure never fails the order
	email := mailer.OrderEmail{Order: order, Items: items, AdminEmail: s.admin}
	if err := s.mailer.SendOrderNotification(ctx, email); err != nil {
		s.logger.Warn("Order notification failed, returning mailto fallback",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
		result.FallbackMailto = mailer.FallbackMailtoLink(email)
	} else {
		result.EmailSent = true
	}

	return result, nil
}

// GenerateOrderNumber produces the human-readable order identifier,
// e.g. AKZ-20260830-4F2A1C.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("AKZ-%s-%s", time.Now().Format("20060102"), suffix)
}

func validateCheckout(req CheckoutRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.CustomerName) == "" {
		fields["customer_name"] = "required"
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		fields["customer_email"] = "required"
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		fields["customer_phone"] = "required"
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		fields["delivery_address"] = "required"
	}
	if !req.PaymentMethod.IsValid() {
		fields["payment_method"] = "must be momo, bk or cash"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "missing required checkout fields", Fields: fields}
	}
	return nil
}

func deliveryCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return "Kigali"
	}
	return city
}
