package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

func seedOrder(t *testing.T, env *testEnv, userID uuid.UUID) *domain.Order {
	t.Helper()
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		OrderNumber:     service.GenerateOrderNumber(),
		Status:          domain.OrderStatusPending,
		CustomerName:    "Alice Uwase",
		CustomerEmail:   "alice@example.com",
		CustomerPhone:   "+250788123456",
		DeliveryAddress: "KG 11 Ave 5",
		DeliveryCity:    "Kigali",
		PaymentMethod:   domain.PaymentMethodMoMo,
		Subtotal:        30000,
		DeliveryFee:     5000,
		Total:           35000,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	require.NoError(t, env.repos.Order.Create(context.Background(), order))
	return order
}

func TestUpdateStatusAllowsAnyValidStatus(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	order := seedOrder(t, env, user.ID)

	orders := service.NewOrderService(env.repos, env.logger)
	ctx := context.Background()

	// Skipping straight to delivered and reopening afterwards are both
	// accepted; the admin's word is final.
	require.NoError(t, orders.UpdateStatus(ctx, order.ID, domain.OrderStatusDelivered))
	require.NoError(t, orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPending))
	require.NoError(t, orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled))

	stored, err := env.repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	order := seedOrder(t, env, user.ID)

	orders := service.NewOrderService(env.repos, env.logger)
	err := orders.UpdateStatus(context.Background(), order.ID, "refunded")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrValidation{}, err)
}

func TestUpdateStatusRecordsEvent(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	order := seedOrder(t, env, user.ID)

	orders := service.NewOrderService(env.repos, env.logger)
	ctx := context.Background()
	require.NoError(t, orders.UpdateStatus(ctx, order.ID, domain.OrderStatusConfirmed))

	events, err := env.repos.OrderEvent.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "status_change", events[0].EventType)
}

func TestDeleteOrderRemovesItemsFirst(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 30000)
	order := seedOrder(t, env, user.ID)

	ctx := context.Background()
	require.NoError(t, env.repos.OrderItem.CreateBatch(ctx, []*domain.OrderItem{{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     30000,
	}}))

	orders := service.NewOrderService(env.repos, env.logger)
	require.NoError(t, orders.Delete(ctx, order.ID))

	_, err := env.repos.Order.GetByID(ctx, order.ID)
	assert.IsType(t, &errors.ErrNotFound{}, err)

	lines, err := env.repos.OrderItem.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestGetWithItemsResolvesInactiveProducts(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 30000)
	order := seedOrder(t, env, user.ID)

	ctx := context.Background()
	require.NoError(t, env.repos.OrderItem.CreateBatch(ctx, []*domain.OrderItem{{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  2,
		Price:     30000,
	}}))

	// Soft-deleting the product must not break the order history
	require.NoError(t, env.repos.Product.SetActive(ctx, product.ID, false))

	orders := service.NewOrderService(env.repos, env.logger)
	_, items, err := orders.GetWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Rose Bouquet", items[0].Product.Name)
}
