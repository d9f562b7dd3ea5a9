package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/service"
)

func TestDashboardEmptyStore(t *testing.T) {
	env := newTestEnv()

	analytics := service.NewAnalyticsService(env.repos, env.logger)
	stats, err := analytics.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AverageOrderValue, "no division by zero on an empty store")
}

func TestDashboardCountsAndRevenue(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	env.seedProduct(category.ID, "Rose Bouquet", 25000)

	low := env.seedProduct(category.ID, "Last Lilies", 35000)
	low.StockQuantity = 2
	require.NoError(t, env.repos.Product.Update(context.Background(), low))

	delivered := seedOrder(t, env, user.ID)
	seedOrder(t, env, user.ID) // stays pending

	orders := service.NewOrderService(env.repos, env.logger)
	ctx := context.Background()
	require.NoError(t, orders.UpdateStatus(ctx, delivered.ID, domain.OrderStatusDelivered))

	analytics := service.NewAnalyticsService(env.repos, env.logger)
	stats, err := analytics.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.LowStockProducts)

	// Only delivered orders count toward revenue
	assert.Equal(t, 35000.0, stats.TotalRevenue)
	assert.Equal(t, 17500.0, stats.AverageOrderValue)
}

func TestMonthWindow(t *testing.T) {
	at := time.Date(2026, time.February, 14, 9, 30, 0, 0, time.UTC)
	from, to := service.MonthWindow(at)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), to)

	// December rolls into January of the next year
	from, to = service.MonthWindow(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
