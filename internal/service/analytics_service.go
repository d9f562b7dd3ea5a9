package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
)

// LowStockThreshold is the stock level below which a product counts as low
const LowStockThreshold = 10

type analyticsService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos *repository.Repositories, logger *zap.Logger) *analyticsService {
	return &analyticsService{
		repos:  repos,
		logger: logger,
	}
}

// Dashboard recomputes the admin stats from scratch. The queries are
// independent; point-in-time skew between them is acceptable.
func (s *analyticsService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.repos.Analytics.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.repos.Analytics.CountOrders(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.repos.Analytics.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.repos.Analytics.CountOrdersByStatus(ctx, domain.OrderStatusPending); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.repos.Analytics.CountOrdersByStatus(ctx, domain.OrderStatusDelivered); err != nil {
		return nil, err
	}
	if stats.LowStockProducts, err = s.repos.Analytics.CountLowStockProducts(ctx, LowStockThreshold); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.repos.Analytics.RevenueDelivered(ctx); err != nil {
		return nil, err
	}

	from, to := MonthWindow(time.Now())
	if stats.MonthlyRevenue, err = s.repos.Analytics.RevenueDeliveredBetween(ctx, from, to); err != nil {
		return nil, err
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	return stats, nil
}

// MonthWindow returns [start of t's calendar month, start of the next month)
func MonthWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}
