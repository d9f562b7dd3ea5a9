package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
)

type analyticsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB, logger *zap.Logger) *analyticsRepository {
	return &analyticsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *analyticsRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		r.logger.Error("Failed to run count query", zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (r *analyticsRepository) sum(ctx context.Context, query string, args ...interface{}) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to run sum query", zap.Error(err))
		return 0, err
	}
	return total, nil
}

func (r *analyticsRepository) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

func (r *analyticsRepository) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders`)
}

func (r *analyticsRepository) CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status)
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles WHERE is_admin = false`)
}

func (r *analyticsRepository) CountLowStockProducts(ctx context.Context, threshold int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE stock_quantity < $1 AND is_active = true`, threshold)
}

func (r *analyticsRepository) RevenueDelivered(ctx context.Context) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = $1`, domain.OrderStatusDelivered)
}

func (r *analyticsRepository) RevenueDeliveredBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = $1 AND created_at >= $2 AND created_at < $3`,
		domain.OrderStatusDelivered, from, to,
	)
}
