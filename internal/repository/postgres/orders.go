package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, user_id, order_number, status, customer_name, customer_email,
		customer_phone, delivery_address, delivery_city, payment_method,
		subtotal, delivery_fee, total, notes, payment_proof_url, created_at, updated_at`

func scanOrder(scanner interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var order domain.Order
	var notes sql.NullString
	var paymentProofURL sql.NullString

	err := scanner.Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.Status,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.DeliveryAddress,
		&order.DeliveryCity,
		&order.PaymentMethod,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.Total,
		&notes,
		&paymentProofURL,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		order.Notes = notes.String
	}
	if paymentProofURL.Valid {
		order.PaymentProofURL = &paymentProofURL.String
	}

	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.OrderNumber,
		order.Status,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryAddress,
		order.DeliveryCity,
		order.PaymentMethod,
		order.Subtotal,
		order.DeliveryFee,
		order.Total,
		order.Notes,
		order.PaymentProofURL,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, orderNumber))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
	}
	if err != nil {
		r.logger.Error("Failed to get order by order number", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	if status != nil {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		return r.queryOrders(ctx, query, *status, limit, offset)
	}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// UpdateStatus overwrites the status unconditionally; transition checks happen
// (as warnings) in the service layer.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}
