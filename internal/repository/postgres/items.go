package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
)

type orderItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *sql.DB, logger *zap.Logger) *orderItemRepository {
	return &orderItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
		VALUES `

	args := make([]interface{}, 0, len(items)*6)
	now := time.Now()

	for i, item := range items {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		args = append(args,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
			item.CreatedAt,
		)
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to create order items batch", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price, i.created_at,
			p.id, p.category_id, p.name, p.description, p.price, p.image_url,
			p.stock_quantity, p.is_active, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items by order ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var product domain.Product
		var description, imageURL sql.NullString

		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&item.CreatedAt,
			&product.ID,
			&product.CategoryID,
			&product.Name,
			&description,
			&product.Price,
			&imageURL,
			&product.StockQuantity,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if description.Valid {
			product.Description = description.String
		}
		if imageURL.Valid {
			product.ImageURL = imageURL.String
		}
		item.Product = &product
		items = append(items, &item)
	}

	return items, rows.Err()
}

// DeleteByOrderID removes an order's lines explicitly before the header is
// deleted, so no orphaned rows survive even without an FK cascade.
func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		r.logger.Error("Failed to delete order items", zap.Error(err))
		return err
	}
	return nil
}
