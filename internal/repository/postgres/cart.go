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

type cartItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *sql.DB, logger *zap.Logger) *cartItemRepository {
	return &cartItemRepository{
		db:     db,
		logger: logger,
	}
}

const cartItemColumns = `c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at`

func (r *cartItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items c WHERE c.id = $1`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart_item", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get cart item by ID", zap.Error(err))
		return nil, err
	}

	return &item, nil
}

func (r *cartItemRepository) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items c WHERE c.user_id = $1 AND c.product_id = $2`

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart_item", ID: productID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get cart item by user and product", zap.Error(err))
		return nil, err
	}

	return &item, nil
}

// ListByUserID returns the user's cart rows with the live product joined in,
// newest first.
func (r *cartItemRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	query := `
		SELECT ` + cartItemColumns + `,
			p.id, p.category_id, p.name, p.description, p.price, p.image_url,
			p.stock_quantity, p.is_active, p.created_at, p.updated_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var product domain.Product
		var description, imageURL sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
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

func (r *cartItemRepository) SumQuantities(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE user_id = $1`

	var sum int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		r.logger.Error("Failed to sum cart quantities", zap.Error(err))
		return 0, err
	}

	return sum, nil
}

func (r *cartItemRepository) Create(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create cart item", zap.Error(err))
		return err
	}

	return nil
}

func (r *cartItemRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, quantity, time.Now())
	if err != nil {
		r.logger.Error("Failed to update cart item quantity", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "cart_item", ID: id.String()}
	}

	return nil
}

func (r *cartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete cart item", zap.Error(err))
		return err
	}
	return nil
}

func (r *cartItemRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}
	return nil
}
