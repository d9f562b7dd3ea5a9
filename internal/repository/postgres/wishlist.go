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

type wishlistItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWishlistItemRepository creates a new wishlist item repository
func NewWishlistItemRepository(db *sql.DB, logger *zap.Logger) *wishlistItemRepository {
	return &wishlistItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *wishlistItemRepository) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2
	`

	var item domain.WishlistItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "wishlist_item", ID: productID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get wishlist item", zap.Error(err))
		return nil, err
	}

	return &item, nil
}

func (r *wishlistItemRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
			p.id, p.category_id, p.name, p.description, p.price, p.image_url,
			p.stock_quantity, p.is_active, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list wishlist items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		var product domain.Product
		var description, imageURL sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
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

func (r *wishlistItemRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create wishlist item", zap.Error(err))
		return err
	}

	return nil
}

func (r *wishlistItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete wishlist item", zap.Error(err))
		return err
	}
	return nil
}
