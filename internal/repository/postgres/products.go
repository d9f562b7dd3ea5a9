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

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, category_id, name, description, price, image_url, stock_quantity, is_active, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var product domain.Product
	var description, imageURL sql.NullString
	err := scanner.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		product.Description = description.String
	}
	if imageURL.Valid {
		product.ImageURL = imageURL.String
	}
	return &product, nil
}

// GetByID resolves any product regardless of is_active, so historical order
// items referencing a soft-deleted product keep working.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}

	return product, nil
}

// ListActive is the customer-facing catalog query. The is_active predicate
// lives here and nowhere else.
func (r *productRepository) ListActive(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = true`
	args := []interface{}{}
	if categoryID != nil {
		query += ` AND category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryProducts(ctx, query, args...)
}

func (r *productRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	if !includeInactive {
		return r.ListActive(ctx, nil)
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.StockQuantity,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5,
			image_url = $6, stock_quantity = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.StockQuantity,
		product.IsActive,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}

	return nil
}

// SetActive implements the soft-delete/restore pair. The row is never removed.
func (r *productRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE products
		SET is_active = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, active, time.Now())
	if err != nil {
		r.logger.Error("Failed to set product active flag", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}

	return nil
}
