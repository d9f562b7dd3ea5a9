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

type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, name, description, slug, image_url, created_at
		FROM categories
		WHERE id = $1
	`

	var category domain.Category
	var description, imageURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&description,
		&category.Slug,
		&imageURL,
		&category.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get category by ID", zap.Error(err))
		return nil, err
	}

	if description.Valid {
		category.Description = description.String
	}
	if imageURL.Valid {
		category.ImageURL = imageURL.String
	}

	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, slug, image_url, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		var description, imageURL sql.NullString
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&description,
			&category.Slug,
			&imageURL,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			category.Description = description.String
		}
		if imageURL.Valid {
			category.ImageURL = imageURL.String
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, description, slug, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Slug,
		category.ImageURL,
		category.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create category", zap.Error(err))
		return err
	}

	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, slug = $4, image_url = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Slug,
		category.ImageURL,
	)
	if err != nil {
		r.logger.Error("Failed to update category", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "category", ID: category.ID.String()}
	}

	return nil
}
