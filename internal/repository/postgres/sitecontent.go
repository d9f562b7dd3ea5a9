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

type siteContentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSiteContentRepository creates a new site content repository
func NewSiteContentRepository(db *sql.DB, logger *zap.Logger) *siteContentRepository {
	return &siteContentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *siteContentRepository) Get(ctx context.Context, page, section string) (*domain.SiteContent, error) {
	query := `
		SELECT id, page, section, content, updated_at, updated_by
		FROM site_content
		WHERE page = $1 AND section = $2
	`

	var content domain.SiteContent
	var updatedBy uuid.NullUUID
	err := r.db.QueryRowContext(ctx, query, page, section).Scan(
		&content.ID,
		&content.Page,
		&content.Section,
		&content.Content,
		&content.UpdatedAt,
		&updatedBy,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "site_content", ID: page + "/" + section}
	}
	if err != nil {
		r.logger.Error("Failed to get site content", zap.Error(err))
		return nil, err
	}

	if updatedBy.Valid {
		content.UpdatedBy = &updatedBy.UUID
	}

	return &content, nil
}

func (r *siteContentRepository) ListByPage(ctx context.Context, page string) ([]*domain.SiteContent, error) {
	query := `
		SELECT id, page, section, content, updated_at, updated_by
		FROM site_content
		WHERE page = $1
		ORDER BY section ASC
	`

	rows, err := r.db.QueryContext(ctx, query, page)
	if err != nil {
		r.logger.Error("Failed to list site content", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contents []*domain.SiteContent
	for rows.Next() {
		var content domain.SiteContent
		var updatedBy uuid.NullUUID
		if err := rows.Scan(
			&content.ID,
			&content.Page,
			&content.Section,
			&content.Content,
			&content.UpdatedAt,
			&updatedBy,
		); err != nil {
			return nil, err
		}
		if updatedBy.Valid {
			content.UpdatedBy = &updatedBy.UUID
		}
		contents = append(contents, &content)
	}

	return contents, rows.Err()
}

// Upsert writes the block keyed by (page, section); the key pair is unique.
func (r *siteContentRepository) Upsert(ctx context.Context, content *domain.SiteContent) error {
	query := `
		INSERT INTO site_content (id, page, section, content, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (page, section)
		DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
	`

	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	content.UpdatedAt = time.Now()

	var updatedBy interface{}
	if content.UpdatedBy != nil {
		updatedBy = *content.UpdatedBy
	}

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.Page,
		content.Section,
		content.Content,
		content.UpdatedAt,
		updatedBy,
	)

	if err != nil {
		r.logger.Error("Failed to upsert site content", zap.Error(err))
		return err
	}

	return nil
}
