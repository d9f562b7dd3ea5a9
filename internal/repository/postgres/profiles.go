package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type profileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) *profileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_admin, created_at
		FROM profiles
		WHERE id = $1
	`

	var profile domain.Profile
	var fullName sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&fullName,
		&profile.PasswordHash,
		&profile.IsAdmin,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "profile", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get profile by ID", zap.Error(err))
		return nil, err
	}

	if fullName.Valid {
		profile.FullName = fullName.String
	}

	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_admin, created_at
		FROM profiles
		WHERE lower(email) = lower($1)
	`

	var profile domain.Profile
	var fullName sql.NullString
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(email)).Scan(
		&profile.ID,
		&profile.Email,
		&fullName,
		&profile.PasswordHash,
		&profile.IsAdmin,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "profile", ID: email}
	}
	if err != nil {
		r.logger.Error("Failed to get profile by email", zap.Error(err))
		return nil, err
	}

	if fullName.Valid {
		profile.FullName = fullName.String
	}

	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_admin, created_at
		FROM profiles
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		var fullName sql.NullString
		if err := rows.Scan(
			&profile.ID,
			&profile.Email,
			&fullName,
			&profile.PasswordHash,
			&profile.IsAdmin,
			&profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		if fullName.Valid {
			profile.FullName = fullName.String
		}
		profiles = append(profiles, &profile)
	}

	return profiles, rows.Err()
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.PasswordHash,
		profile.IsAdmin,
		profile.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create profile", zap.Error(err))
		return err
	}

	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET email = $2, full_name = $3, password_hash = $4, is_admin = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.PasswordHash,
		profile.IsAdmin,
	)
	if err != nil {
		r.logger.Error("Failed to update profile", zap.Error(err))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &errors.ErrNotFound{Resource: "profile", ID: profile.ID.String()}
	}

	return nil
}
