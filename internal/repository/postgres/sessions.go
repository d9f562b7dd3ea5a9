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

type sessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) GetByTokenLookup(ctx context.Context, tokenLookup string) (*domain.Session, error) {
	query := `
		SELECT id, profile_id, token_hash, token_lookup, created_at, expires_at
		FROM sessions
		WHERE token_lookup = $1 AND expires_at > now()
	`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query, tokenLookup).Scan(
		&session.ID,
		&session.ProfileID,
		&session.TokenHash,
		&session.TokenLookup,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "session", ID: tokenLookup}
	}
	if err != nil {
		r.logger.Error("Failed to get session by token lookup", zap.Error(err))
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, profile_id, token_hash, token_lookup, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.ProfileID,
		session.TokenHash,
		session.TokenLookup,
		session.CreatedAt,
		session.ExpiresAt,
	)

	if err != nil {
		r.logger.Error("Failed to create session", zap.Error(err))
		return err
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepository) DeleteByProfileID(ctx context.Context, profileID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE profile_id = $1`, profileID)
	if err != nil {
		r.logger.Error("Failed to delete sessions for profile", zap.Error(err))
		return err
	}
	return nil
}
