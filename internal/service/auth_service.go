package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

// SessionTTL is how long a login session stays valid
const SessionTTL = 30 * 24 * time.Hour

type authService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repos *repository.Repositories, logger *zap.Logger) *authService {
	return &authService{
		repos:  repos,
		logger: logger,
	}
}

// Register creates a profile and signs it in
func (s *authService) Register(ctx context.Context, email, fullName, password string) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", &errors.ErrValidation{Message: "a valid email is required"}
	}
	if len(password) < 8 {
		return nil, "", &errors.ErrValidation{Message: "password must be at least 8 characters"}
	}

	if _, err := s.repos.Profile.GetByEmail(ctx, email); err == nil {
		return nil, "", &errors.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	profile := &domain.Profile{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
	}
	if err := s.repos.Profile.Create(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, profile.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("Profile registered", zap.String("profile_id", profile.ID.String()))
	return profile, token, nil
}

// Login verifies the password and opens a session
func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	profile, err := s.repos.Profile.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, "", &errors.ErrUnauthorized{Message: "invalid email or password"}
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, "", &errors.ErrUnauthorized{Message: "invalid email or password"}
	}

	token, err := s.openSession(ctx, profile.ID)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// Authenticate resolves a bearer token to its profile. Lookup goes through
// the SHA-256 hash; the bcrypt hash is the verification of record.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.Profile, *domain.Session, error) {
	session, err := s.repos.Session.GetByTokenLookup(ctx, tokenLookupHash(token))
	if err != nil {
		return nil, nil, &errors.ErrUnauthorized{Message: "invalid or expired session"}
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.repos.Session.Delete(ctx, session.ID)
		return nil, nil, &errors.ErrUnauthorized{Message: "invalid or expired session"}
	}

	if bcrypt.CompareHashAndPassword([]byte(session.TokenHash), []byte(token)) != nil {
		return nil, nil, &errors.ErrUnauthorized{Message: "invalid or expired session"}
	}

	profile, err := s.repos.Profile.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, nil, &errors.ErrUnauthorized{Message: "invalid or expired session"}
	}

	return profile, session, nil
}

// Logout tears the session down
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.repos.Session.Delete(ctx, sessionID)
}

func (s *authService) openSession(ctx context.Context, profileID uuid.UUID) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	// Cost 10 is enough for random tokens; they are not guessable passwords
	hash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		ProfileID:   profileID,
		TokenHash:   string(hash),
		TokenLookup: tokenLookupHash(token),
		ExpiresAt:   time.Now().Add(SessionTTL),
	}
	if err := s.repos.Session.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func tokenLookupHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
