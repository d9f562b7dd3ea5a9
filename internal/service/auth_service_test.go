package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

func TestRegisterSignsIn(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	profile, token, err := auth.Register(ctx, "Alice@Example.com", "Alice Uwase", "sup3rsecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", profile.Email, "emails are stored lowercased")
	assert.False(t, profile.IsAdmin)

	// The returned token is immediately usable
	got, session, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, profile.ID, session.ProfileID)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "not-an-email", "Alice", "sup3rsecret")
	assert.IsType(t, &errors.ErrValidation{}, err)

	_, _, err = auth.Register(ctx, "alice@example.com", "Alice", "short")
	assert.IsType(t, &errors.ErrValidation{}, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "alice@example.com", "Alice", "sup3rsecret")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "alice@example.com", "Alice Again", "sup3rsecret")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrConflict{}, err)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "alice@example.com", "Alice", "sup3rsecret")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "alice@example.com", "wrongwrong")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrUnauthorized{}, err)

	// Unknown accounts fail the same way
	_, _, err = auth.Login(ctx, "nobody@example.com", "sup3rsecret")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrUnauthorized{}, err)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	_, token, err := auth.Register(ctx, "alice@example.com", "Alice", "sup3rsecret")
	require.NoError(t, err)

	_, session, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, session.ID))

	_, _, err = auth.Authenticate(ctx, token)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrUnauthorized{}, err)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)
	ctx := context.Background()

	profile := env.seedProfile("alice@example.com")

	token := "deadbeefdeadbeefdeadbeefdeadbeef"
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	require.NoError(t, err)
	lookup := sha256.Sum256([]byte(token))

	require.NoError(t, env.repos.Session.Create(ctx, &domain.Session{
		ID:          uuid.New(),
		ProfileID:   profile.ID,
		TokenHash:   string(hash),
		TokenLookup: hex.EncodeToString(lookup[:]),
		CreatedAt:   time.Now().Add(-31 * 24 * time.Hour),
		ExpiresAt:   time.Now().Add(-24 * time.Hour),
	}))

	_, _, err = auth.Authenticate(ctx, token)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrUnauthorized{}, err)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	env := newTestEnv()
	auth := service.NewAuthService(env.repos, env.logger)

	_, _, err := auth.Authenticate(context.Background(), "not-a-real-token")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrUnauthorized{}, err)
}
