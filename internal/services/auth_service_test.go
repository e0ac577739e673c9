package services

import (
	"context"
	"testing"

	"github.com/contesthq/contest-backend/internal/config"
	"github.com/contesthq/contest-backend/internal/repositories/memory"
	"github.com/contesthq/contest-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *AuthServiceImpl {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return NewAuthService(memory.NewAdminUserRepository(), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Register(ctx, "admin@example.com", "s3cret-password", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.NotEqual(t, "s3cret-password", user.Password, "password must be stored hashed")

	token, logged, err := svc.Login(ctx, "admin@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, user.Email, logged.Email)

	claims, err := utils.ValidateJWT(token, svc.cfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, "admin@example.com", "s3cret-password", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "admin@example.com", "another-password", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, "admin@example.com", "s3cret-password", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "admin@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
