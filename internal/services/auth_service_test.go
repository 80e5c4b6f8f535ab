package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavowmarques/work-logix-v2/internal/middleware"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewMemoryUserRepo()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Username:     "pm.dana",
		Email:        "dana@example.com",
		PasswordHash: hash,
		Role:         models.RolePropertyManager,
	}
	require.NoError(t, users.Create(ctx, user))

	svc := NewAuthService(users, key, 30*time.Minute)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, got, err := svc.Login(ctx, "pm.dana", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		parsed, err := middleware.ValidateToken(token, &key.PublicKey)
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["sub"])
		assert.Equal(t, middleware.TokenIssuer, claims["iss"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "pm.dana", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		shortSvc := NewAuthService(users, key, -time.Minute)
		token, err := shortSvc.GenerateAccessToken(user.ID)
		require.NoError(t, err)

		_, err = middleware.ValidateToken(token, &key.PublicKey)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestActorResolver(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewMemoryUserRepo()

	companyID := uuid.New()
	user := &models.User{
		ID:        uuid.New(),
		Username:  "pipeworks.sam",
		Role:      models.RoleContractor,
		CompanyID: &companyID,
	}
	require.NoError(t, users.Create(ctx, user))

	resolver := NewActorResolver(users)

	actor, err := resolver.Resolve(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, models.RoleContractor, actor.Role)
	require.NotNil(t, actor.CompanyID)
	assert.Equal(t, companyID, *actor.CompanyID)

	_, err = resolver.Resolve(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = resolver.Resolve(ctx, "not-a-uuid")
	assert.Error(t, err)
}
