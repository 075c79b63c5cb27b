package jwtservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "recipebook/internal/recipes/adapters/services"
	"recipebook/internal/recipes/domain/services"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := adapters.NewJWT(testSecret, time.Hour)
	ctx := context.Background()

	token, expiresAt, err := service.GenerateAccessToken(ctx, "user-id-1", "Ann")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := service.ValidateAccessToken(ctx, token)

	require.NoError(t, err)
	assert.Equal(t, "user-id-1", userID)
}

func TestGenerateAccessTokenEmptySecret(t *testing.T) {
	service := adapters.NewJWT("", time.Hour)
	ctx := context.Background()

	token, _, err := service.GenerateAccessToken(ctx, "user-id-1", "Ann")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
}

func TestValidateExpiredToken(t *testing.T) {
	service := adapters.NewJWT(testSecret, -time.Minute)
	ctx := context.Background()

	token, _, err := service.GenerateAccessToken(ctx, "user-id-1", "Ann")
	require.NoError(t, err)

	userID, err := service.ValidateAccessToken(ctx, token)

	require.Error(t, err)
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, services.ErrExpiredJWTToken)
}

func TestValidateMalformedToken(t *testing.T) {
	service := adapters.NewJWT(testSecret, time.Hour)
	ctx := context.Background()

	userID, err := service.ValidateAccessToken(ctx, "not-a-token")

	require.Error(t, err)
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
}

func TestValidateTokenSignedWithOtherSecret(t *testing.T) {
	service := adapters.NewJWT(testSecret, time.Hour)
	other := adapters.NewJWT("another-secret", time.Hour)
	ctx := context.Background()

	token, _, err := other.GenerateAccessToken(ctx, "user-id-1", "Ann")
	require.NoError(t, err)

	userID, err := service.ValidateAccessToken(ctx, token)

	require.Error(t, err)
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
}

func TestValidateTokenWithWrongAlgorithm(t *testing.T) {
	service := adapters.NewJWT(testSecret, time.Hour)
	ctx := context.Background()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-id-1",
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	userID, err := service.ValidateAccessToken(ctx, token)

	require.Error(t, err)
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
}

func TestValidateTokenWithoutUserID(t *testing.T) {
	ctx := context.Background()

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := signed.SignedString([]byte(testSecret))
	require.NoError(t, err)

	service := adapters.NewJWT(testSecret, time.Hour)
	userID, err := service.ValidateAccessToken(ctx, token)

	require.Error(t, err)
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
}
