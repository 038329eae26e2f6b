package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	"github.com/arkival/article_archiver_app/internal/core/services"
	"github.com/arkival/article_archiver_app/internal/platform/config"
	"github.com/arkival/article_archiver_app/internal/utils"
)

func testTokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "article-archiver",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenSecret:         "test-refresh-secret",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Email:    "reader@example.com",
		Role:     domain.RoleUser,
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	cfg := testTokenConfig()
	svc := services.NewTokenService(cfg)
	user := testUser()

	token, expiry, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTExpiryDuration), expiry, time.Minute)

	claims, err := utils.ParseAccessToken(token, cfg.JWTSecret, cfg.JWTIssuer)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	cfg := testTokenConfig()
	svc := services.NewTokenService(cfg)
	user := testUser()

	token, expiry, err := svc.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.RefreshTokenExpiryDuration), expiry, time.Minute)

	userID, err := svc.ValidateRefreshToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, userID)
}

func TestTokenService_AccessTokenIsNotARefreshToken(t *testing.T) {
	cfg := testTokenConfig()
	// Same signing key for both kinds; the audience check still separates them.
	cfg.RefreshTokenSecret = cfg.JWTSecret
	svc := services.NewTokenService(cfg)

	accessToken, _, err := svc.GenerateAccessToken(context.Background(), testUser())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(context.Background(), accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_RefreshTokenWrongSecret(t *testing.T) {
	cfg := testTokenConfig()
	svc := services.NewTokenService(cfg)

	token, _, err := svc.GenerateRefreshToken(context.Background(), testUser())
	require.NoError(t, err)

	otherCfg := testTokenConfig()
	otherCfg.RefreshTokenSecret = "a-different-secret"
	otherSvc := services.NewTokenService(otherCfg)

	_, err = otherSvc.ValidateRefreshToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_ExpiredRefreshToken(t *testing.T) {
	cfg := testTokenConfig()
	cfg.RefreshTokenExpiryDuration = -time.Minute
	svc := services.NewTokenService(cfg)

	token, _, err := svc.GenerateRefreshToken(context.Background(), testUser())
	require.NoError(t, err)

	validator := services.NewTokenService(testTokenConfig())
	_, err = validator.ValidateRefreshToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_GarbageToken(t *testing.T) {
	svc := services.NewTokenService(testTokenConfig())

	_, err := svc.ValidateRefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
