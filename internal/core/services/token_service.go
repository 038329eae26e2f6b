package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/platform/config"
	"github.com/arkival/article_archiver_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService implements TokenSvcFacade for signed bearer tokens. Access
// and refresh tokens carry distinct audiences; refresh tokens are signed
// with the refresh secret, which config falls back to the primary secret
// when none is set.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateAccessToken(
		user.UserID, user.Username, user.Email, string(user.Role),
		s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration,
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	refreshToken, err := utils.GenerateRefreshToken(
		user.UserID,
		s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer, s.cfg.RefreshTokenExpiryDuration,
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return refreshToken, expiryTime, nil
}

// ValidateRefreshToken verifies signature, freshness, issuer and audience of
// a refresh token and returns the user ID it was issued for.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseRefreshToken(tokenString, s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrUnauthorized
	}
	if claims.Subject == "" || claims.Kind != "refresh" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
