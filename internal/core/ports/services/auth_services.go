package services

import (
	"context"
	"time"

	"github.com/arkival/article_archiver_app/internal/core/domain"
)

// TokenSvcFacade handles issuance and validation of signed bearer tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed access token carrying the user's
	// identity claims, returning the token and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a longer-lived refresh token carrying
	// only the user identifier and a kind marker.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken verifies a refresh token and returns the user ID
	// it was issued for.
	ValidateRefreshToken(ctx context.Context, tokenString string) (string, error)
}
