package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audience strings distinguish the token kinds from one another.
const (
	AccessTokenAudience  = "article-archiver-users"
	RefreshTokenAudience = "article-archiver-refresh"
)

// AccessTokenClaims are the claims carried by an access token.
type AccessTokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims are the claims carried by a refresh token.
type RefreshTokenClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a new access token for the given identity.
func GenerateAccessToken(userID, username, email, role, secret, issuer string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{AccessTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken signs a new refresh token carrying only the user ID
// and a kind marker.
func GenerateRefreshToken(userID, secret, issuer string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshTokenClaims{
		Kind: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{RefreshTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken parses an access token string, validating its signature,
// freshness, issuer and audience.
func ParseAccessToken(tokenString, secret, issuer string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc(secret),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(AccessTokenAudience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// ParseRefreshToken parses a refresh token string, validating its signature,
// freshness, issuer and audience.
func ParseRefreshToken(tokenString, secret, issuer string) (*RefreshTokenClaims, error) {
	claims := &RefreshTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc(secret),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(RefreshTokenAudience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}
