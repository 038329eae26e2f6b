package services

import (
	"context"

	"github.com/arkival/article_archiver_app/internal/core/domain"
	"github.com/arkival/article_archiver_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a new user, hashing the password before persisting.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// RecordLogin stamps the user's last login time.
	RecordLogin(ctx context.Context, userID string) error

	// RecordArticleAdded bumps the user's articlesAdded counter.
	RecordArticleAdded(ctx context.Context, userID string) error
}

// UserAuthSvc defines credential verification.
type UserAuthSvc interface {
	// Authenticate verifies an identifier (username or email, matched
	// case-insensitively) and password against one active user. Unknown
	// identifier and wrong password yield the same result.
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
}

// UserTokenSvc manages the auxiliary tokens stored on a user document.
type UserTokenSvc interface {
	// AddAuthToken stores a token of the given kind, evicting any existing
	// token of that kind. expiresIn accepts day/hour/minute suffixes ("30d").
	AddAuthToken(ctx context.Context, userID string, token string, kind domain.TokenKind, expiresIn string) error

	// RemoveAuthToken removes a token by exact value match.
	RemoveAuthToken(ctx context.Context, userID string, token string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeactivateUser soft-deactivates a user (isActive flag), not a hard delete.
	DeactivateUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserTokenSvc
	UserLifecycleSvc
}
