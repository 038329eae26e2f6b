package repositories

import (
	"context"
	"time"

	"github.com/arkival/article_archiver_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByIdentifier retrieves a single active user whose username or
	// email matches the given identifier (matched lowercase).
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// IncrementArticlesAdded bumps the user's articlesAdded counter.
	IncrementArticlesAdded(ctx context.Context, userID string) error

	// UpdateLastLogin stamps the user's last login time.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

// UserTokenWriter defines operations on the auxiliary token list.
type UserTokenWriter interface {
	// UpsertAuthToken atomically replaces any token of the same kind with
	// the given token on the user document.
	UpsertAuthToken(ctx context.Context, userID string, token domain.AuthToken) error

	// RemoveAuthToken removes a token by exact value match.
	RemoveAuthToken(ctx context.Context, userID string, token string) error
}

// UserLifecycleManager defines operations for managing user lifecycle.
type UserLifecycleManager interface {
	// DeactivateUser soft-deactivates a user via the isActive flag.
	DeactivateUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTokenWriter
	UserLifecycleManager
}
