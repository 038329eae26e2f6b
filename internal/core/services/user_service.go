package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/utils"
	"github.com/arkival/article_archiver_app/internal/validation"
	"github.com/google/uuid"
)

// defaultAuxTokenExpiry is applied when AddAuthToken gets no expiry string.
const defaultAuxTokenExpiry = "30d"

// userService owns user records, credential verification and the auxiliary
// token list.
type userService struct {
	userRepo   portsrepo.UserRepositoryFacade
	bcryptCost int
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, bcryptCost int) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user. The plaintext password is replaced by a
// bcrypt hash before anything is persisted.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Profile: domain.UserProfile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Timezone:  "UTC",
			Language:  "en",
		},
		Preferences: domain.DefaultPreferences(),
		Role:        domain.RoleUser,
		IsActive:    true,
		IsVerified:  false,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate looks up one active user by username or email and verifies
// the password. Unknown identifier and wrong password are indistinguishable
// to the caller, and the unknown-identifier path performs a dummy hash
// comparison so response timing does not leak which case occurred.
func (s *userService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByIdentifier(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.DummyPasswordCheck(password)
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user by identifier: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the provided fields to an existing user. A password
// change rehashes before persisting.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.Profile.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Profile.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Profile.Bio = *req.Bio
	}
	if req.Website != nil {
		user.Profile.Website = *req.Website
	}
	if req.Timezone != nil {
		user.Profile.Timezone = *req.Timezone
	}
	if req.Language != nil {
		user.Profile.Language = strings.ToLower(*req.Language)
	}
	if req.Theme != nil {
		user.Preferences.Theme = *req.Theme
	}
	if req.DefaultView != nil {
		user.Preferences.DefaultView = *req.DefaultView
	}
	if req.Password != nil {
		passwordHash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) RecordLogin(ctx context.Context, userID string) error {
	return s.userRepo.UpdateLastLogin(ctx, userID, time.Now())
}

func (s *userService) RecordArticleAdded(ctx context.Context, userID string) error {
	return s.userRepo.IncrementArticlesAdded(ctx, userID)
}

// AddAuthToken stores an auxiliary token, evicting any existing token of the
// same kind. The replace is atomic at the record store, so concurrent adds
// of different kinds cannot lose each other.
func (s *userService) AddAuthToken(ctx context.Context, userID string, token string, kind domain.TokenKind, expiresIn string) error {
	if expiresIn == "" {
		expiresIn = defaultAuxTokenExpiry
	}
	ttl, err := utils.ParseExpiry(expiresIn)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	authToken := domain.AuthToken{
		Token:   token,
		Kind:    kind,
		Expires: time.Now().Add(ttl),
	}
	if err := s.userRepo.UpsertAuthToken(ctx, userID, authToken); err != nil {
		return fmt.Errorf("failed to store %s token: %w", kind, err)
	}
	return nil
}

func (s *userService) RemoveAuthToken(ctx context.Context, userID string, token string) error {
	if err := s.userRepo.RemoveAuthToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// DeactivateUser soft-deactivates via the isActive flag; the record is kept.
func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeactivateUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// validationError folds field errors into a single error wrapping
// apperrors.ErrValidation so handlers can map it to a 400.
func validationError(fieldErrs []validation.FieldError) error {
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fe.Message
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}
