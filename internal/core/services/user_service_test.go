package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/core/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementArticlesAdded(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertAuthToken(ctx context.Context, userID string, token domain.AuthToken) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveAuthToken(ctx context.Context, userID string, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	// MinCost keeps the hashing in tests cheap.
	suite.service = services.NewUserService(suite.mockRepo, bcrypt.MinCost)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "Reader_One",
		Email:    "Reader@Example.COM",
		Password: "s3cret-pass",
	}

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("reader_one", user.Username)
	suite.Equal("reader@example.com", user.Email)
	suite.Equal(domain.RoleUser, user.Role)
	suite.True(user.IsActive)
	suite.False(user.IsVerified)
	suite.Equal("auto", user.Preferences.Theme)

	// Plaintext never reaches the repository; the stored hash verifies.
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("s3cret-pass", saved.PasswordHash))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_ValidationFails() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "ab", // too short
		Email:    "not-an-email",
		Password: "short",
	}

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "reader_one",
		Email:    "reader@example.com",
		Password: "s3cret-pass",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "reader_one",
		PasswordHash: hash,
		IsActive:     true,
	}

	suite.mockRepo.On("FindUserByIdentifier", ctx, "reader_one").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "  Reader_One ", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "reader_one",
		PasswordHash: hash,
		IsActive:     true,
	}

	suite.mockRepo.On("FindUserByIdentifier", ctx, "reader_one").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "reader_one", "battery-staple")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownIdentifier() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByIdentifier", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	// Unknown identifier and wrong password are indistinguishable.
	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestUpdateUser_RehashesPassword() {
	ctx := context.Background()
	testID := uuid.NewString()
	oldHash, err := utils.HashPassword("old-password", bcrypt.MinCost)
	suite.Require().NoError(err)
	stored := &domain.User{
		UserID:       testID,
		Username:     "reader_one",
		PasswordHash: oldHash,
		IsActive:     true,
	}

	newPassword := "brand-new-password"
	req := dto.UpdateUserRequest{Password: &newPassword}

	var updated domain.User
	suite.mockRepo.On("FindUserByID", ctx, testID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, testID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEqual(oldHash, updated.PasswordHash)
	suite.True(utils.CheckPasswordHash(newPassword, updated.PasswordHash))
}

func (suite *UserServiceTestSuite) TestAddAuthToken_DefaultExpiry() {
	ctx := context.Background()
	testID := uuid.NewString()

	var stored domain.AuthToken
	suite.mockRepo.On("UpsertAuthToken", ctx, testID, mock.AnythingOfType("domain.AuthToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).(domain.AuthToken)
		}).Return(nil).Once()

	err := suite.service.AddAuthToken(ctx, testID, "opaque-token", domain.TokenKindRefresh, "")

	suite.Require().NoError(err)
	suite.Equal("opaque-token", stored.Token)
	suite.Equal(domain.TokenKindRefresh, stored.Kind)
	// Default lifetime is 30 days.
	suite.WithinDuration(time.Now().Add(30*24*time.Hour), stored.Expires, time.Minute)
}

func (suite *UserServiceTestSuite) TestAddAuthToken_BadExpiry() {
	ctx := context.Background()

	err := suite.service.AddAuthToken(ctx, uuid.NewString(), "opaque-token", domain.TokenKindReset, "soon")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertAuthToken", mock.Anything, mock.Anything, mock.Anything)
}

// fakeTokenStore applies the store's token semantics in memory: upserting
// drops stored tokens of the same kind before appending, removal filters by
// exact value.
type fakeTokenStore struct {
	MockUserRepository
	tokens []domain.AuthToken
}

func (f *fakeTokenStore) UpsertAuthToken(ctx context.Context, userID string, token domain.AuthToken) error {
	kept := make([]domain.AuthToken, 0, len(f.tokens)+1)
	for _, t := range f.tokens {
		if t.Kind != token.Kind {
			kept = append(kept, t)
		}
	}
	f.tokens = append(kept, token)
	return nil
}

func (f *fakeTokenStore) RemoveAuthToken(ctx context.Context, userID string, token string) error {
	kept := make([]domain.AuthToken, 0, len(f.tokens))
	for _, t := range f.tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

func (suite *UserServiceTestSuite) TestAddAuthToken_SecondResetEvictsFirstOnly() {
	ctx := context.Background()
	testID := uuid.NewString()
	store := &fakeTokenStore{}
	svc := services.NewUserService(store, bcrypt.MinCost)

	suite.Require().NoError(svc.AddAuthToken(ctx, testID, "refresh-1", domain.TokenKindRefresh, "30d"))
	suite.Require().NoError(svc.AddAuthToken(ctx, testID, "reset-1", domain.TokenKindReset, "1h"))
	suite.Require().NoError(svc.AddAuthToken(ctx, testID, "reset-2", domain.TokenKindReset, "1h"))

	suite.Require().Len(store.tokens, 2)
	values := []string{store.tokens[0].Token, store.tokens[1].Token}
	suite.Contains(values, "refresh-1")
	suite.Contains(values, "reset-2")
	suite.NotContains(values, "reset-1")

	suite.Require().NoError(svc.RemoveAuthToken(ctx, testID, "refresh-1"))
	suite.Require().Len(store.tokens, 1)
	suite.Equal("reset-2", store.tokens[0].Token)
}

func (suite *UserServiceTestSuite) TestDeactivateUser() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("DeactivateUser", ctx, testID).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, testID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
