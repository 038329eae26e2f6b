package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/handlers"
	"github.com/arkival/article_archiver_app/internal/platform/config"
	"github.com/arkival/article_archiver_app/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RecordLogin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) RecordArticleAdded(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AddAuthToken(ctx context.Context, userID string, token string, kind domain.TokenKind, expiresIn string) error {
	args := m.Called(ctx, userID, token, kind, expiresIn)
	return args.Error(0)
}
func (m *MockUserService) RemoveAuthToken(ctx context.Context, userID string, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}
func (m *MockUserService) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) GetHierarchy(ctx context.Context) ([]*domain.CategoryNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CategoryNode), args.Error(1)
}
func (m *MockCategoryService) GetTopCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}
func (m *MockCategoryService) RefreshStats(ctx context.Context, categoryID string) {
	m.Called(ctx, categoryID)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock ArticleService ---
type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleService) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleService) ListArticles(ctx context.Context, params dto.ListArticlesParams) ([]domain.Article, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}
func (m *MockArticleService) GetStats(ctx context.Context) (*domain.ArticleStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArticleStats), args.Error(1)
}
func (m *MockArticleService) CreateArticle(ctx context.Context, req dto.CreateArticleRequest, creatorUserID string) (*domain.Article, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleService) UpdateArticle(ctx context.Context, articleID string, req dto.UpdateArticleRequest, updaterUserID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleService) DeleteArticle(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}
func (m *MockArticleService) RecordView(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}
func (m *MockArticleService) AddBookmark(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}
func (m *MockArticleService) RemoveBookmark(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

var _ portssvc.ArticleSvcFacade = (*MockArticleService)(nil)

// --- Test Suite Setup ---

type AuthHandlerTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserSvc     *MockUserService
	mockTokenSvc    *MockTokenService
	mockCategorySvc *MockCategoryService
	mockArticleSvc  *MockArticleService
	router          *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		IsProduction:               true, // keeps swagger routes out of the test router
		JWTSecret:                  "handler-test-secret",
		JWTIssuer:                  "article-archiver",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenSecret:         "handler-test-refresh-secret",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		APIRateLimit:               "1000-M",
		LoginRateLimit:             "1000-M",
	}
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.mockArticleSvc = new(MockArticleService)

	services := &portssvc.ServiceContainer{
		User:     suite.mockUserSvc,
		Token:    suite.mockTokenSvc,
		Category: suite.mockCategorySvc,
		Article:  suite.mockArticleSvc,
	}

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, services)
	suite.Require().NoError(err)
}

func (suite *AuthHandlerTestSuite) performJSON(method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// accessTokenFor signs a real access token accepted by the auth middleware.
func (suite *AuthHandlerTestSuite) accessTokenFor(user *domain.User) string {
	token, err := utils.GenerateAccessToken(
		user.UserID, user.Username, user.Email, string(user.Role),
		suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Hour,
	)
	suite.Require().NoError(err)
	return token
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Email:    "reader@example.com",
		Role:     domain.RoleUser,
		IsActive: true,
	}
	expiry := time.Now().Add(time.Hour)

	suite.mockUserSvc.On("Authenticate", mock.Anything, "reader_one", "correct-horse").Return(user, nil).Once()
	suite.mockUserSvc.On("RecordLogin", mock.Anything, user.UserID).Return(nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("the-access-token", expiry, nil).Once()
	suite.mockTokenSvc.On("GenerateRefreshToken", mock.Anything, user).Return("the-refresh-token", expiry, nil).Once()
	suite.mockUserSvc.On("AddAuthToken", mock.Anything, user.UserID, "the-refresh-token", domain.TokenKindRefresh, "30d").Return(nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Identifier: "reader_one",
		Password:   "correct-horse",
	}, "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("the-access-token", resp.AccessToken)
	suite.Equal("the-refresh-token", resp.RefreshToken)
	suite.Equal(user.UserID, resp.User.UserID)

	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUserSvc.On("Authenticate", mock.Anything, "reader_one", "battery-staple").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Identifier: "reader_one",
		Password:   "battery-staple",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_Conflict() {
	suite.mockUserSvc.On("RegisterUser", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "reader_one",
		Email:    "reader@example.com",
		Password: "s3cret-pass",
	}, "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_RotatesStoredToken() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Role:     domain.RoleUser,
		IsActive: true,
		Tokens: []domain.AuthToken{{
			Token:   "old-refresh-token",
			Kind:    domain.TokenKindRefresh,
			Expires: time.Now().Add(time.Hour),
		}},
	}
	expiry := time.Now().Add(time.Hour)

	suite.mockTokenSvc.On("ValidateRefreshToken", mock.Anything, "old-refresh-token").Return(user.UserID, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("new-access-token", expiry, nil).Once()
	suite.mockTokenSvc.On("GenerateRefreshToken", mock.Anything, user).Return("new-refresh-token", expiry, nil).Once()
	suite.mockUserSvc.On("AddAuthToken", mock.Anything, user.UserID, "new-refresh-token", domain.TokenKindRefresh, "30d").Return(nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/refresh", dto.RefreshRequest{
		RefreshToken: "old-refresh-token",
	}, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_RejectsTokenNotStored() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		IsActive: true,
		// No stored refresh token: it was revoked on logout.
	}

	suite.mockTokenSvc.On("ValidateRefreshToken", mock.Anything, "revoked-token").Return(user.UserID, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/refresh", dto.RefreshRequest{
		RefreshToken: "revoked-token",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestProtectedRoute_RequiresToken() {
	w := suite.performJSON(http.MethodGet, "/api/v1/users/me", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestProtectedRoute_AcceptsValidToken() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Email:    "reader@example.com",
		Role:     domain.RoleUser,
		IsActive: true,
	}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/users/me", nil, suite.accessTokenFor(user))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.UserID)
}

func (suite *AuthHandlerTestSuite) TestGetUser_ForbiddenForOtherUser() {
	requester := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Role:     domain.RoleUser,
		IsActive: true,
	}

	w := suite.performJSON(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil, suite.accessTokenFor(requester))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestGetUser_AdminReadsAnyUser() {
	admin := &domain.User{
		UserID:   uuid.NewString(),
		Username: "the_admin",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	target := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_two",
		Role:     domain.RoleUser,
		IsActive: true,
	}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, target.UserID).Return(target, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/users/"+target.UserID, nil, suite.accessTokenFor(admin))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(target.UserID, resp.UserID)
}

func (suite *AuthHandlerTestSuite) TestListUsers_ForbiddenForNonAdmin() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "reader_one",
		Role:     domain.RoleUser,
		IsActive: true,
	}

	w := suite.performJSON(http.MethodGet, "/api/v1/users", nil, suite.accessTokenFor(user))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestUnknownRoute_ReturnsJSONNotFound() {
	w := suite.performJSON(http.MethodGet, "/api/v2/nope", nil, "")

	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "/api/v2/nope")
}

// --- Run Test Suite ---

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
