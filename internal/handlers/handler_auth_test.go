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

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/handlers"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
	"github.com/hnv-dev/product_desc_app/internal/utils"
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
func (m *MockUserService) ResolveIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
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
func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	args := m.Called(ctx, userID, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}
func (m *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}
func (m *MockTokenService) ParseAccessToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
	jwtSecret        string
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	services := &portssvc.ServiceContainer{
		User:  suite.mockUserService,
		Token: suite.mockTokenService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a signed session token for authed requests.
func (suite *AuthHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return token
}

func (suite *AuthHandlerTestSuite) postJSON(path, token string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testDomainUser(userID string) *domain.User {
	email := "jane@example.com"
	return &domain.User{
		UserID:    userID,
		Email:     &email,
		FullName:  "Jane Doe",
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	userID := uuid.NewString()
	user := testDomainUser(userID)

	suite.mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(req dto.RegisterRequest) bool {
		return req.Email == "jane@example.com" && req.FullName == "Jane Doe"
	})).Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", userID).Return("signed-token", nil).Once()

	w := suite.postJSON("/auth/register", "", dto.RegisterRequest{
		Email:       "jane@example.com",
		PhoneNumber: "0912345678",
		FullName:    "Jane Doe",
		Password:    "secret123",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TokenResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.AccessToken)
	suite.Equal("bearer", resp.TokenType)
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_Duplicate() {
	suite.mockUserService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/auth/register", "", dto.RegisterRequest{
		Email:       "jane@example.com",
		PhoneNumber: "0912345678",
		FullName:    "Jane Doe",
		Password:    "secret123",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken")
}

func (suite *AuthHandlerTestSuite) TestRegister_MissingFields() {
	w := suite.postJSON("/auth/register", "", map[string]string{"email": "jane@example.com"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "Register")
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	userID := uuid.NewString()
	suite.mockUserService.On("Authenticate", mock.Anything, "jane@example.com", "secret123").
		Return(testDomainUser(userID), nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", userID).Return("signed-token", nil).Once()

	w := suite.postJSON("/auth/login", "", dto.LoginRequest{Identifier: "jane@example.com", Password: "secret123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TokenResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.AccessToken)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongCredentials() {
	suite.mockUserService.On("Authenticate", mock.Anything, "jane@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("incorrect identifier or password")).Once()

	w := suite.postJSON("/auth/login", "", dto.LoginRequest{Identifier: "jane@example.com", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("incorrect identifier or password", resp.Error)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_UnregisteredEmail() {
	suite.mockUserService.On("ForgotPassword", mock.Anything, "ghost@example.com").
		Return(apperrors.NewNotFoundError("email is not registered")).Once()

	w := suite.postJSON("/auth/forgot-password", "", dto.ForgotPasswordRequest{Identifier: "ghost@example.com"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestResetPassword_InvalidCode() {
	suite.mockUserService.On("ResetPassword", mock.Anything, "jane@example.com", "000000", "newsecret").
		Return(apperrors.NewBadRequestError("invalid or expired reset code")).Once()

	w := suite.postJSON("/auth/reset-password", "", dto.ResetPasswordRequest{
		Identifier:  "jane@example.com",
		Code:        "000000",
		NewPassword: "newsecret",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("invalid or expired reset code", resp.Error)
}

func (suite *AuthHandlerTestSuite) TestMe_Success() {
	userID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).
		Return(testDomainUser(userID), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.UserID)
	suite.Equal("Jane Doe", resp.FullName)
}

func (suite *AuthHandlerTestSuite) TestMe_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID")
}

func (suite *AuthHandlerTestSuite) TestChangePassword_WrongCurrent() {
	userID := uuid.NewString()
	suite.mockUserService.On("ChangePassword", mock.Anything, userID, "wrong", "newsecret").
		Return(apperrors.NewBadRequestError("current password is incorrect")).Once()

	w := suite.postJSON("/auth/change-password", suite.generateTestToken(userID), dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestUpdateProfile_Success() {
	userID := uuid.NewString()
	newName := "Jane Smith"
	updated := testDomainUser(userID)
	updated.FullName = newName

	suite.mockUserService.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(req dto.UpdateProfileRequest) bool {
		return req.FullName != nil && *req.FullName == newName
	})).Return(updated, nil).Once()

	payload, _ := json.Marshal(dto.UpdateProfileRequest{FullName: &newName})
	req, _ := http.NewRequest(http.MethodPut, "/auth/profile", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(newName, resp.FullName)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
