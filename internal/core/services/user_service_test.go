package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/core/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ResetTokenRepository ---
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) FindLatestUnusedByUser(ctx context.Context, userID string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockResetTokenRepository) MarkUnusedTokensUsed(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResetTokenRepository) MarkTokenUsed(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteResetToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// --- Mock MailSender ---
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendResetCode(ctx context.Context, recipient, code string) error {
	args := m.Called(ctx, recipient, code)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockResetRepo *MockResetTokenRepository
	mockMail      *MockMailSender
	service       *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockResetRepo = new(MockResetTokenRepository)
	suite.mockMail = new(MockMailSender)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockResetRepo, suite.mockMail, 30*time.Minute)
}

func testUser(password string) *domain.User {
	hash, _ := utils.HashPassword(password)
	email := "user@example.com"
	phone := "0912345678"
	return &domain.User{
		UserID:       uuid.NewString(),
		Email:        &email,
		PhoneNumber:  &phone,
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}
}

// --- Register ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:       "New.User@Example.COM",
		PhoneNumber: "0912345678",
		FullName:    "New User",
		Password:    "secret123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email != nil && *u.Email == "new.user@example.com" &&
			u.PhoneNumber != nil && *u.PhoneNumber == "0912345678" &&
			u.Role == domain.RoleUser &&
			u.UserID != "" &&
			utils.CheckPasswordHash("secret123", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("new.user@example.com", *user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_Duplicate() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:       "dupe@example.com",
		PhoneNumber: "0912345678",
		FullName:    "Dupe User",
		Password:    "secret123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_InvalidEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:       "not-an-email",
		PhoneNumber: "0912345678",
		FullName:    "Bad Email",
		Password:    "secret123",
	}

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_InvalidPhone() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:       "ok@example.com",
		PhoneNumber: "12345",
		FullName:    "Bad Phone",
		Password:    "secret123",
	}

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Authenticate ---

func (suite *UserServiceTestSuite) TestAuthenticate_WithEmail() {
	ctx := context.Background()
	user := testUser("secret123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "User@Example.com", "secret123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WithPhone() {
	ctx := context.Background()
	user := testUser("secret123")

	suite.mockUserRepo.On("FindUserByPhone", ctx, "0912345678").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "0912345678", "secret123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	user := testUser("secret123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "user@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUserSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, missingErr := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")
	suite.Require().Error(missingErr)
	suite.ErrorIs(missingErr, apperrors.ErrUnauthorized)

	// Unknown-shaped identifiers never touch the repository
	_, unknownErr := suite.service.Authenticate(ctx, "???", "whatever")
	suite.Require().Error(unknownErr)
	suite.ErrorIs(unknownErr, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByPhone", mock.Anything, mock.Anything)
}

// --- ForgotPassword / ResetPassword ---

func (suite *UserServiceTestSuite) TestForgotPassword_IssuesCodeAndInvalidatesPrior() {
	ctx := context.Background()
	user := testUser("secret123")

	var savedToken domain.PasswordResetToken
	var mailedCode string

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()
	suite.mockResetRepo.On("MarkUnusedTokensUsed", ctx, user.UserID).Return(int64(2), nil).Once()
	suite.mockResetRepo.On("SaveResetToken", ctx, mock.MatchedBy(func(t domain.PasswordResetToken) bool {
		savedToken = t
		return t.UserID == user.UserID && !t.Used && t.ExpiresAt.After(time.Now())
	})).Return(nil).Once()
	suite.mockMail.On("SendResetCode", ctx, "user@example.com", mock.MatchedBy(func(code string) bool {
		mailedCode = code
		return len(code) == 6
	})).Return(nil).Once()

	err := suite.service.ForgotPassword(ctx, "user@example.com")

	suite.Require().NoError(err)
	// Only the hash is persisted, and it matches the mailed plaintext
	suite.True(utils.MatchResetCode(mailedCode, savedToken.TokenHash))
	suite.NotEqual(mailedCode, savedToken.TokenHash)
	suite.mockResetRepo.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestForgotPassword_UnregisteredEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ForgotPassword(ctx, "ghost@example.com")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockResetRepo.AssertNotCalled(suite.T(), "SaveResetToken", mock.Anything, mock.Anything)
	suite.mockMail.AssertNotCalled(suite.T(), "SendResetCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestForgotPassword_MailFailureCleansUp() {
	ctx := context.Background()
	user := testUser("secret123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()
	suite.mockResetRepo.On("MarkUnusedTokensUsed", ctx, user.UserID).Return(int64(0), nil).Once()
	suite.mockResetRepo.On("SaveResetToken", ctx, mock.AnythingOfType("domain.PasswordResetToken")).Return(nil).Once()
	suite.mockMail.On("SendResetCode", ctx, "user@example.com", mock.AnythingOfType("string")).Return(context.DeadlineExceeded).Once()
	suite.mockResetRepo.On("DeleteResetToken", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.ForgotPassword(ctx, "user@example.com")

	suite.Require().Error(err)
	suite.mockResetRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestResetPassword_Success() {
	ctx := context.Background()
	user := testUser("old-password")
	code, codeHash, err := utils.GenerateResetCode()
	suite.Require().NoError(err)

	token := &domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: codeHash,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()
	suite.mockResetRepo.On("FindLatestUnusedByUser", ctx, user.UserID).Return(token, nil).Once()
	suite.mockResetRepo.On("MarkTokenUsed", ctx, token.TokenID).Return(nil).Once()
	suite.mockUserRepo.On("UpdatePassword", ctx, user.UserID, mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("new-password", hash)
	})).Return(nil).Once()

	err = suite.service.ResetPassword(ctx, "user@example.com", code, "new-password")

	suite.Require().NoError(err)
	suite.mockResetRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestResetPassword_ExpiredCode() {
	ctx := context.Background()
	user := testUser("old-password")
	code, codeHash, err := utils.GenerateResetCode()
	suite.Require().NoError(err)

	token := &domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: codeHash,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(-30 * time.Minute),
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()
	suite.mockResetRepo.On("FindLatestUnusedByUser", ctx, user.UserID).Return(token, nil).Once()
	suite.mockResetRepo.On("MarkTokenUsed", ctx, token.TokenID).Return(nil).Once()

	err = suite.service.ResetPassword(ctx, "user@example.com", code, "new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Expiry detection consumes the token so it cannot be retried.
	suite.mockResetRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestResetPassword_WrongCode() {
	ctx := context.Background()
	user := testUser("old-password")
	_, codeHash, err := utils.GenerateResetCode()
	suite.Require().NoError(err)

	token := &domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: codeHash,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "user@example.com").Return(user, nil).Once()
	suite.mockResetRepo.On("FindLatestUnusedByUser", ctx, user.UserID).Return(token, nil).Once()

	err = suite.service.ResetPassword(ctx, "user@example.com", "000000", "new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ChangePassword ---

func (suite *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	ctx := context.Background()
	user := testUser("current-password")

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.ChangePassword(ctx, user.UserID, "not-the-password", "new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateRole ---

func (suite *UserServiceTestSuite) TestUpdateRole_UnknownRole() {
	ctx := context.Background()

	user, err := suite.service.UpdateRole(ctx, uuid.NewString(), domain.UserRole("superuser"))

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
