package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

// UserService implements registration, authentication and account management.
type UserService struct {
	userRepo       portsrepo.UserRepository
	resetTokenRepo portsrepo.ResetTokenRepository
	mailSender     portssvc.MailSender
	resetExpiry    time.Duration
}

func NewUserService(userRepo portsrepo.UserRepository, resetTokenRepo portsrepo.ResetTokenRepository, mailSender portssvc.MailSender, resetExpiry time.Duration) *UserService {
	return &UserService{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		mailSender:     mailSender,
		resetExpiry:    resetExpiry,
	}
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := domain.NormalizeEmail(req.Email)
	if domain.ClassifyIdentifier(email) != domain.IdentifierEmail {
		return nil, apperrors.NewBadRequestError("invalid email format")
	}
	if domain.ClassifyIdentifier(req.PhoneNumber) != domain.IdentifierPhone {
		return nil, apperrors.NewBadRequestError("phone number must be 10-11 digits")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password during registration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	phone := req.PhoneNumber
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        &email,
		PhoneNumber:  &phone,
		FullName:     req.FullName,
		AvatarURL:    req.AvatarURL,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user in repository", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("User registered successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find user by ID", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ResolveIdentifier classifies the identifier and looks up the matching user.
// Unknown-shaped identifiers resolve to ErrNotFound without a lookup.
func (s *UserService) ResolveIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	switch domain.ClassifyIdentifier(identifier) {
	case domain.IdentifierEmail:
		return s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(identifier))
	case domain.IdentifierPhone:
		return s.userRepo.FindUserByPhone(ctx, identifier)
	default:
		return nil, apperrors.ErrNotFound
	}
}

// Authenticate verifies identifier+password. A missing user and a wrong
// password produce the same error, so callers can't probe for accounts.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.ResolveIdentifier(ctx, identifier)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve identifier during login", slog.String("error", err.Error()))
			return nil, err
		}
		return nil, apperrors.NewUnauthorizedError("incorrect identifier or password")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch during login", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError("incorrect identifier or password")
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("current password is incorrect")
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		logger.Error("Failed to update password", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}

	logger.Info("Password changed successfully", slog.String("user_id", userID))
	return nil
}

// ForgotPassword issues a fresh reset code for a registered email. Any prior
// unused codes are invalidated first, so only the latest code can redeem.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if domain.ClassifyIdentifier(email) != domain.IdentifierEmail {
		return apperrors.NewBadRequestError("a valid email address is required")
	}
	normalized := domain.NormalizeEmail(email)

	user, err := s.userRepo.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("email is not registered")
		}
		logger.Error("Failed to look up email for reset", slog.String("error", err.Error()))
		return err
	}

	invalidated, err := s.resetTokenRepo.MarkUnusedTokensUsed(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to invalidate prior reset codes", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return err
	}
	if invalidated > 0 {
		logger.Info("Invalidated prior reset codes", slog.Int64("count", invalidated), slog.String("user_id", user.UserID))
	}

	code, codeHash, err := utils.GenerateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	now := time.Now()
	token := domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(s.resetExpiry),
	}
	if err := s.resetTokenRepo.SaveResetToken(ctx, token); err != nil {
		logger.Error("Failed to save reset token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return err
	}

	if err := s.mailSender.SendResetCode(ctx, normalized, code); err != nil {
		logger.Error("Failed to send reset code mail", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		// Remove the unusable token so the next request starts clean
		if cleanupErr := s.resetTokenRepo.DeleteResetToken(ctx, token.TokenID); cleanupErr != nil {
			logger.Error("Failed to clean up reset token after mail failure", slog.String("error", cleanupErr.Error()))
		}
		return fmt.Errorf("failed to send reset code: %w", err)
	}

	logger.Info("Reset code issued", slog.String("user_id", user.UserID))
	return nil
}

// ResetPassword redeems a valid, unexpired code and sets the new password.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBadRequestError("invalid or expired reset code")
		}
		return err
	}

	token, err := s.resetTokenRepo.FindLatestUnusedByUser(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBadRequestError("invalid or expired reset code")
		}
		logger.Error("Failed to load reset token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return err
	}

	if token.Expired(time.Now()) {
		// An expired code is consumed on detection so it can never be retried.
		if err := s.resetTokenRepo.MarkTokenUsed(ctx, token.TokenID); err != nil {
			logger.Error("Failed to mark expired reset token used", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		}
		return apperrors.NewBadRequestError("invalid or expired reset code")
	}
	if !utils.MatchResetCode(code, token.TokenHash) {
		return apperrors.NewBadRequestError("invalid or expired reset code")
	}

	if err := s.resetTokenRepo.MarkTokenUsed(ctx, token.TokenID); err != nil {
		logger.Error("Failed to mark reset token used", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return err
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, newHash); err != nil {
		logger.Error("Failed to update password after reset", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return err
	}

	logger.Info("Password reset successfully", slog.String("user_id", user.UserID))
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if len(*req.FullName) < 2 {
			return nil, apperrors.NewBadRequestError("full name must be at least 2 characters")
		}
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		if domain.ClassifyIdentifier(email) != domain.IdentifierEmail {
			return nil, apperrors.NewBadRequestError("invalid email format")
		}
		user.Email = &email
	}
	if req.PhoneNumber != nil {
		if domain.ClassifyIdentifier(*req.PhoneNumber) != domain.IdentifierPhone {
			return nil, apperrors.NewBadRequestError("phone number must be 10-11 digits")
		}
		phone := *req.PhoneNumber
		user.PhoneNumber = &phone
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to update profile", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}

	logger.Info("Profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = &avatarURL
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update avatar", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidRole(role) {
		return nil, apperrors.NewBadRequestError("unknown role")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update role", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}

	logger.Info("Role updated", slog.String("user_id", userID), slog.String("role", string(role)))
	return s.userRepo.FindUserByID(ctx, userID)
}

// DeleteUser removes the user record; the repository cascades to the user's
// descriptions, conversations and reset tokens.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return err
	}

	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}
