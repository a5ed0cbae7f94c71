package services

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveIdentifier classifies a free-text identifier (email or phone)
	// and looks up the matching user. Unknown identifiers never match.
	ResolveIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// ListUsers retrieves a page of users, newest first.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// Register creates a new user from a registration payload.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateProfile patches profile fields, enforcing identifier uniqueness.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// UpdateAvatar stores the avatar URL on the user record.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error)

	// UpdateRole changes a user's role (admin operation).
	UpdateRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error)
}

// UserAuthSvc defines authentication and credential-recovery operations.
type UserAuthSvc interface {
	// Authenticate verifies identifier+password. Wrong identifier and wrong
	// password are indistinguishable to the caller.
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)

	// ChangePassword rotates the password after verifying the current one.
	ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error

	// ForgotPassword issues a one-time reset code for a registered email,
	// invalidating any prior unused codes, and mails the plaintext code.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a valid, unexpired reset code and sets the new
	// password.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeleteUser removes a user and cascades to their history (admin operation).
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserLifecycleSvc
}
