package repositories

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// email or phone number is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID, apperrors.ErrNotFound if missing.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by exact (already lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByPhone retrieves a user by the literal phone number string.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// FindUsers retrieves a page of users, newest first.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser persists profile fields (email, phone, name, avatar).
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error

	// UpdateRole replaces the user's role.
	UpdateRole(ctx context.Context, userID string, role domain.UserRole) error

	// DeleteUser removes the user and cascades to their descriptions,
	// conversations and reset tokens.
	DeleteUser(ctx context.Context, userID string) error
}
