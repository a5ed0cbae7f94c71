package repositories

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// ResetTokenRepository defines persistence operations for password reset tokens.
type ResetTokenRepository interface {
	// SaveResetToken inserts a new token (hash only, never the plaintext).
	SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error

	// FindLatestUnusedByUser returns the most recently created unused token
	// for the user, apperrors.ErrNotFound when there is none.
	FindLatestUnusedByUser(ctx context.Context, userID string) (*domain.PasswordResetToken, error)

	// MarkUnusedTokensUsed invalidates every unused token for the user and
	// returns how many were invalidated. At most one unused token per user
	// is valid at a time; issuing a new code calls this first.
	MarkUnusedTokensUsed(ctx context.Context, userID string) (int64, error)

	// MarkTokenUsed consumes a single token.
	MarkTokenUsed(ctx context.Context, tokenID string) error

	// DeleteResetToken removes a token. Used as compensating cleanup when
	// the reset mail could not be sent.
	DeleteResetToken(ctx context.Context, tokenID string) error
}
