package repositories

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// DescriptionRepository defines persistence operations for history records.
type DescriptionRepository interface {
	// SaveDescription inserts a new generated description.
	SaveDescription(ctx context.Context, description domain.Description) error

	// FindDescriptionsByUser returns up to limit records owned by the user,
	// newest first.
	FindDescriptionsByUser(ctx context.Context, userID string, limit int) ([]domain.Description, error)

	// FindDescriptions returns a page of all records, newest first (admin).
	FindDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error)

	// DeleteDescription removes one record scoped to the owner. It returns
	// false, not an error, when the record is missing or owned by someone
	// else; callers must not be able to tell those cases apart.
	DeleteDescription(ctx context.Context, userID string, descriptionID string) (bool, error)

	// DeleteDescriptionsByUser removes all of a user's records and returns
	// how many were removed.
	DeleteDescriptionsByUser(ctx context.Context, userID string) (int64, error)

	// FindDescriptionsByConversation returns the owner's records in a
	// conversation, oldest first (chat reading order).
	FindDescriptionsByConversation(ctx context.Context, conversationID string, userID string) ([]domain.Description, error)
}
