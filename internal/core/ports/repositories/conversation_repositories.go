package repositories

import (
	"context"
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// ConversationRepository defines persistence operations for conversations.
type ConversationRepository interface {
	// SaveConversation inserts a new conversation.
	SaveConversation(ctx context.Context, conversation domain.Conversation) error

	// FindConversationsByUser returns a page of the user's conversations,
	// most recently updated first.
	FindConversationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error)

	// FindConversation returns the conversation if it exists and is owned by
	// the user; apperrors.ErrNotFound covers both missing and not-owned.
	FindConversation(ctx context.Context, conversationID string, userID string) (*domain.Conversation, error)

	// UpdateConversationTitle renames an owned conversation and bumps its
	// updated_at. Returns false when missing or not owned.
	UpdateConversationTitle(ctx context.Context, conversationID string, userID string, title string, updatedAt time.Time) (bool, error)

	// TouchConversation bumps updated_at when a new message lands in the thread.
	TouchConversation(ctx context.Context, conversationID string, updatedAt time.Time) error

	// DeleteConversation removes an owned conversation and cascades to its
	// descriptions. Returns false when missing or not owned.
	DeleteConversation(ctx context.Context, conversationID string, userID string) (bool, error)
}
