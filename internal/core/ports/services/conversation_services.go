package services

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// ConversationSvcFacade defines operations for managing generation threads.
type ConversationSvcFacade interface {
	// CreateConversation starts a new thread for the user.
	CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error)

	// ListConversations returns the user's threads, most recently updated first.
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error)

	// RenameConversation updates the title of an owned thread.
	RenameConversation(ctx context.Context, userID, conversationID, title string) (*domain.Conversation, error)

	// DeleteConversation removes an owned thread and its messages.
	DeleteConversation(ctx context.Context, userID, conversationID string) error

	// ListMessages returns the thread's descriptions, oldest first.
	ListMessages(ctx context.Context, userID, conversationID string) ([]domain.Description, error)
}
