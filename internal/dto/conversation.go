package dto

import (
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// CreateConversationRequest names a new thread; title may be empty.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// UpdateConversationRequest renames a thread.
type UpdateConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

// ConversationResponse is the public shape of a conversation.
type ConversationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToConversationResponse converts a domain.Conversation to its DTO.
func ToConversationResponse(c *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        c.ConversationID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ListConversationsParams defines query parameters for listing conversations.
type ListConversationsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
