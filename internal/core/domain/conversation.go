package domain

import "time"

// Conversation groups a sequence of descriptions into a chat-like thread.
// Deleting a conversation cascades to its descriptions.
type Conversation struct {
	ConversationID string    `json:"conversationID"`
	UserID         string    `json:"userID"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
