package models

import "time"

// Conversation is the relational persistence shape of a conversation row.
type Conversation struct {
	ConversationID string    `db:"conversation_id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
