package domain

import "time"

// DescriptionSource enumerates what a description was generated from.
type DescriptionSource string

const (
	SourceImage DescriptionSource = "image"
	SourceText  DescriptionSource = "text"
)

// Description is one generated artifact in a user's history. Records are
// immutable once created; ownership is optional because anonymous
// generations are never persisted.
type Description struct {
	DescriptionID  string            `json:"descriptionID"`
	UserID         *string           `json:"userID,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Source         DescriptionSource `json:"source"`
	Style          string            `json:"style"`
	Content        string            `json:"content"`
	ImagePath      *string           `json:"imagePath,omitempty"`
	Prompt         *string           `json:"prompt,omitempty"`
	ConversationID *string           `json:"conversationID,omitempty"`
}
