package dto

import (
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

// GenerateTextRequest is the payload for POST /api/descriptions/text.
type GenerateTextRequest struct {
	ProductInfo    string  `json:"product_info" binding:"required"`
	Style          string  `json:"style"`
	ConversationID *string `json:"conversation_id"`
}

// DescriptionResponse is returned by both generation endpoints. HistoryID is
// empty for anonymous generations, which are never persisted.
type DescriptionResponse struct {
	Description string  `json:"description"`
	HistoryID   string  `json:"history_id"`
	Timestamp   string  `json:"timestamp"`
	Style       string  `json:"style"`
	Source      string  `json:"source"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// ToDescriptionResponse converts a generated description to its response
// DTO. Anonymous generations carry an empty DescriptionID.
func ToDescriptionResponse(d *domain.Description) DescriptionResponse {
	return DescriptionResponse{
		Description: d.Content,
		HistoryID:   d.DescriptionID,
		Timestamp:   d.Timestamp.UTC().Format(time.RFC3339),
		Style:       d.Style,
		Source:      string(d.Source),
		ImageURL:    d.ImagePath,
	}
}

// HistoryItem is one listing entry. Summary and FullDescription are both
// derived from the same stored content.
type HistoryItem struct {
	ID              string  `json:"id"`
	Timestamp       string  `json:"timestamp"`
	Source          string  `json:"source"`
	Style           string  `json:"style"`
	Summary         string  `json:"summary"`
	FullDescription string  `json:"full_description"`
	ImageURL        *string `json:"image_url,omitempty"`
	ConversationID  *string `json:"conversation_id,omitempty"`
}

// ToHistoryItem converts a domain.Description to its listing DTO.
func ToHistoryItem(d *domain.Description) HistoryItem {
	return HistoryItem{
		ID:              d.DescriptionID,
		Timestamp:       d.Timestamp.UTC().Format(time.RFC3339),
		Source:          string(d.Source),
		Style:           d.Style,
		Summary:         utils.Summarize(d.Content),
		FullDescription: d.Content,
		ImageURL:        d.ImagePath,
		ConversationID:  d.ConversationID,
	}
}

// ToHistoryItems converts a slice of descriptions, preserving order.
func ToHistoryItems(ds []domain.Description) []HistoryItem {
	items := make([]HistoryItem, len(ds))
	for i := range ds {
		items[i] = ToHistoryItem(&ds[i])
	}
	return items
}

// ListHistoryParams defines query parameters for GET /api/history.
type ListHistoryParams struct {
	Limit int `form:"limit,default=20"`
}

// SEOScoreRequest is the payload for POST /api/seo-score.
type SEOScoreRequest struct {
	Text string `json:"text" binding:"required"`
}

// SEOScoreResponse carries the heuristic score and its contributing factors.
type SEOScoreResponse struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// TTSRequest is the payload for POST /api/tts.
type TTSRequest struct {
	Text string `json:"text" binding:"required"`
}
