package services

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/hnv-dev/product_desc_app/internal/dto"
)

// GenerateImageInput carries the inputs for image-based generation.
type GenerateImageInput struct {
	ImageData      []byte
	ImageFormat    string
	Style          string
	Prompt         string
	ConversationID *string
}

// DescriptionGeneratorSvc defines description generation operations.
// userID is nil for anonymous callers, whose results are not persisted.
type DescriptionGeneratorSvc interface {
	// GenerateFromText produces a description from free-text product info.
	GenerateFromText(ctx context.Context, userID *string, req dto.GenerateTextRequest) (*domain.Description, error)

	// GenerateFromImage produces a description from an uploaded product image.
	GenerateFromImage(ctx context.Context, userID *string, in GenerateImageInput) (*domain.Description, error)

	// Styles returns the supported writing styles.
	Styles() []string
}

// DescriptionHistorySvc defines history read/delete operations.
type DescriptionHistorySvc interface {
	// ListHistory returns a user's saved descriptions, newest first.
	ListHistory(ctx context.Context, userID string, limit int) ([]domain.Description, error)

	// DeleteHistoryItem removes one owned history entry. Missing and
	// not-owned entries are indistinguishable.
	DeleteHistoryItem(ctx context.Context, userID, descriptionID string) error

	// ClearHistory removes all of a user's history, returning the count.
	ClearHistory(ctx context.Context, userID string) (int64, error)

	// ListDescriptions returns a page across all users (admin operation).
	ListDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error)
}

// SEOSvc defines SEO analysis operations.
type SEOSvc interface {
	// ScoreSEO evaluates description text against target keywords.
	ScoreSEO(req dto.SEOScoreRequest) dto.SEOScoreResponse
}

// DescriptionSvcFacade combines all description-related service interfaces.
type DescriptionSvcFacade interface {
	DescriptionGeneratorSvc
	DescriptionHistorySvc
	SEOSvc
}
