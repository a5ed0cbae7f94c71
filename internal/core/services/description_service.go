package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
)

// DefaultStyle is applied when a generation request omits the style field.
const DefaultStyle = "marketing"

// supportedStyles is the sorted list served by GET /api/styles.
var supportedStyles = []string{"friendly", "marketing", "professional", "storytelling"}

// priorContextLimit caps how many earlier thread messages are fed back into
// a follow-up generation.
const priorContextLimit = 10

// DescriptionService implements generation and history management.
type DescriptionService struct {
	descriptionRepo  portsrepo.DescriptionRepository
	conversationRepo portsrepo.ConversationRepository
	generator        portssvc.Generator
	imageStore       portssvc.ImageStore
}

func NewDescriptionService(descriptionRepo portsrepo.DescriptionRepository, conversationRepo portsrepo.ConversationRepository, generator portssvc.Generator, imageStore portssvc.ImageStore) *DescriptionService {
	return &DescriptionService{
		descriptionRepo:  descriptionRepo,
		conversationRepo: conversationRepo,
		generator:        generator,
		imageStore:       imageStore,
	}
}

func (s *DescriptionService) Styles() []string {
	styles := make([]string, len(supportedStyles))
	copy(styles, supportedStyles)
	return styles
}

func normalizeStyle(style string) string {
	if style == "" {
		return DefaultStyle
	}
	return style
}

// GenerateFromText produces a description from free-text product info.
// Authenticated results are persisted to history; anonymous results are
// returned with an empty DescriptionID and never stored.
func (s *DescriptionService) GenerateFromText(ctx context.Context, userID *string, req dto.GenerateTextRequest) (*domain.Description, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	style := normalizeStyle(req.Style)

	var priorContext []string
	var conversationID *string
	if req.ConversationID != nil && userID != nil {
		conv, err := s.conversationRepo.FindConversation(ctx, *req.ConversationID, *userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("conversation not found")
			}
			return nil, err
		}
		conversationID = &conv.ConversationID

		prior, err := s.descriptionRepo.FindDescriptionsByConversation(ctx, conv.ConversationID, *userID)
		if err != nil {
			logger.Error("Failed to load conversation context", slog.String("error", err.Error()), slog.String("conversation_id", conv.ConversationID))
			return nil, err
		}
		if len(prior) > priorContextLimit {
			prior = prior[len(prior)-priorContextLimit:]
		}
		for i := range prior {
			priorContext = append(priorContext, prior[i].Content)
		}
	}

	content, err := s.generator.GenerateText(ctx, req.ProductInfo, style, priorContext)
	if err != nil {
		logger.Error("Text generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate description: %w", err)
	}

	prompt := req.ProductInfo
	description := domain.Description{
		Timestamp:      time.Now(),
		Source:         domain.SourceText,
		Style:          style,
		Content:        content,
		Prompt:         &prompt,
		ConversationID: conversationID,
	}

	if userID == nil {
		// Anonymous generations are returned but never persisted
		return &description, nil
	}

	description.DescriptionID = uuid.NewString()
	description.UserID = userID
	if err := s.descriptionRepo.SaveDescription(ctx, description); err != nil {
		logger.Error("Failed to save description", slog.String("error", err.Error()))
		return nil, err
	}
	if conversationID != nil {
		if err := s.conversationRepo.TouchConversation(ctx, *conversationID, description.Timestamp); err != nil {
			logger.Warn("Failed to touch conversation", slog.String("error", err.Error()), slog.String("conversation_id", *conversationID))
		}
	}

	logger.Info("Description generated from text", slog.String("description_id", description.DescriptionID))
	return &description, nil
}

// GenerateFromImage produces a description from uploaded product image bytes.
// When a conversation ID is given the result is attached to that thread.
func (s *DescriptionService) GenerateFromImage(ctx context.Context, userID *string, in portssvc.GenerateImageInput) (*domain.Description, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	style := normalizeStyle(in.Style)

	var conversationID *string
	if in.ConversationID != nil && userID != nil {
		conv, err := s.conversationRepo.FindConversation(ctx, *in.ConversationID, *userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("conversation not found")
			}
			return nil, err
		}
		conversationID = &conv.ConversationID
	}

	content, err := s.generator.GenerateFromImage(ctx, in.ImageData, in.ImageFormat, style, in.Prompt)
	if err != nil {
		logger.Error("Image generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate description: %w", err)
	}

	description := domain.Description{
		Timestamp:      time.Now(),
		Source:         domain.SourceImage,
		Style:          style,
		Content:        content,
		ConversationID: conversationID,
	}
	if in.Prompt != "" {
		prompt := in.Prompt
		description.Prompt = &prompt
	}

	if userID == nil {
		return &description, nil
	}

	imageURL, err := s.imageStore.SaveImage(ctx, in.ImageData, "image/"+in.ImageFormat)
	if err != nil {
		// History survives without the stored upload
		logger.Warn("Failed to store uploaded image", slog.String("error", err.Error()))
	} else {
		description.ImagePath = &imageURL
	}

	description.DescriptionID = uuid.NewString()
	description.UserID = userID
	if err := s.descriptionRepo.SaveDescription(ctx, description); err != nil {
		logger.Error("Failed to save description", slog.String("error", err.Error()))
		return nil, err
	}
	if conversationID != nil {
		if err := s.conversationRepo.TouchConversation(ctx, *conversationID, description.Timestamp); err != nil {
			logger.Warn("Failed to touch conversation", slog.String("error", err.Error()), slog.String("conversation_id", *conversationID))
		}
	}

	logger.Info("Description generated from image", slog.String("description_id", description.DescriptionID))
	return &description, nil
}

// ListHistory returns the user's saved descriptions, newest first.
func (s *DescriptionService) ListHistory(ctx context.Context, userID string, limit int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 20
	}

	descriptions, err := s.descriptionRepo.FindDescriptionsByUser(ctx, userID, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list history", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if descriptions == nil {
		return []domain.Description{}, nil
	}
	return descriptions, nil
}

// DeleteHistoryItem removes one owned entry. Missing and not-owned entries
// are indistinguishable to the caller.
func (s *DescriptionService) DeleteHistoryItem(ctx context.Context, userID, descriptionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.descriptionRepo.DeleteDescription(ctx, userID, descriptionID)
	if err != nil {
		logger.Error("Failed to delete history item", slog.String("error", err.Error()), slog.String("description_id", descriptionID))
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundError("history item not found")
	}

	logger.Info("History item deleted", slog.String("description_id", descriptionID))
	return nil
}

// ClearHistory removes all of a user's saved descriptions.
func (s *DescriptionService) ClearHistory(ctx context.Context, userID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.descriptionRepo.DeleteDescriptionsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to clear history", slog.String("error", err.Error()))
		return 0, err
	}

	logger.Info("History cleared", slog.Int64("deleted", deleted))
	return deleted, nil
}

// ListDescriptions returns a page across all users, newest first.
func (s *DescriptionService) ListDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	descriptions, err := s.descriptionRepo.FindDescriptions(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list descriptions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list descriptions: %w", err)
	}
	if descriptions == nil {
		return []domain.Description{}, nil
	}
	return descriptions, nil
}
