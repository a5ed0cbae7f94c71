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
	"github.com/hnv-dev/product_desc_app/internal/middleware"
)

// defaultConversationTitle is used when a thread is created without a name.
const defaultConversationTitle = "New conversation"

// ConversationService implements thread management for generation history.
type ConversationService struct {
	conversationRepo portsrepo.ConversationRepository
	descriptionRepo  portsrepo.DescriptionRepository
}

func NewConversationService(conversationRepo portsrepo.ConversationRepository, descriptionRepo portsrepo.DescriptionRepository) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		descriptionRepo:  descriptionRepo,
	}
}

func (s *ConversationService) CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if title == "" {
		title = defaultConversationTitle
	}

	now := time.Now()
	conversation := domain.Conversation{
		ConversationID: uuid.NewString(),
		UserID:         userID,
		Title:          title,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.conversationRepo.SaveConversation(ctx, conversation); err != nil {
		logger.Error("Failed to save conversation", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Conversation created", slog.String("conversation_id", conversation.ConversationID))
	return &conversation, nil
}

func (s *ConversationService) ListConversations(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	conversations, err := s.conversationRepo.FindConversationsByUser(ctx, userID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list conversations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if conversations == nil {
		return []domain.Conversation{}, nil
	}
	return conversations, nil
}

func (s *ConversationService) RenameConversation(ctx context.Context, userID, conversationID, title string) (*domain.Conversation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if title == "" {
		return nil, apperrors.NewBadRequestError("title is required")
	}

	updated, err := s.conversationRepo.UpdateConversationTitle(ctx, conversationID, userID, title, time.Now())
	if err != nil {
		logger.Error("Failed to rename conversation", slog.String("error", err.Error()), slog.String("conversation_id", conversationID))
		return nil, err
	}
	if !updated {
		return nil, apperrors.NewNotFoundError("conversation not found")
	}

	return s.conversationRepo.FindConversation(ctx, conversationID, userID)
}

// DeleteConversation removes an owned thread; the repository cascades to the
// thread's descriptions.
func (s *ConversationService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.conversationRepo.DeleteConversation(ctx, conversationID, userID)
	if err != nil {
		logger.Error("Failed to delete conversation", slog.String("error", err.Error()), slog.String("conversation_id", conversationID))
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundError("conversation not found")
	}

	logger.Info("Conversation deleted", slog.String("conversation_id", conversationID))
	return nil
}

// ListMessages returns the thread's descriptions, oldest first.
func (s *ConversationService) ListMessages(ctx context.Context, userID, conversationID string) ([]domain.Description, error) {
	// Ownership check first so a foreign thread reads as missing
	if _, err := s.conversationRepo.FindConversation(ctx, conversationID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, err
	}

	messages, err := s.descriptionRepo.FindDescriptionsByConversation(ctx, conversationID, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list conversation messages", slog.String("error", err.Error()), slog.String("conversation_id", conversationID))
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if messages == nil {
		return []domain.Description{}, nil
	}
	return messages, nil
}
