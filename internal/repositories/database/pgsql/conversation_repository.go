package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	"github.com/hnv-dev/product_desc_app/internal/models"
)

type PgxConversationRepository struct {
	BaseRepository
}

func newPgxConversationRepository(db *pgxpool.Pool) portsrepo.ConversationRepository {
	return &PgxConversationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ConversationRepository = (*PgxConversationRepository)(nil)

func toDomainConversation(m models.Conversation) domain.Conversation {
	return domain.Conversation{
		ConversationID: m.ConversationID,
		UserID:         m.UserID,
		Title:          m.Title,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

const conversationColumns = `conversation_id, user_id, title, created_at, updated_at`

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	var m models.Conversation
	err := row.Scan(&m.ConversationID, &m.UserID, &m.Title, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxConversationRepository) SaveConversation(ctx context.Context, conversation domain.Conversation) error {
	query := `
        INSERT INTO conversations (conversation_id, user_id, title, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query,
		conversation.ConversationID,
		conversation.UserID,
		conversation.Title,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

func (r *PgxConversationRepository) FindConversationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM conversations
        WHERE user_id = $1
        ORDER BY updated_at DESC
        LIMIT $2 OFFSET $3;
    `, conversationColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		m, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		conversations = append(conversations, toDomainConversation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversation rows: %w", err)
	}
	return conversations, nil
}

func (r *PgxConversationRepository) FindConversation(ctx context.Context, conversationID string, userID string) (*domain.Conversation, error) {
	query := fmt.Sprintf(`SELECT %s FROM conversations WHERE conversation_id = $1 AND user_id = $2;`, conversationColumns)
	m, err := scanConversation(r.Pool.QueryRow(ctx, query, conversationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	c := toDomainConversation(*m)
	return &c, nil
}

func (r *PgxConversationRepository) UpdateConversationTitle(ctx context.Context, conversationID string, userID string, title string, updatedAt time.Time) (bool, error) {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE conversations SET title = $3, updated_at = $4 WHERE conversation_id = $1 AND user_id = $2;`,
		conversationID, userID, title, updatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update conversation title: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxConversationRepository) TouchConversation(ctx context.Context, conversationID string, updatedAt time.Time) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE conversations SET updated_at = $2 WHERE conversation_id = $1;`,
		conversationID, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}

// DeleteConversation removes an owned thread and its descriptions in one
// transaction.
func (r *PgxConversationRepository) DeleteConversation(ctx context.Context, conversationID string, userID string) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM conversations WHERE conversation_id = $1 AND user_id = $2;`,
		conversationID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM descriptions WHERE conversation_id = $1 AND user_id = $2;`,
		conversationID, userID,
	); err != nil {
		return false, fmt.Errorf("failed to delete conversation messages: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}
