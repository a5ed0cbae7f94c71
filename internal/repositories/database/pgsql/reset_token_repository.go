package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	"github.com/hnv-dev/product_desc_app/internal/models"
)

type PgxResetTokenRepository struct {
	BaseRepository
}

func newPgxResetTokenRepository(db *pgxpool.Pool) portsrepo.ResetTokenRepository {
	return &PgxResetTokenRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ResetTokenRepository = (*PgxResetTokenRepository)(nil)

func (r *PgxResetTokenRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	query := `
        INSERT INTO password_reset_tokens (token_id, user_id, token_hash, created_at, expires_at, used)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		token.TokenID,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
		token.ExpiresAt,
		token.Used,
	)
	if err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	return nil
}

func (r *PgxResetTokenRepository) FindLatestUnusedByUser(ctx context.Context, userID string) (*domain.PasswordResetToken, error) {
	query := `
        SELECT token_id, user_id, token_hash, created_at, expires_at, used
        FROM password_reset_tokens
        WHERE user_id = $1 AND used = FALSE
        ORDER BY created_at DESC
        LIMIT 1;
    `
	var m models.PasswordResetToken
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.TokenID,
		&m.UserID,
		&m.TokenHash,
		&m.CreatedAt,
		&m.ExpiresAt,
		&m.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	return &domain.PasswordResetToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
	}, nil
}

func (r *PgxResetTokenRepository) MarkUnusedTokensUsed(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE;`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxResetTokenRepository) MarkTokenUsed(ctx context.Context, tokenID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token_id = $1;`,
		tokenID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxResetTokenRepository) DeleteResetToken(ctx context.Context, tokenID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE token_id = $1;`, tokenID)
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
