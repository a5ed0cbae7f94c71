package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	"github.com/hnv-dev/product_desc_app/internal/models"
)

type PgxDescriptionRepository struct {
	BaseRepository
}

func newPgxDescriptionRepository(db *pgxpool.Pool) portsrepo.DescriptionRepository {
	return &PgxDescriptionRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.DescriptionRepository = (*PgxDescriptionRepository)(nil)

func toModelDescription(d domain.Description) models.Description {
	return models.Description{
		DescriptionID:  d.DescriptionID,
		UserID:         toNullString(d.UserID),
		Timestamp:      d.Timestamp,
		Source:         string(d.Source),
		Style:          d.Style,
		Content:        d.Content,
		ImagePath:      toNullString(d.ImagePath),
		Prompt:         toNullString(d.Prompt),
		ConversationID: toNullString(d.ConversationID),
	}
}

func toDomainDescription(m models.Description) domain.Description {
	return domain.Description{
		DescriptionID:  m.DescriptionID,
		UserID:         fromNullString(m.UserID),
		Timestamp:      m.Timestamp,
		Source:         domain.DescriptionSource(m.Source),
		Style:          m.Style,
		Content:        m.Content,
		ImagePath:      fromNullString(m.ImagePath),
		Prompt:         fromNullString(m.Prompt),
		ConversationID: fromNullString(m.ConversationID),
	}
}

const descriptionColumns = `description_id, user_id, timestamp, source, style, content, image_path, prompt, conversation_id`

func scanDescription(row pgx.Row) (*models.Description, error) {
	var m models.Description
	err := row.Scan(
		&m.DescriptionID,
		&m.UserID,
		&m.Timestamp,
		&m.Source,
		&m.Style,
		&m.Content,
		&m.ImagePath,
		&m.Prompt,
		&m.ConversationID,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxDescriptionRepository) queryDescriptions(ctx context.Context, query string, args ...any) ([]domain.Description, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer rows.Close()

	var descriptions []domain.Description
	for rows.Next() {
		m, err := scanDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan description row: %w", err)
		}
		descriptions = append(descriptions, toDomainDescription(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate description rows: %w", err)
	}
	return descriptions, nil
}

func (r *PgxDescriptionRepository) SaveDescription(ctx context.Context, description domain.Description) error {
	m := toModelDescription(description)
	query := `
        INSERT INTO descriptions (description_id, user_id, timestamp, source, style, content, image_path, prompt, conversation_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.DescriptionID,
		m.UserID,
		m.Timestamp,
		m.Source,
		m.Style,
		m.Content,
		m.ImagePath,
		m.Prompt,
		m.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to save description: %w", err)
	}
	return nil
}

func (r *PgxDescriptionRepository) FindDescriptionsByUser(ctx context.Context, userID string, limit int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
        SELECT %s
        FROM descriptions
        WHERE user_id = $1
        ORDER BY timestamp DESC
        LIMIT $2;
    `, descriptionColumns)
	return r.queryDescriptions(ctx, query, userID, limit)
}

func (r *PgxDescriptionRepository) FindDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT %s
        FROM descriptions
        ORDER BY timestamp DESC
        LIMIT $1 OFFSET $2;
    `, descriptionColumns)
	return r.queryDescriptions(ctx, query, limit, offset)
}

// DeleteDescription removes one owned row. Missing and not-owned rows both
// report false.
func (r *PgxDescriptionRepository) DeleteDescription(ctx context.Context, userID string, descriptionID string) (bool, error) {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM descriptions WHERE description_id = $1 AND user_id = $2;`,
		descriptionID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete description: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxDescriptionRepository) DeleteDescriptionsByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM descriptions WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete descriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxDescriptionRepository) FindDescriptionsByConversation(ctx context.Context, conversationID string, userID string) ([]domain.Description, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM descriptions
        WHERE conversation_id = $1 AND user_id = $2
        ORDER BY timestamp ASC;
    `, descriptionColumns)
	return r.queryDescriptions(ctx, query, conversationID, userID)
}
