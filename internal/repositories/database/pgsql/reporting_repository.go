package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to run count query: %w", err)
	}
	return n, nil
}

func (r *PgxReportingRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users;`)
}

func (r *PgxReportingRepository) CountDescriptions(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM descriptions;`)
}

func (r *PgxReportingRepository) CountDescriptionsBySource(ctx context.Context, source domain.DescriptionSource) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM descriptions WHERE source = $1;`, string(source))
}

// DescriptionsPerDay buckets descriptions by UTC day. Days with no rows are
// absent; the service layer fills them in.
func (r *PgxReportingRepository) DescriptionsPerDay(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	query := `
        SELECT date_trunc('day', timestamp AT TIME ZONE 'UTC') AS day, COUNT(*)
        FROM descriptions
        WHERE timestamp >= $1
        GROUP BY day
        ORDER BY day ASC;
    `
	rows, err := r.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer rows.Close()

	var buckets []domain.DailyCount
	for rows.Next() {
		var b domain.DailyCount
		if err := rows.Scan(&b.Day, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count row: %w", err)
		}
		b.Day = b.Day.UTC()
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily count rows: %w", err)
	}
	return buckets, nil
}
