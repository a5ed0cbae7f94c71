package repositories

import (
	"context"
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries for the admin dashboard.
type ReportingRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountDescriptions(ctx context.Context) (int64, error)
	CountDescriptionsBySource(ctx context.Context, source domain.DescriptionSource) (int64, error)

	// DescriptionsPerDay buckets description counts by calendar day (UTC)
	// from since onward, oldest bucket first. Days with no records are omitted.
	DescriptionsPerDay(ctx context.Context, since time.Time) ([]domain.DailyCount, error)
}
