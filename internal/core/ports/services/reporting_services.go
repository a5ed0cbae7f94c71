package services

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// ReportingSvcFacade defines aggregate usage reporting operations.
type ReportingSvcFacade interface {
	// Stats returns platform-wide usage counters.
	Stats(ctx context.Context) (*domain.UsageStats, error)

	// TimeSeries returns per-day generation counts for the last N days,
	// including zero-count days, oldest first.
	TimeSeries(ctx context.Context, days int) ([]domain.DailyCount, error)
}
