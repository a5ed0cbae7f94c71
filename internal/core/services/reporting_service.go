package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
)

// ReportingService aggregates platform usage figures for the admin dashboard.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

func NewReportingService(reportingRepo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo}
}

func (s *ReportingService) Stats(ctx context.Context) (*domain.UsageStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totalUsers, err := s.reportingRepo.CountUsers(ctx)
	if err != nil {
		logger.Error("Failed to count users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalDescriptions, err := s.reportingRepo.CountDescriptions(ctx)
	if err != nil {
		logger.Error("Failed to count descriptions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count descriptions: %w", err)
	}
	imageCount, err := s.reportingRepo.CountDescriptionsBySource(ctx, domain.SourceImage)
	if err != nil {
		return nil, fmt.Errorf("failed to count image descriptions: %w", err)
	}
	textCount, err := s.reportingRepo.CountDescriptionsBySource(ctx, domain.SourceText)
	if err != nil {
		return nil, fmt.Errorf("failed to count text descriptions: %w", err)
	}

	return &domain.UsageStats{
		TotalUsers:        totalUsers,
		TotalDescriptions: totalDescriptions,
		ImageDescriptions: imageCount,
		TextDescriptions:  textCount,
	}, nil
}

// TimeSeries returns per-day generation counts for the last N days. Days with
// no activity are filled with zero so the series is dense and oldest-first.
func (s *ReportingService) TimeSeries(ctx context.Context, days int) ([]domain.DailyCount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	buckets, err := s.reportingRepo.DescriptionsPerDay(ctx, since)
	if err != nil {
		logger.Error("Failed to load daily counts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load daily counts: %w", err)
	}

	counts := make(map[time.Time]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Day.UTC().Truncate(24*time.Hour)] = b.Count
	}

	series := make([]domain.DailyCount, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		series = append(series, domain.DailyCount{Day: d, Count: counts[d]})
	}
	return series, nil
}
