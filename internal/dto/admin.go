package dto

import (
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// StatsResponse is the admin dashboard aggregate view.
type StatsResponse struct {
	TotalUsers        int64            `json:"total_users"`
	TotalDescriptions int64            `json:"total_descriptions"`
	DescriptionsByType map[string]int64 `json:"descriptions_by_type"`
}

// ToStatsResponse converts domain.UsageStats to the response DTO.
func ToStatsResponse(s *domain.UsageStats) StatsResponse {
	return StatsResponse{
		TotalUsers:        s.TotalUsers,
		TotalDescriptions: s.TotalDescriptions,
		DescriptionsByType: map[string]int64{
			"image": s.ImageDescriptions,
			"text":  s.TextDescriptions,
		},
	}
}

// TimeSeriesParams defines query parameters for the analytics endpoint.
type TimeSeriesParams struct {
	Days int `form:"days,default=30"`
}

// TimeSeriesPoint is one day of the analytics series.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ToTimeSeries converts daily buckets to response points.
func ToTimeSeries(buckets []domain.DailyCount) []TimeSeriesPoint {
	points := make([]TimeSeriesPoint, len(buckets))
	for i, b := range buckets {
		points[i] = TimeSeriesPoint{Date: b.Day.UTC().Format(time.DateOnly), Count: b.Count}
	}
	return points
}

// ListDescriptionsParams defines query parameters for the admin description listing.
type ListDescriptionsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
