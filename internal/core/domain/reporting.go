package domain

import "time"

// UsageStats aggregates counts for the admin dashboard.
type UsageStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalDescriptions int64 `json:"totalDescriptions"`
	ImageDescriptions int64 `json:"imageDescriptions"`
	TextDescriptions  int64 `json:"textDescriptions"`
}

// DailyCount is one bucket of the admin time-series analytics.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}
