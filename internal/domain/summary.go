package domain

import "time"

// DailySummary is derived from persisted time entries and never stored.
type DailySummary struct {
	Date       time.Time
	TotalHours float64
	Status     DayStatus
}
