// Package report turns time entries into per-day summaries.
package report

import (
	"sort"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

// Aggregate groups entries by calendar date, totals each day and classifies
// it. Results are ordered by date descending. Days without entries are not
// produced.
func Aggregate(entries []*domain.TimeEntry) []domain.DailySummary {
	totals := make(map[time.Time]domain.CentiHours)
	for _, e := range entries {
		day := domain.NormalizeDate(e.Date)
		totals[day] += domain.ToCentiHours(e.Hours)
	}

	out := make([]domain.DailySummary, 0, len(totals))
	for day, total := range totals {
		out = append(out, Summarize(day, total))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Summarize builds the summary for a single day's total.
func Summarize(day time.Time, total domain.CentiHours) domain.DailySummary {
	return domain.DailySummary{
		Date:       domain.NormalizeDate(day),
		TotalHours: total.Hours(),
		Status:     domain.ClassifyDay(total),
	}
}

// Totals sums the hours across a set of summaries.
func Totals(days []domain.DailySummary) (total domain.CentiHours, byStatus map[domain.DayStatus]int) {
	byStatus = make(map[domain.DayStatus]int, 3)
	for _, d := range days {
		total += domain.ToCentiHours(d.TotalHours)
		byStatus[d.Status]++
	}
	return total, byStatus
}
