package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/report"
	"github.com/alexanderramin/timelog/internal/repository"
)

type summaryService struct {
	entries repository.TimeEntryRepo
}

// NewSummaryService reads straight from the store; reporting bypasses the
// rule sets.
func NewSummaryService(store repository.Store) SummaryService {
	return &summaryService{entries: store.TimeEntries()}
}

func (s *summaryService) Daily(ctx context.Context) ([]domain.DailySummary, error) {
	return s.aggregate(ctx, repository.EntryFilter{})
}

func (s *summaryService) DailyBetween(ctx context.Context, from, to time.Time) ([]domain.DailySummary, error) {
	var f repository.EntryFilter
	if !from.IsZero() {
		f.From = &from
	}
	if !to.IsZero() {
		f.To = &to
	}
	return s.aggregate(ctx, f)
}

func (s *summaryService) ForDate(ctx context.Context, day time.Time) (domain.DailySummary, error) {
	total, err := s.entries.SumOnDate(ctx, day)
	if err != nil {
		return domain.DailySummary{}, err
	}
	return report.Summarize(day, total), nil
}

func (s *summaryService) aggregate(ctx context.Context, f repository.EntryFilter) ([]domain.DailySummary, error) {
	entries, err := s.entries.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.Aggregate(entries), nil
}
