package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

// Rule violations are returned as *domain.RuleError; any other error is a
// store failure.

type ProjectService interface {
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type TaskService interface {
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListActive(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	Update(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TimeEntryService interface {
	Create(ctx context.Context, in domain.TimeEntryInput) (*domain.TimeEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error)
	List(ctx context.Context, f repository.EntryFilter) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, id int64, in domain.TimeEntryInput) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id int64) error
}

type SummaryService interface {
	// Daily summarizes every day that has at least one entry, newest first.
	Daily(ctx context.Context) ([]domain.DailySummary, error)
	// DailyBetween is Daily restricted to an inclusive date range. A zero
	// bound leaves that end open.
	DailyBetween(ctx context.Context, from, to time.Time) ([]domain.DailySummary, error)
	// ForDate summarizes one day; a day with no entries totals zero.
	ForDate(ctx context.Context, day time.Time) (domain.DailySummary, error)
}
