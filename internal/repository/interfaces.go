package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a write violates a UNIQUE constraint.
	ErrDuplicate = errors.New("duplicate")
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	// List returns all projects ordered by name ascending.
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	// CodeTaken reports whether a project other than excludeID uses code.
	// Pass 0 to consider every project.
	CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// List returns tasks ordered by name ascending, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
	// NameTaken reports whether another task (not excludeID) in projectID has name.
	NameTaken(ctx context.Context, projectID int64, name string, excludeID int64) (bool, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
}

// EntryFilter narrows a time-entry listing. Zero values mean no restriction;
// From and To are inclusive calendar dates.
type EntryFilter struct {
	From      *time.Time
	To        *time.Time
	TaskID    int64
	ProjectID int64
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error)
	// List returns entries ordered by date descending, then id descending.
	List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, id int64) error
	// SumOnDate totals the hours of every entry dated on the calendar date
	// of day, across all tasks and projects.
	SumOnDate(ctx context.Context, day time.Time) (domain.CentiHours, error)
	CountByTask(ctx context.Context, taskID int64) (int, error)
}

// Store is the storage port handed to the rule sets. Repositories obtained
// from the Store passed to a WithinTx callback see and write the same
// transaction; returning an error from the callback discards its writes.
type Store interface {
	Projects() ProjectRepo
	Tasks() TaskRepo
	TimeEntries() TimeEntryRepo
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
