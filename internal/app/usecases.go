package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/service"
)

// UseCases wraps the rule sets so that every operation yields a Result.
type UseCases struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Entries  service.TimeEntryService
	Summary  service.SummaryService
	Logger   *slog.Logger
}

// NewUseCases wires every rule set over one store.
func NewUseCases(store repository.Store, logger *slog.Logger, observers ...service.UseCaseObserver) *UseCases {
	return &UseCases{
		Projects: service.NewProjectService(store, observers...),
		Tasks:    service.NewTaskService(store, observers...),
		Entries:  service.NewTimeEntryService(store, observers...),
		Summary:  service.NewSummaryService(store),
		Logger:   logger,
	}
}

func wrap[T any](ctx context.Context, u *UseCases, op, okMsg string, data T, err error) Result[T] {
	if err != nil {
		return FromError[T](ctx, u.Logger, op, err)
	}
	return Ok(data, okMsg)
}

// --- projects ---

func (u *UseCases) CreateProject(ctx context.Context, in domain.ProjectInput) Result[*domain.Project] {
	p, err := u.Projects.Create(ctx, in)
	return wrap(ctx, u, "create project", "project created", p, err)
}

func (u *UseCases) UpdateProject(ctx context.Context, id int64, in domain.ProjectInput) Result[*domain.Project] {
	p, err := u.Projects.Update(ctx, id, in)
	return wrap(ctx, u, "update project", "project updated", p, err)
}

func (u *UseCases) DeleteProject(ctx context.Context, id int64) Result[bool] {
	err := u.Projects.Delete(ctx, id)
	return wrap(ctx, u, "delete project", "project deleted", err == nil, err)
}

func (u *UseCases) GetProject(ctx context.Context, id int64) Result[*domain.Project] {
	p, err := u.Projects.GetByID(ctx, id)
	return wrap(ctx, u, "get project", "", p, err)
}

func (u *UseCases) GetProjectByCode(ctx context.Context, code string) Result[*domain.Project] {
	p, err := u.Projects.GetByCode(ctx, code)
	return wrap(ctx, u, "get project", "", p, err)
}

func (u *UseCases) ListProjects(ctx context.Context) Result[[]*domain.Project] {
	ps, err := u.Projects.List(ctx)
	return wrap(ctx, u, "list projects", "", ps, err)
}

// --- tasks ---

func (u *UseCases) CreateTask(ctx context.Context, in domain.TaskInput) Result[*domain.Task] {
	t, err := u.Tasks.Create(ctx, in)
	return wrap(ctx, u, "create task", "task created", t, err)
}

func (u *UseCases) UpdateTask(ctx context.Context, id int64, in domain.TaskInput) Result[*domain.Task] {
	t, err := u.Tasks.Update(ctx, id, in)
	return wrap(ctx, u, "update task", "task updated", t, err)
}

func (u *UseCases) DeleteTask(ctx context.Context, id int64) Result[bool] {
	err := u.Tasks.Delete(ctx, id)
	return wrap(ctx, u, "delete task", "task deleted", err == nil, err)
}

func (u *UseCases) GetTask(ctx context.Context, id int64) Result[*domain.Task] {
	t, err := u.Tasks.GetByID(ctx, id)
	return wrap(ctx, u, "get task", "", t, err)
}

func (u *UseCases) ListTasks(ctx context.Context, activeOnly bool) Result[[]*domain.Task] {
	var (
		ts  []*domain.Task
		err error
	)
	if activeOnly {
		ts, err = u.Tasks.ListActive(ctx)
	} else {
		ts, err = u.Tasks.List(ctx)
	}
	return wrap(ctx, u, "list tasks", "", ts, err)
}

func (u *UseCases) ListProjectTasks(ctx context.Context, projectID int64) Result[[]*domain.Task] {
	ts, err := u.Tasks.ListByProject(ctx, projectID)
	return wrap(ctx, u, "list project tasks", "", ts, err)
}

// --- time entries ---

func (u *UseCases) CreateEntry(ctx context.Context, in domain.TimeEntryInput) Result[*domain.TimeEntry] {
	e, err := u.Entries.Create(ctx, in)
	return wrap(ctx, u, "create time entry", "time entry created", e, err)
}

func (u *UseCases) UpdateEntry(ctx context.Context, id int64, in domain.TimeEntryInput) Result[*domain.TimeEntry] {
	e, err := u.Entries.Update(ctx, id, in)
	return wrap(ctx, u, "update time entry", "time entry updated", e, err)
}

func (u *UseCases) DeleteEntry(ctx context.Context, id int64) Result[bool] {
	err := u.Entries.Delete(ctx, id)
	return wrap(ctx, u, "delete time entry", "time entry deleted", err == nil, err)
}

func (u *UseCases) GetEntry(ctx context.Context, id int64) Result[*domain.TimeEntry] {
	e, err := u.Entries.GetByID(ctx, id)
	return wrap(ctx, u, "get time entry", "", e, err)
}

func (u *UseCases) ListEntries(ctx context.Context, f repository.EntryFilter) Result[[]*domain.TimeEntry] {
	es, err := u.Entries.List(ctx, f)
	return wrap(ctx, u, "list time entries", "", es, err)
}

// --- reporting ---

func (u *UseCases) DailySummary(ctx context.Context) Result[[]domain.DailySummary] {
	days, err := u.Summary.Daily(ctx)
	return wrap(ctx, u, "daily summary", "", days, err)
}

func (u *UseCases) DailySummaryBetween(ctx context.Context, from, to time.Time) Result[[]domain.DailySummary] {
	days, err := u.Summary.DailyBetween(ctx, from, to)
	return wrap(ctx, u, "daily summary", "", days, err)
}

func (u *UseCases) SummaryForDate(ctx context.Context, day time.Time) Result[domain.DailySummary] {
	d, err := u.Summary.ForDate(ctx, day)
	return wrap(ctx, u, "daily summary", "", d, err)
}
