package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

type timeEntryService struct {
	store    repository.Store
	locks    *dateLocks
	observer UseCaseObserver
}

func NewTimeEntryService(store repository.Store, observers ...UseCaseObserver) TimeEntryService {
	return &timeEntryService{
		store:    store,
		locks:    newDateLocks(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create records an entry against an active task. The date's existing total
// is read and the entry inserted inside one transaction while the date is
// locked, so concurrent creations cannot jointly pass the daily cap.
func (s *timeEntryService) Create(ctx context.Context, in domain.TimeEntryInput) (entry *domain.TimeEntry, err error) {
	day := domain.NormalizeDate(in.Date)
	fields := map[string]any{
		"task_id": in.TaskID,
		"date":    day.Format(domain.DateLayout),
		"hours":   in.Hours,
	}
	defer observe(ctx, s.observer, "time-entry-create", time.Now(), fields, &err)

	unlock := s.locks.lock(day)
	defer unlock()

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		task, err := activeTask(ctx, tx, in.TaskID)
		if err != nil {
			return err
		}

		current, err := tx.TimeEntries().SumOnDate(ctx, day)
		if err != nil {
			return err
		}
		adding := domain.ToCentiHours(in.Hours)
		resulting := current + adding
		fields["day_total"] = resulting.Hours()
		if resulting > domain.DailyCap {
			return domain.NewRuleError(domain.ErrDailyCapExceeded,
				"daily limit of %s hours exceeded on %s: current %s, adding %s, resulting %s",
				domain.DailyCap, day.Format(domain.DateLayout), current, adding, resulting)
		}

		e := &domain.TimeEntry{}
		in.Apply(e)
		if err := tx.TimeEntries().Create(ctx, e); err != nil {
			return err
		}
		e.Task = task
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryService) GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	e, err := s.store.TimeEntries().GetByID(ctx, id)
	if err != nil {
		return nil, entryNotFound(err, id)
	}
	return e, nil
}

func (s *timeEntryService) List(ctx context.Context, f repository.EntryFilter) ([]*domain.TimeEntry, error) {
	return s.store.TimeEntries().List(ctx, f)
}

// Update re-applies the task gate but not the daily cap; the cap guards
// creation only.
func (s *timeEntryService) Update(ctx context.Context, id int64, in domain.TimeEntryInput) (entry *domain.TimeEntry, err error) {
	defer observe(ctx, s.observer, "time-entry-update", time.Now(), map[string]any{"id": id, "task_id": in.TaskID}, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		e, err := tx.TimeEntries().GetByID(ctx, id)
		if err != nil {
			return entryNotFound(err, id)
		}
		task, err := activeTask(ctx, tx, in.TaskID)
		if err != nil {
			return err
		}

		in.Apply(e)
		if err := tx.TimeEntries().Update(ctx, e); err != nil {
			return err
		}
		e.Task = task
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "time-entry-delete", time.Now(), map[string]any{"id": id}, &err)

	if err := s.store.TimeEntries().Delete(ctx, id); err != nil {
		return entryNotFound(err, id)
	}
	return nil
}

// activeTask resolves the task an entry is logged against, with its project.
func activeTask(ctx context.Context, tx repository.Store, id int64) (*domain.Task, error) {
	task, err := tx.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, taskNotFound(err, domain.ErrTaskNotFound, id)
	}
	if !task.Active {
		return nil, domain.NewRuleError(domain.ErrTaskInactive, "task %q is inactive", task.Name)
	}
	return task, nil
}

func entryNotFound(err error, id int64) error {
	return notFoundAs(err, domain.ErrNotFound, "time entry %d not found", id)
}
