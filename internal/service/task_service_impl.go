package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

type taskService struct {
	store    repository.Store
	observer UseCaseObserver
}

func NewTaskService(store repository.Store, observers ...UseCaseObserver) TaskService {
	return &taskService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) Create(ctx context.Context, in domain.TaskInput) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "task-create", time.Now(), map[string]any{"project_id": in.ProjectID, "name": in.Name}, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		project, err := tx.Projects().GetByID(ctx, in.ProjectID)
		if err != nil {
			return projectNotFound(err, domain.ErrProjectNotFound, in.ProjectID)
		}
		if err := checkTaskName(ctx, tx, project, in.Name, 0); err != nil {
			return err
		}

		t := &domain.Task{}
		in.Apply(t)
		if err := tx.Tasks().Create(ctx, t); err != nil {
			return duplicateAs(err, domain.ErrDuplicateName, "task %q already exists in project %s", in.Name, project.Code)
		}
		t.Project = project
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, taskNotFound(err, domain.ErrNotFound, id)
	}
	return t, nil
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.store.Tasks().List(ctx, false)
}

func (s *taskService) ListActive(ctx context.Context) ([]*domain.Task, error) {
	return s.store.Tasks().List(ctx, true)
}

func (s *taskService) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	if _, err := s.store.Projects().GetByID(ctx, projectID); err != nil {
		return nil, projectNotFound(err, domain.ErrNotFound, projectID)
	}
	return s.store.Tasks().ListByProject(ctx, projectID)
}

// Update checks name uniqueness against the project named in the input, so
// moving a task re-validates it in the destination project.
func (s *taskService) Update(ctx context.Context, id int64, in domain.TaskInput) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "task-update", time.Now(), map[string]any{"id": id, "project_id": in.ProjectID}, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		t, err := tx.Tasks().GetByID(ctx, id)
		if err != nil {
			return taskNotFound(err, domain.ErrNotFound, id)
		}
		project, err := tx.Projects().GetByID(ctx, in.ProjectID)
		if err != nil {
			return projectNotFound(err, domain.ErrProjectNotFound, in.ProjectID)
		}
		if err := checkTaskName(ctx, tx, project, in.Name, id); err != nil {
			return err
		}

		in.Apply(t)
		if err := tx.Tasks().Update(ctx, t); err != nil {
			return duplicateAs(err, domain.ErrDuplicateName, "task %q already exists in project %s", in.Name, project.Code)
		}
		t.Project = project
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "task-delete", time.Now(), map[string]any{"id": id}, &err)

	return s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		t, err := tx.Tasks().GetByID(ctx, id)
		if err != nil {
			return taskNotFound(err, domain.ErrNotFound, id)
		}

		n, err := tx.TimeEntries().CountByTask(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewRuleError(domain.ErrHasDependents,
				"task %q has %d time entr(ies); remove them first", t.Name, n)
		}

		return tx.Tasks().Delete(ctx, id)
	})
}

func checkTaskName(ctx context.Context, tx repository.Store, project *domain.Project, name string, excludeID int64) error {
	taken, err := tx.Tasks().NameTaken(ctx, project.ID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewRuleError(domain.ErrDuplicateName, "task %q already exists in project %s", name, project.Code)
	}
	return nil
}

func taskNotFound(err error, kind domain.ErrorKind, id int64) error {
	return notFoundAs(err, kind, "task %d not found", id)
}
