package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

type projectService struct {
	store    repository.Store
	observer UseCaseObserver
}

func NewProjectService(store repository.Store, observers ...UseCaseObserver) ProjectService {
	return &projectService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, in domain.ProjectInput) (project *domain.Project, err error) {
	defer observe(ctx, s.observer, "project-create", time.Now(), map[string]any{"code": in.Code}, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		taken, err := tx.Projects().CodeTaken(ctx, in.Code, 0)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCode(in.Code)
		}

		p := &domain.Project{}
		in.Apply(p)
		if err := tx.Projects().Create(ctx, p); err != nil {
			return duplicateAs(err, domain.ErrDuplicateCode, "project code %q already exists", in.Code)
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, projectNotFound(err, domain.ErrNotFound, id)
	}
	return p, nil
}

func (s *projectService) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	p, err := s.store.Projects().GetByCode(ctx, code)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrNotFound, "project with code %q not found", code)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.store.Projects().List(ctx)
}

// Update overwrites name, code and active in one write. Keeping the
// project's own code is not a collision.
func (s *projectService) Update(ctx context.Context, id int64, in domain.ProjectInput) (project *domain.Project, err error) {
	defer observe(ctx, s.observer, "project-update", time.Now(), map[string]any{"id": id, "code": in.Code}, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		p, err := tx.Projects().GetByID(ctx, id)
		if err != nil {
			return projectNotFound(err, domain.ErrNotFound, id)
		}

		taken, err := tx.Projects().CodeTaken(ctx, in.Code, id)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCode(in.Code)
		}

		in.Apply(p)
		if err := tx.Projects().Update(ctx, p); err != nil {
			return duplicateAs(err, domain.ErrDuplicateCode, "project code %q already exists", in.Code)
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "project-delete", time.Now(), map[string]any{"id": id}, &err)

	return s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		p, err := tx.Projects().GetByID(ctx, id)
		if err != nil {
			return projectNotFound(err, domain.ErrNotFound, id)
		}

		n, err := tx.Tasks().CountByProject(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewRuleError(domain.ErrHasDependents,
				"project %s has %d task(s); remove them first", p.Code, n)
		}

		return tx.Projects().Delete(ctx, id)
	})
}

func duplicateCode(code string) error {
	return domain.NewRuleError(domain.ErrDuplicateCode, "project code %q already exists", code)
}

func projectNotFound(err error, kind domain.ErrorKind, id int64) error {
	return notFoundAs(err, kind, "project %d not found", id)
}
