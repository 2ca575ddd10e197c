package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/service"
)

// Summary counts what an import created and what it matched to existing rows.
type Summary struct {
	ProjectsCreated int
	ProjectsReused  int
	TasksCreated    int
	TasksReused     int
	EntriesCreated  int
}

// Apply writes f through the rule sets inside one store transaction, so a
// rejected row (an entry over the daily cap, say) leaves the store
// untouched. Projects whose code already exists and tasks whose name
// already exists in their project are reused rather than duplicated.
func Apply(ctx context.Context, store repository.Store, logger *slog.Logger, f *ImportFile, observers ...service.UseCaseObserver) (Summary, error) {
	if errs := ValidateImportFile(f); len(errs) > 0 {
		return Summary{}, fmt.Errorf("invalid import file: %w", errors.Join(errs...))
	}

	var sum Summary
	err := store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		sum = Summary{}
		a := &applier{uc: app.NewUseCases(tx, logger, observers...), projects: map[string]*domain.Project{}, tasks: map[taskKey]int64{}}
		return a.run(ctx, f, &sum)
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

type applier struct {
	uc       *app.UseCases
	projects map[string]*domain.Project
	tasks    map[taskKey]int64
}

func (a *applier) run(ctx context.Context, f *ImportFile, sum *Summary) error {
	for i, p := range f.Projects {
		created, err := a.ensureProject(ctx, p)
		if err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
		if created {
			sum.ProjectsCreated++
		} else {
			sum.ProjectsReused++
		}
	}

	for i, t := range f.Tasks {
		created, err := a.ensureTask(ctx, t)
		if err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
		if created {
			sum.TasksCreated++
		} else {
			sum.TasksReused++
		}
	}

	for i, e := range f.Entries {
		if err := a.createEntry(ctx, e); err != nil {
			return fmt.Errorf("entries[%d]: %w", i, err)
		}
		sum.EntriesCreated++
	}
	return nil
}

func (a *applier) ensureProject(ctx context.Context, p ProjectImport) (bool, error) {
	existing, err := a.uc.GetProjectByCode(ctx, p.Code).Unpack()
	if err == nil {
		a.projects[p.Code] = existing
		return false, nil
	}
	if !app.IsStatus(err, app.StatusNotFound) {
		return false, err
	}

	in, err := contract.ProjectRequest{Name: p.Name, Code: p.Code, Active: p.Active}.Input()
	if err != nil {
		return false, err
	}
	created, err := a.uc.CreateProject(ctx, in).Unpack()
	if err != nil {
		return false, err
	}
	a.projects[p.Code] = created
	return true, nil
}

func (a *applier) project(ctx context.Context, code string) (*domain.Project, error) {
	if p, ok := a.projects[code]; ok {
		return p, nil
	}
	p, err := a.uc.GetProjectByCode(ctx, code).Unpack()
	if err != nil {
		return nil, err
	}
	a.projects[code] = p
	return p, nil
}

func (a *applier) ensureTask(ctx context.Context, t TaskImport) (bool, error) {
	k := taskKey{t.Project, t.Name}
	p, err := a.project(ctx, t.Project)
	if err != nil {
		return false, err
	}
	id, found, err := a.findTask(ctx, p, t.Name)
	if err != nil {
		return false, err
	}
	if found {
		a.tasks[k] = id
		return false, nil
	}

	in, err := contract.TaskRequest{Name: t.Name, ProjectID: p.ID, Active: t.Active}.Input()
	if err != nil {
		return false, err
	}
	created, err := a.uc.CreateTask(ctx, in).Unpack()
	if err != nil {
		return false, err
	}
	a.tasks[k] = created.ID
	return true, nil
}

func (a *applier) findTask(ctx context.Context, p *domain.Project, name string) (int64, bool, error) {
	tasks, err := a.uc.ListProjectTasks(ctx, p.ID).Unpack()
	if err != nil {
		return 0, false, err
	}
	for _, t := range tasks {
		if t.Name == name {
			return t.ID, true, nil
		}
	}
	return 0, false, nil
}

func (a *applier) createEntry(ctx context.Context, e EntryImport) error {
	k := taskKey{e.Project, e.Task}
	id, ok := a.tasks[k]
	if !ok {
		p, err := a.project(ctx, e.Project)
		if err != nil {
			return err
		}
		found, exists, err := a.findTask(ctx, p, e.Task)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("task %q not found in project %s", e.Task, e.Project)
		}
		id = found
		a.tasks[k] = id
	}

	in, err := contract.TimeEntryRequest{Date: e.Date, Hours: e.Hours, Description: e.Description, TaskID: id}.Input()
	if err != nil {
		return err
	}
	_, err = a.uc.CreateEntry(ctx, in).Unpack()
	return err
}
