package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/testutil"
	"github.com/stretchr/testify/require"
)

// storeKinds runs a test body once per Store implementation.
var storeKinds = map[string]func(t *testing.T) repository.Store{
	"sqlite": func(t *testing.T) repository.Store { return testutil.NewTestStore(t) },
	"memory": func(t *testing.T) repository.Store { return testutil.NewMemoryStore() },
}

func forEachStore(t *testing.T, fn func(t *testing.T, store repository.Store)) {
	t.Helper()
	for name, newStore := range storeKinds {
		t.Run(name, func(t *testing.T) {
			fn(t, newStore(t))
		})
	}
}

type services struct {
	projects ProjectService
	tasks    TaskService
	entries  TimeEntryService
	summary  SummaryService
}

func newServices(store repository.Store) services {
	return services{
		projects: NewProjectService(store),
		tasks:    NewTaskService(store),
		entries:  NewTimeEntryService(store),
		summary:  NewSummaryService(store),
	}
}

func mustProject(t *testing.T, svc ProjectService, name, code string) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), domain.ProjectInput{Name: name, Code: code, Active: true})
	require.NoError(t, err)
	return p
}

func mustTask(t *testing.T, svc TaskService, projectID int64, name string) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), domain.TaskInput{Name: name, ProjectID: projectID, Active: true})
	require.NoError(t, err)
	return task
}

func entryInput(taskID int64, hours float64) domain.TimeEntryInput {
	return domain.TimeEntryInput{
		Date:        testutil.Day(2025, 1, 15),
		Hours:       hours,
		Description: "work",
		TaskID:      taskID,
	}
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.RuleError {
	t.Helper()
	require.Error(t, err)
	re, ok := domain.AsRuleError(err)
	require.Truef(t, ok, "expected rule error %s, got %v", kind, err)
	require.Equal(t, kind, re.Kind, re.Message)
	return re
}
