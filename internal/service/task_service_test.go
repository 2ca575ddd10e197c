package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreate_AttachesProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		p := mustProject(t, s.projects, "Billing", "BIL")

		task, err := s.tasks.Create(context.Background(), domain.TaskInput{Name: "Invoices", ProjectID: p.ID, Active: true})
		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		require.NotNil(t, task.Project)
		assert.Equal(t, "BIL", task.Project.Code)
	})
}

func TestTaskCreate_ProjectNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)

		_, err := s.tasks.Create(context.Background(), domain.TaskInput{Name: "Orphan", ProjectID: 12345, Active: true})
		requireKind(t, err, domain.ErrProjectNotFound)
	})
}

func TestTaskCreate_NameUniqueWithinProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		a := mustProject(t, s.projects, "A", "A")
		b := mustProject(t, s.projects, "B", "B")

		mustTask(t, s.tasks, a.ID, "Design")
		_, err := s.tasks.Create(ctx, domain.TaskInput{Name: "Design", ProjectID: a.ID, Active: true})
		requireKind(t, err, domain.ErrDuplicateName)

		_, err = s.tasks.Create(ctx, domain.TaskInput{Name: "Design", ProjectID: b.ID, Active: true})
		assert.NoError(t, err, "same name under a different project is allowed")
	})
}

func TestTaskUpdate_ChecksTargetProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		a := mustProject(t, s.projects, "A", "A")
		b := mustProject(t, s.projects, "B", "B")
		mover := mustTask(t, s.tasks, a.ID, "Review")
		mustTask(t, s.tasks, b.ID, "Review")

		_, err := s.tasks.Update(ctx, mover.ID, domain.TaskInput{Name: "Review", ProjectID: b.ID, Active: true})
		requireKind(t, err, domain.ErrDuplicateName)

		moved, err := s.tasks.Update(ctx, mover.ID, domain.TaskInput{Name: "Review 2", ProjectID: b.ID, Active: true})
		require.NoError(t, err)
		assert.Equal(t, b.ID, moved.ProjectID)
		assert.Equal(t, "B", moved.Project.Code)
	})
}

func TestTaskUpdate_KeepsOwnName(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "Same")

		updated, err := s.tasks.Update(context.Background(), task.ID, domain.TaskInput{Name: "Same", ProjectID: p.ID, Active: false})
		require.NoError(t, err)
		assert.False(t, updated.Active)
	})
}

func TestTaskUpdate_Errors(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")

		_, err := s.tasks.Update(ctx, 999, domain.TaskInput{Name: "x", ProjectID: p.ID, Active: true})
		requireKind(t, err, domain.ErrNotFound)

		_, err = s.tasks.Update(ctx, task.ID, domain.TaskInput{Name: "T", ProjectID: 999, Active: true})
		requireKind(t, err, domain.ErrProjectNotFound)
	})
}

func TestTaskListActive(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		mustTask(t, s.tasks, p.ID, "b")
		_, err := s.tasks.Create(ctx, domain.TaskInput{Name: "a", ProjectID: p.ID, Active: false})
		require.NoError(t, err)
		mustTask(t, s.tasks, p.ID, "c")

		all, err := s.tasks.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, "a", all[0].Name)

		active, err := s.tasks.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "b", active[0].Name)
		assert.Equal(t, "c", active[1].Name)
	})
}

func TestTaskListByProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		a := mustProject(t, s.projects, "A", "A")
		b := mustProject(t, s.projects, "B", "B")
		mustTask(t, s.tasks, a.ID, "one")
		mustTask(t, s.tasks, b.ID, "two")

		tasks, err := s.tasks.ListByProject(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "one", tasks[0].Name)

		_, err = s.tasks.ListByProject(ctx, 999)
		requireKind(t, err, domain.ErrNotFound)
	})
}

func TestTaskDelete_BlockedByEntries(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")
		e, err := s.entries.Create(ctx, entryInput(task.ID, 2))
		require.NoError(t, err)

		err = s.tasks.Delete(ctx, task.ID)
		re := requireKind(t, err, domain.ErrHasDependents)
		assert.Contains(t, re.Message, "1 time entr")

		require.NoError(t, s.entries.Delete(ctx, e.ID))
		require.NoError(t, s.tasks.Delete(ctx, task.ID))

		err = s.tasks.Delete(ctx, task.ID)
		requireKind(t, err, domain.ErrNotFound)
	})
}
