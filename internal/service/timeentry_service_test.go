package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntry_DailyCapScenario(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "Project One", "P1")
		task := mustTask(t, s.tasks, p.ID, "T1")

		first, err := s.entries.Create(ctx, entryInput(task.ID, 20))
		require.NoError(t, err)
		require.NotNil(t, first.Task)
		assert.Equal(t, "T1", first.Task.Name)
		require.NotNil(t, first.Task.Project)
		assert.Equal(t, "P1", first.Task.Project.Code)

		_, err = s.entries.Create(ctx, entryInput(task.ID, 5))
		re := requireKind(t, err, domain.ErrDailyCapExceeded)
		assert.Contains(t, re.Message, "current 20.00")
		assert.Contains(t, re.Message, "adding 5.00")
		assert.Contains(t, re.Message, "resulting 25.00")

		_, err = s.entries.Create(ctx, entryInput(task.ID, 4))
		require.NoError(t, err, "reaching exactly 24 hours is allowed")

		day, err := s.summary.ForDate(ctx, testutil.Day(2025, 1, 15))
		require.NoError(t, err)
		assert.InDelta(t, 24.0, day.TotalHours, 1e-9)
		assert.Equal(t, domain.DayExcessive, day.Status)

		entries, err := s.entries.List(ctx, repository.EntryFilter{})
		require.NoError(t, err)
		assert.Len(t, entries, 2, "the rejected entry must not be persisted")
	})
}

func TestTimeEntry_CapSpansTasksAndProjects(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		a := mustProject(t, s.projects, "A", "A")
		b := mustProject(t, s.projects, "B", "B")
		ta := mustTask(t, s.tasks, a.ID, "ta")
		tb := mustTask(t, s.tasks, b.ID, "tb")

		_, err := s.entries.Create(ctx, entryInput(ta.ID, 12))
		require.NoError(t, err)
		_, err = s.entries.Create(ctx, entryInput(tb.ID, 11.9))
		require.NoError(t, err)

		_, err = s.entries.Create(ctx, entryInput(tb.ID, 0.2))
		requireKind(t, err, domain.ErrDailyCapExceeded)

		_, err = s.entries.Create(ctx, entryInput(ta.ID, 0.1))
		assert.NoError(t, err)
	})
}

func TestTimeEntry_CapIgnoresTimeOfDay(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")

		morning := entryInput(task.ID, 16)
		morning.Date = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
		_, err := s.entries.Create(ctx, morning)
		require.NoError(t, err)

		evening := entryInput(task.ID, 9)
		evening.Date = time.Date(2025, 1, 15, 23, 59, 0, 0, time.FixedZone("EST", -5*3600))
		_, err = s.entries.Create(ctx, evening)
		requireKind(t, err, domain.ErrDailyCapExceeded)

		nextDay := entryInput(task.ID, 9)
		nextDay.Date = time.Date(2025, 1, 16, 0, 1, 0, 0, time.UTC)
		created, err := s.entries.Create(ctx, nextDay)
		require.NoError(t, err)
		assert.Equal(t, testutil.Day(2025, 1, 16), created.Date)
	})
}

func TestTimeEntry_TaskGate(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		_, err := s.tasks.Create(ctx, domain.TaskInput{Name: "Dormant", ProjectID: p.ID, Active: false})
		require.NoError(t, err)
		inactive, err := s.tasks.ListByProject(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, inactive, 1)

		_, err = s.entries.Create(ctx, entryInput(9999, 1))
		requireKind(t, err, domain.ErrTaskNotFound)

		_, err = s.entries.Create(ctx, entryInput(inactive[0].ID, 1))
		re := requireKind(t, err, domain.ErrTaskInactive)
		assert.Contains(t, re.Message, "Dormant")
	})
}

func TestTimeEntry_UpdateAppliesTaskGateNotCap(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")
		other := mustTask(t, s.tasks, p.ID, "Other")

		_, err := s.entries.Create(ctx, entryInput(task.ID, 20))
		require.NoError(t, err)
		e, err := s.entries.Create(ctx, entryInput(task.ID, 2))
		require.NoError(t, err)

		in := entryInput(other.ID, 6)
		in.Description = "moved"
		updated, err := s.entries.Update(ctx, e.ID, in)
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.TaskID)
		assert.Equal(t, "moved", updated.Description)
		assert.Equal(t, "Other", updated.Task.Name)

		_, err = s.tasks.Update(ctx, other.ID, domain.TaskInput{Name: "Other", ProjectID: p.ID, Active: false})
		require.NoError(t, err)
		_, err = s.entries.Update(ctx, e.ID, in)
		requireKind(t, err, domain.ErrTaskInactive)

		_, err = s.entries.Update(ctx, 9999, in)
		requireKind(t, err, domain.ErrNotFound)
	})
}

func TestTimeEntry_GetDeleteList(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")

		e, err := s.entries.Create(ctx, entryInput(task.ID, 1.5))
		require.NoError(t, err)

		got, err := s.entries.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, got.Hours, 1e-9)
		assert.Equal(t, "P", got.Task.Project.Code)

		list, err := s.entries.List(ctx, repository.EntryFilter{ProjectID: p.ID})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, s.entries.Delete(ctx, e.ID))
		_, err = s.entries.GetByID(ctx, e.ID)
		requireKind(t, err, domain.ErrNotFound)
		requireKind(t, s.entries.Delete(ctx, e.ID), domain.ErrNotFound)
	})
}

func TestTimeEntry_ConcurrentCreatesRespectCap(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "P", "P")
		task := mustTask(t, s.tasks, p.ID, "T")

		const workers = 12
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
			rejected int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.entries.Create(ctx, entryInput(task.ID, 3))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					accepted++
				case domain.IsKind(err, domain.ErrDailyCapExceeded):
					rejected++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 8, accepted)
		assert.Equal(t, 4, rejected)

		day, err := s.summary.ForDate(ctx, testutil.Day(2025, 1, 15))
		require.NoError(t, err)
		assert.InDelta(t, 24.0, day.TotalHours, 1e-9)
	})
}

func TestTimeEntry_StoreFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	plain := repository.NewSQLiteStore(database)
	p := mustProject(t, NewProjectService(plain), "P", "P")
	task := mustTask(t, NewTaskService(plain), p.ID, "T")

	injected := errors.New("injected insert failure")
	failing := repository.NewSQLiteStoreWithUoW(database, &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 1,
		Err:    injected,
	})

	_, err := NewTimeEntryService(failing).Create(ctx, entryInput(task.ID, 2))
	require.ErrorIs(t, err, injected)
	_, isRule := domain.AsRuleError(err)
	assert.False(t, isRule)

	total, err := plain.TimeEntries().SumOnDate(ctx, testutil.Day(2025, 1, 15))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTimeEntry_StoresHoursAtCheckedPrecision(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "Project One", "P1")
		task := mustTask(t, s.tasks, p.ID, "T1")

		for i := 0; i < 2; i++ {
			e, err := s.entries.Create(ctx, entryInput(task.ID, 12.004))
			require.NoError(t, err)
			assert.Equal(t, 12.0, e.Hours)
		}

		_, err := s.entries.Create(ctx, entryInput(task.ID, 0.1))
		requireKind(t, err, domain.ErrDailyCapExceeded)

		entries, err := s.entries.List(ctx, repository.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		var stored float64
		for _, e := range entries {
			stored += e.Hours
		}
		assert.LessOrEqual(t, stored, domain.MaxEntryHours, "persisted total stays within the daily cap")

		day, err := s.summary.ForDate(ctx, testutil.Day(2025, 1, 15))
		require.NoError(t, err)
		assert.Equal(t, stored, day.TotalHours)
	})
}

func TestTimeEntry_ClassificationMatchesStoredHours(t *testing.T) {
	forEachStore(t, func(t *testing.T, store repository.Store) {
		s := newServices(store)
		ctx := context.Background()
		p := mustProject(t, s.projects, "Project One", "P1")
		task := mustTask(t, s.tasks, p.ID, "T1")

		low := entryInput(task.ID, 7.994)
		low.Date = testutil.Day(2025, 1, 14)
		e, err := s.entries.Create(ctx, low)
		require.NoError(t, err)
		assert.Equal(t, 7.99, e.Hours)

		e, err = s.entries.Create(ctx, entryInput(task.ID, 7.996))
		require.NoError(t, err)
		assert.Equal(t, 8.0, e.Hours)

		days, err := s.summary.Daily(ctx)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, 8.0, days[0].TotalHours)
		assert.Equal(t, domain.DaySufficient, days[0].Status)
		assert.Equal(t, 7.99, days[1].TotalHours)
		assert.Equal(t, domain.DayInsufficient, days[1].Status)
	})
}
