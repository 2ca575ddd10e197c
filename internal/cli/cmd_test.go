package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 15, 17, 30, 0, 0, time.UTC)

// testApp wires an App over an in-memory SQLite store with a fixed clock.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Store: testutil.NewTestStore(t),
		Now:   func() time.Time { return testNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedTask creates project PLT with one task and returns the task id.
func seedTask(t *testing.T, a *App, name string) int64 {
	t.Helper()
	ctx := context.Background()
	uc := a.UseCases()

	p, err := uc.GetProjectByCode(ctx, "PLT").Unpack()
	if err != nil {
		p, err = uc.CreateProject(ctx, domain.ProjectInput{Name: "Platform", Code: "PLT", Active: true}).Unpack()
		require.NoError(t, err)
	}
	task, err := uc.CreateTask(ctx, domain.TaskInput{Name: name, ProjectID: p.ID, Active: true}).Unpack()
	require.NoError(t, err)
	return task.ID
}

// --- projects ---

func TestProjectCmd_Lifecycle(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "project", "add", "--name", "Platform", "--code", "PLT")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Platform [PLT]")

	out, err = executeCmd(t, a, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PLT")
	assert.Contains(t, out, "Active")

	out, err = executeCmd(t, a, "project", "update", "PLT", "--name", "Platform Team", "--active=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated project Platform Team [PLT]")

	out, err = executeCmd(t, a, "project", "show", "PLT")
	require.NoError(t, err)
	assert.Contains(t, out, "Platform Team")
	assert.Contains(t, out, "Inactive")
	assert.Contains(t, out, "TASKS (0)")

	out, err = executeCmd(t, a, "project", "remove", "PLT")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project Platform Team")

	_, err = executeCmd(t, a, "project", "show", "PLT")
	require.Error(t, err)
	assert.True(t, app.IsStatus(err, app.StatusNotFound))
}

func TestProjectCmd_ResolvesByID(t *testing.T) {
	a := testApp(t)
	p, err := a.UseCases().CreateProject(context.Background(), domain.ProjectInput{Name: "Ops", Code: "OPS", Active: true}).Unpack()
	require.NoError(t, err)

	out, err := executeCmd(t, a, "project", "show", fmt.Sprint(p.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Ops")
}

func TestProjectCmd_NumericCodeFallsBackToCode(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "project", "add", "--name", "Year", "--code", "2025")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "project", "show", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Year")
}

func TestProjectCmd_DuplicateCode(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "project", "add", "--name", "Platform", "--code", "PLT")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "project", "add", "--name", "Other", "--code", "PLT")
	require.Error(t, err)
	var re *app.ResultError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, app.StatusBadRequest, re.Status)
	assert.Contains(t, re.Message, "already exists")
}

func TestProjectCmd_AddRequiresFlags(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "project", "add", "--name", "Platform")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code")
}

func TestProjectCmd_RemoveWithTasksIsRejected(t *testing.T) {
	a := testApp(t)
	seedTask(t, a, "Build")

	_, err := executeCmd(t, a, "project", "remove", "PLT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove them first")
}

// --- tasks ---

func TestTaskCmd_Lifecycle(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "project", "add", "--name", "Platform", "--code", "PLT")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "task", "add", "--project", "PLT", "--name", "Build")
	require.NoError(t, err)
	assert.Contains(t, out, `Created task "Build" in PLT`)

	_, err = executeCmd(t, a, "task", "add", "--project", "PLT", "--name", "Review", "--inactive")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "Review")

	out, err = executeCmd(t, a, "task", "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, out, "Build")
	assert.NotContains(t, out, "Review")

	out, err = executeCmd(t, a, "task", "list", "--project", "PLT", "--active")
	require.NoError(t, err)
	assert.NotContains(t, out, "Review")

	tasks, err := a.UseCases().ListTasks(context.Background(), false).Unpack()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	id := fmt.Sprint(tasks[0].ID)

	out, err = executeCmd(t, a, "task", "update", id, "--name", "Build & ship")
	require.NoError(t, err)
	assert.Contains(t, out, `Updated task "Build & ship"`)

	out, err = executeCmd(t, a, "task", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Build & ship")
	assert.Contains(t, out, "PLT Platform")

	out, err = executeCmd(t, a, "task", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed task "+id)
}

func TestTaskCmd_DuplicateNameInProject(t *testing.T) {
	a := testApp(t)
	seedTask(t, a, "Build")

	_, err := executeCmd(t, a, "task", "add", "--project", "PLT", "--name", "Build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestTaskCmd_UnknownProject(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "task", "add", "--project", "NOPE", "--name", "Build")
	require.Error(t, err)
	assert.True(t, app.IsStatus(err, app.StatusNotFound))
}

func TestTaskCmd_InvalidID(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "task", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

// --- entries ---

func TestEntryCmd_DailyCapScenario(t *testing.T) {
	a := testApp(t)
	task := fmt.Sprint(seedTask(t, a, "Build"))

	out, err := executeCmd(t, a, "entry", "log", "--task", task, "--hours", "20", "--date", "2025-01-15", "-m", "long day")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 20.00h on 2025-01-15 to PLT / Build")
	assert.Contains(t, out, "Day total 20.00h")

	_, err = executeCmd(t, a, "entry", "log", "--task", task, "--hours", "5", "--date", "2025-01-15", "-m", "too much")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily limit")

	out, err = executeCmd(t, a, "entry", "log", "--task", task, "--hours", "4", "--date", "2025-01-15", "-m", "exactly at the cap")
	require.NoError(t, err)
	assert.Contains(t, out, "Day total 24.00h")
	assert.Contains(t, out, "EXCESSIVE")

	out, err = executeCmd(t, a, "summary", "--date", "2025-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "24.00/24h")
	assert.Contains(t, out, "EXCESSIVE")
}

func TestEntryCmd_DefaultsToToday(t *testing.T) {
	a := testApp(t)
	task := fmt.Sprint(seedTask(t, a, "Build"))

	out, err := executeCmd(t, a, "entry", "log", "--task", task, "--hours", "8", "-m", "regular day")
	require.NoError(t, err)
	assert.Contains(t, out, "on 2025-01-15")
	assert.Contains(t, out, "● SUFFICIENT")
}

func TestEntryCmd_MissingFlagsWithoutTerminal(t *testing.T) {
	a := testApp(t)
	seedTask(t, a, "Build")

	_, err := executeCmd(t, a, "entry", "log", "--hours", "2")
	require.ErrorIs(t, err, errMissingEntryFlags)
}

func TestEntryCmd_ShapeErrors(t *testing.T) {
	a := testApp(t)
	task := fmt.Sprint(seedTask(t, a, "Build"))

	_, err := executeCmd(t, a, "entry", "log", "--task", task, "--hours", "25", "-m", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hours must be between")

	_, err = executeCmd(t, a, "entry", "log", "--task", task, "--hours", "1", "--date", "15/01/2025", "-m", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestEntryCmd_InactiveTask(t *testing.T) {
	a := testApp(t)
	id := seedTask(t, a, "Build")
	_, err := executeCmd(t, a, "task", "update", fmt.Sprint(id), "--active=false")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "entry", "log", "--task", fmt.Sprint(id), "--hours", "1", "-m", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestEntryCmd_ListUpdateRemove(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	build := seedTask(t, a, "Build")
	review := seedTask(t, a, "Review")
	uc := a.UseCases()

	for _, in := range []domain.TimeEntryInput{
		{Date: testutil.Day(2025, time.January, 13), Hours: 3, Description: "monday build", TaskID: build},
		{Date: testutil.Day(2025, time.January, 14), Hours: 2, Description: "tuesday review", TaskID: review},
		{Date: testutil.Day(2025, time.January, 15), Hours: 1.5, Description: "wednesday build", TaskID: build},
	} {
		_, err := uc.CreateEntry(ctx, in).Unpack()
		require.NoError(t, err)
	}

	out, err := executeCmd(t, a, "entry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries, 6.50h")

	out, err = executeCmd(t, a, "entry", "list", "--from", "2025-01-14", "--to", "2025-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries, 3.50h")
	assert.NotContains(t, out, "monday build")

	out, err = executeCmd(t, a, "entry", "list", "--task", fmt.Sprint(review))
	require.NoError(t, err)
	assert.Contains(t, out, "1 entry, 2.00h")

	out, err = executeCmd(t, a, "entry", "list", "--project", "PLT")
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries")

	_, err = executeCmd(t, a, "entry", "list", "--from", "2025-01-15", "--to", "2025-01-14")
	require.Error(t, err)

	entries, err := uc.ListEntries(ctx, repositoryFilterForTask(review)).Unpack()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	id := fmt.Sprint(entries[0].ID)

	out, err = executeCmd(t, a, "entry", "update", id, "--hours", "2.5")
	require.NoError(t, err)
	assert.Contains(t, out, "2.50h on 2025-01-14")

	out, err = executeCmd(t, a, "entry", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "tuesday review")
	assert.Contains(t, out, "2.50h")

	_, err = executeCmd(t, a, "entry", "remove", id)
	require.NoError(t, err)

	_, err = executeCmd(t, a, "entry", "show", id)
	assert.True(t, app.IsStatus(err, app.StatusNotFound))
}

// --- summary and report ---

func TestSummaryCmd_ListsDaysNewestFirst(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	task := seedTask(t, a, "Build")
	for _, in := range []domain.TimeEntryInput{
		{Date: testutil.Day(2025, time.January, 13), Hours: 8, Description: "a", TaskID: task},
		{Date: testutil.Day(2025, time.January, 14), Hours: 7.99, Description: "b", TaskID: task},
		{Date: testutil.Day(2025, time.January, 15), Hours: 8.01, Description: "c", TaskID: task},
	} {
		_, err := a.UseCases().CreateEntry(ctx, in).Unpack()
		require.NoError(t, err)
	}

	out, err := executeCmd(t, a, "summary")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)2025-01-15.*2025-01-14.*2025-01-13`, out)
	assert.Contains(t, out, "1 sufficient · 1 insufficient · 1 excessive")

	out, err = executeCmd(t, a, "summary", "--from", "2025-01-14")
	require.NoError(t, err)
	assert.Contains(t, out, "2 days")
	assert.NotContains(t, out, "2025-01-13")

	_, err = executeCmd(t, a, "summary", "--date", "2025-01-14", "--to", "2025-01-15")
	require.Error(t, err)
}

func TestSummaryCmd_EmptyDay(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "summary", "--date", "2025-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "INSUFFICIENT")
	assert.Contains(t, out, "8.00h left to reach the 8.00h target")
}

func TestReportCmd_PrintsWeekWithoutTerminal(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Build")
	_, err := a.UseCases().CreateEntry(context.Background(), domain.TimeEntryInput{
		Date: testutil.Day(2025, time.January, 10), Hours: 6, Description: "friday", TaskID: task,
	}).Unpack()
	require.NoError(t, err)
	_, err = a.UseCases().CreateEntry(context.Background(), domain.TimeEntryInput{
		Date: testutil.Day(2025, time.January, 8), Hours: 6, Description: "outside the week", TaskID: task,
	}).Unpack()
	require.NoError(t, err)

	out, err := executeCmd(t, a, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-10")
	assert.NotContains(t, out, "2025-01-08")
}

func repositoryFilterForTask(id int64) repository.EntryFilter {
	return repository.EntryFilter{TaskID: id}
}

func TestUpdateCmds_RequireAFlag(t *testing.T) {
	a := testApp(t)
	taskID := seedTask(t, a, "Build")
	task := fmt.Sprint(taskID)

	_, err := executeCmd(t, a, "project", "update", "PLT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
	assert.Contains(t, err.Error(), "--code")

	_, err = executeCmd(t, a, "task", "update", task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
	assert.Contains(t, err.Error(), "--name")
	assert.NotContains(t, err.Error(), "--help")

	out, err := executeCmd(t, a, "entry", "log", "--task", task, "--hours", "3", "--date", "2025-01-14", "-m", "pairing")
	require.NoError(t, err)
	entries, err := a.UseCases().ListEntries(context.Background(), repositoryFilterForTask(taskID)).Unpack()
	require.NoError(t, err)
	require.Len(t, entries, 1, out)

	_, err = executeCmd(t, a, "entry", "update", fmt.Sprint(entries[0].ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
	assert.Contains(t, err.Error(), "--hours")
}

func TestUpdateCmds_OverlayOnlyChangedFields(t *testing.T) {
	a := testApp(t)
	taskID := seedTask(t, a, "Build")

	_, err := executeCmd(t, a, "task", "update", fmt.Sprint(taskID), "--active=false")
	require.NoError(t, err)
	task, err := a.UseCases().GetTask(context.Background(), taskID).Unpack()
	require.NoError(t, err)
	assert.Equal(t, "Build", task.Name)
	assert.False(t, task.Active)

	_, err = executeCmd(t, a, "project", "update", "PLT", "--name", "Platform Team")
	require.NoError(t, err)
	p, err := a.UseCases().GetProjectByCode(context.Background(), "PLT").Unpack()
	require.NoError(t, err)
	assert.Equal(t, "Platform Team", p.Name)
	assert.True(t, p.Active, "an omitted --active keeps the stored flag")
}
