package contract

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// --- ProjectRequest ---

func TestProjectRequest_DefaultsActive(t *testing.T) {
	in, err := ProjectRequest{Name: "Billing", Code: "BIL"}.Input()
	require.NoError(t, err)
	assert.True(t, in.Active)

	in, err = ProjectRequest{Name: "Billing", Code: "BIL", Active: boolPtr(false)}.Input()
	require.NoError(t, err)
	assert.False(t, in.Active)
}

func TestProjectRequest_ShapeErrors(t *testing.T) {
	_, err := ProjectRequest{Code: "X"}.Input()
	assert.Error(t, err)
	_, err = ProjectRequest{Name: "X"}.Input()
	assert.Error(t, err)
	_, err = ProjectRequest{Name: strings.Repeat("n", 201), Code: "X"}.Input()
	assert.Error(t, err)
	_, err = ProjectRequest{Name: "X", Code: strings.Repeat("c", 51)}.Input()
	assert.Error(t, err)
}

// --- TaskRequest ---

func TestTaskRequest_Shape(t *testing.T) {
	in, err := TaskRequest{Name: "Design", ProjectID: 3}.Input()
	require.NoError(t, err)
	assert.Equal(t, int64(3), in.ProjectID)
	assert.True(t, in.Active)

	_, err = TaskRequest{Name: "Design"}.Input()
	assert.Error(t, err)
	_, err = TaskRequest{Name: strings.Repeat("t", 301), ProjectID: 1}.Input()
	assert.Error(t, err)
}

// --- TimeEntryRequest ---

func TestTimeEntryRequest_ParsesDates(t *testing.T) {
	in, err := TimeEntryRequest{Date: "2025-01-15", Hours: 2, Description: "x", TaskID: 1}.Input()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), in.Date)

	in, err = TimeEntryRequest{Date: "2025-01-15T18:30:00Z", Hours: 2, Description: "x", TaskID: 1}.Input()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), in.Date)
}

func TestTimeEntryRequest_ShapeErrors(t *testing.T) {
	valid := TimeEntryRequest{Date: "2025-01-15", Hours: 1, Description: "x", TaskID: 1}

	cases := map[string]func(r *TimeEntryRequest){
		"missing date":     func(r *TimeEntryRequest) { r.Date = "" },
		"bad date":         func(r *TimeEntryRequest) { r.Date = "15/01/2025" },
		"hours too small":  func(r *TimeEntryRequest) { r.Hours = 0.05 },
		"hours too large":  func(r *TimeEntryRequest) { r.Hours = 24.5 },
		"three decimals":   func(r *TimeEntryRequest) { r.Hours = 7.996 },
		"no description":   func(r *TimeEntryRequest) { r.Description = "  " },
		"long description": func(r *TimeEntryRequest) { r.Description = strings.Repeat("d", 501) },
		"no task":          func(r *TimeEntryRequest) { r.TaskID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			_, err := r.Input()
			assert.Error(t, err)
		})
	}
}

func TestTimeEntryRequest_HoursBoundsInclusive(t *testing.T) {
	for _, h := range []float64{0.1, 24} {
		_, err := TimeEntryRequest{Date: "2025-01-15", Hours: h, Description: "x", TaskID: 1}.Input()
		assert.NoError(t, err, "hours %v", h)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, s := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID("id", s)
		assert.Error(t, err, s)
	}
}

// --- responses ---

func TestNewTimeEntryResponse_NestsTaskAndProject(t *testing.T) {
	e := &domain.TimeEntry{
		ID:          7,
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Hours:       4,
		Description: "x",
		TaskID:      2,
		Task: &domain.Task{
			ID:      2,
			Name:    "T1",
			Project: &domain.Project{ID: 1, Code: "P1"},
		},
	}

	resp := NewTimeEntryResponse(e)
	assert.Equal(t, "2025-01-15", resp.Date)
	require.NotNil(t, resp.Task)
	require.NotNil(t, resp.Task.Project)
	assert.Equal(t, "P1", resp.Task.Project.Code)
	assert.Nil(t, NewTimeEntryResponse(nil))
}

func TestNewDailySummaryList(t *testing.T) {
	out := NewDailySummaryList([]domain.DailySummary{
		{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), TotalHours: 24, Status: domain.DayExcessive},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "2025-01-15", out[0].Date)
	assert.Equal(t, domain.DayExcessive, out[0].Status)
}
