package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

var testCodeCounter atomic.Int64

// Day returns midnight UTC of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func WithProjectInactive() ProjectOption {
	return func(p *domain.Project) {
		p.Active = false
	}
}

// NewTestProject builds an unsaved active project with a unique code.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:   name,
		Code:   fmt.Sprintf("PRJ-%03d", testCodeCounter.Add(1)),
		Active: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskInactive() TaskOption {
	return func(t *domain.Task) {
		t.Active = false
	}
}

// NewTestTask builds an unsaved active task under projectID.
func NewTestTask(projectID int64, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		Name:      name,
		ProjectID: projectID,
		Active:    true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Entry options
type EntryOption func(*domain.TimeEntry)

func WithDescription(d string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Description = d
	}
}

// NewTestEntry builds an unsaved time entry.
func NewTestEntry(taskID int64, date time.Time, hours float64, opts ...EntryOption) *domain.TimeEntry {
	e := &domain.TimeEntry{
		Date:        domain.NormalizeDate(date),
		Hours:       hours,
		Description: "work",
		TaskID:      taskID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
