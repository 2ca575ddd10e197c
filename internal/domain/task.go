package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxTaskNameLen = 300

type Task struct {
	ID        int64
	Name      string
	ProjectID int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Project is attached by the task service on create, update and get.
	Project *Project
}

type TaskInput struct {
	Name      string
	ProjectID int64
	Active    bool
}

// Validate checks required fields and lengths only.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if utf8.RuneCountInString(in.Name) > MaxTaskNameLen {
		return fmt.Errorf("task name must be at most %d characters", MaxTaskNameLen)
	}
	if in.ProjectID <= 0 {
		return fmt.Errorf("project id is required")
	}
	return nil
}

func (in TaskInput) Apply(t *Task) {
	t.Name = in.Name
	t.ProjectID = in.ProjectID
	t.Active = in.Active
}
