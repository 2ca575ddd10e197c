package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxProjectNameLen = 200
	MaxProjectCodeLen = 50
)

type Project struct {
	ID        int64
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectInput carries the caller-supplied fields for a project create or update.
type ProjectInput struct {
	Name   string
	Code   string
	Active bool
}

// Validate checks the shape of the input: required fields and maximum lengths.
// It does not consult the store; code uniqueness is enforced by the project service.
func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if utf8.RuneCountInString(in.Name) > MaxProjectNameLen {
		return fmt.Errorf("project name must be at most %d characters", MaxProjectNameLen)
	}
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("project code is required")
	}
	if utf8.RuneCountInString(in.Code) > MaxProjectCodeLen {
		return fmt.Errorf("project code must be at most %d characters", MaxProjectCodeLen)
	}
	return nil
}

// Apply overwrites the mutable fields of p with the input.
func (in ProjectInput) Apply(p *Project) {
	p.Name = in.Name
	p.Code = in.Code
	p.Active = in.Active
}

// DisplayLabel returns "CODE — Name" for pickers and tables.
func (p *Project) DisplayLabel() string {
	if p.Code == "" {
		return p.Name
	}
	return fmt.Sprintf("%s — %s", p.Code, p.Name)
}
