package contract

import (
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

type TaskRequest struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
	Active    *bool  `json:"active,omitempty"`
}

func (r TaskRequest) Input() (domain.TaskInput, error) {
	in := domain.TaskInput{
		Name:      r.Name,
		ProjectID: r.ProjectID,
		Active:    domain.ValueOr(true, r.Active),
	}
	if err := in.Validate(); err != nil {
		return domain.TaskInput{}, err
	}
	return in, nil
}

type TaskResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	ProjectID int64            `json:"projectId"`
	Active    bool             `json:"active"`
	Project   *ProjectResponse `json:"project,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func NewTaskResponse(t *domain.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	return &TaskResponse{
		ID:        t.ID,
		Name:      t.Name,
		ProjectID: t.ProjectID,
		Active:    t.Active,
		Project:   NewProjectResponse(t.Project),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func NewTaskList(ts []*domain.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
