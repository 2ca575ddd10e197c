// Package contract holds the JSON request and response shapes of the
// request layer and the shape validation applied to incoming bodies.
package contract

import (
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

type ProjectRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Active *bool  `json:"active,omitempty"`
}

// Input validates the request shape and defaults Active to true.
func (r ProjectRequest) Input() (domain.ProjectInput, error) {
	in := domain.ProjectInput{
		Name:   r.Name,
		Code:   r.Code,
		Active: domain.ValueOr(true, r.Active),
	}
	if err := in.Validate(); err != nil {
		return domain.ProjectInput{}, err
	}
	return in, nil
}

type ProjectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewProjectResponse(p *domain.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewProjectList(ps []*domain.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProjectResponse(p))
	}
	return out
}
