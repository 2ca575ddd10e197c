package contract

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

// TimeEntryRequest carries the date as YYYY-MM-DD. A full RFC3339 timestamp
// is accepted too; its time of day is discarded.
type TimeEntryRequest struct {
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	TaskID      int64   `json:"taskId"`
}

func (r TimeEntryRequest) Input() (domain.TimeEntryInput, error) {
	date, err := ParseRequestDate(r.Date)
	if err != nil {
		return domain.TimeEntryInput{}, err
	}
	in := domain.TimeEntryInput{
		Date:        date,
		Hours:       r.Hours,
		Description: r.Description,
		TaskID:      r.TaskID,
	}
	if err := in.Validate(); err != nil {
		return domain.TimeEntryInput{}, err
	}
	return in, nil
}

// ParseRequestDate accepts YYYY-MM-DD or RFC3339.
func ParseRequestDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.NormalizeDate(t), nil
	}
	return domain.ParseDate(s)
}

// ParseID parses a positive integer path or query parameter.
func ParseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

type TimeEntryResponse struct {
	ID          int64         `json:"id"`
	Date        string        `json:"date"`
	Hours       float64       `json:"hours"`
	Description string        `json:"description"`
	TaskID      int64         `json:"taskId"`
	Task        *TaskResponse `json:"task,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func NewTimeEntryResponse(e *domain.TimeEntry) *TimeEntryResponse {
	if e == nil {
		return nil
	}
	return &TimeEntryResponse{
		ID:          e.ID,
		Date:        e.Date.Format(domain.DateLayout),
		Hours:       e.Hours,
		Description: e.Description,
		TaskID:      e.TaskID,
		Task:        NewTaskResponse(e.Task),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func NewTimeEntryList(es []*domain.TimeEntry) []*TimeEntryResponse {
	out := make([]*TimeEntryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, NewTimeEntryResponse(e))
	}
	return out
}

type DailySummaryResponse struct {
	Date       string           `json:"date"`
	TotalHours float64          `json:"totalHours"`
	Status     domain.DayStatus `json:"status"`
}

func NewDailySummaryList(days []domain.DailySummary) []DailySummaryResponse {
	out := make([]DailySummaryResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DailySummaryResponse{
			Date:       d.Date.Format(domain.DateLayout),
			TotalHours: d.TotalHours,
			Status:     d.Status,
		})
	}
	return out
}
