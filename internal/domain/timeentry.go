package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxDescriptionLen = 500

	MinEntryHours = 0.1
	MaxEntryHours = 24.0

	// DateLayout is the calendar-date format used for storage and display.
	DateLayout = "2006-01-02"
)

// CentiHours is a quantity of hours in hundredths of an hour. Sums and
// comparisons against the daily cap and the daily target are done in this
// unit so that decimal inputs such as 7.99 or 0.1 add up exactly.
type CentiHours int64

const (
	// DailyCap is the maximum total logged across all entries for one date.
	DailyCap CentiHours = 2400
	// DailyTarget is the total a day must reach to count as sufficient.
	DailyTarget CentiHours = 800
)

// ToCentiHours converts decimal hours to hundredths, rounding to the nearest.
func ToCentiHours(hours float64) CentiHours {
	return CentiHours(math.Round(hours * 100))
}

// HasHundredths reports whether hours is representable in CentiHours
// without rounding.
func HasHundredths(hours float64) bool {
	scaled := hours * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

// Hours converts back to decimal hours.
func (c CentiHours) Hours() float64 {
	return float64(c) / 100
}

func (c CentiHours) String() string {
	return fmt.Sprintf("%.2f", c.Hours())
}

type TimeEntry struct {
	ID          int64
	Date        time.Time
	Hours       float64
	Description string
	TaskID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Task is attached (with its Project) after create, update and get.
	Task *Task
}

type TimeEntryInput struct {
	Date        time.Time
	Hours       float64
	Description string
	TaskID      int64
}

// Validate checks required fields, the hours range and description length.
// The daily cap is not checked here.
func (in TimeEntryInput) Validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if in.Hours < MinEntryHours || in.Hours > MaxEntryHours {
		return fmt.Errorf("hours must be between %.1f and %.1f", MinEntryHours, MaxEntryHours)
	}
	if !HasHundredths(in.Hours) {
		return fmt.Errorf("hours must have at most two decimal places")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
	}
	if in.TaskID <= 0 {
		return fmt.Errorf("task id is required")
	}
	return nil
}

// Apply copies the input onto e, normalizing the date to midnight UTC and
// rounding hours to the hundredths the daily cap was checked in.
func (in TimeEntryInput) Apply(e *TimeEntry) {
	e.Date = NormalizeDate(in.Date)
	e.Hours = ToCentiHours(in.Hours).Hours()
	e.Description = in.Description
	e.TaskID = in.TaskID
}

// NormalizeDate discards the time-of-day component, keeping the calendar
// date as seen in t's own location, and returns midnight UTC of that date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
