package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a required date field.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2025-01-15"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateDate)
}

// hoursInput returns a huh.Input for decimal hours within the entry bounds.
func hoursInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Hours").
		Description(fmt.Sprintf("%.1f to %.1f", domain.MinEntryHours, domain.MaxEntryHours)).
		Placeholder("1.5").
		Value(value).
		Validate(validateHours)
}

// descriptionInput returns a huh.Input for the entry description.
func descriptionInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("What did you work on?").
		CharLimit(domain.MaxDescriptionLen).
		Value(value).
		Validate(validateDescription)
}

func validateDate(s string) error {
	_, err := contract.ParseRequestDate(strings.TrimSpace(s))
	return err
}

func validateHours(s string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number such as 1.5")
	}
	if h < domain.MinEntryHours || h > domain.MaxEntryHours {
		return fmt.Errorf("hours must be between %.1f and %.1f", domain.MinEntryHours, domain.MaxEntryHours)
	}
	return nil
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(s) > domain.MaxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", domain.MaxDescriptionLen)
	}
	return nil
}
