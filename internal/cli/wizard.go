package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// timelogHuhTheme styles huh forms with the formatter palette.
func timelogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entryFormValues backs the log form. Hours stays a string so the input can
// be validated as the user types.
type entryFormValues struct {
	TaskID      int64
	Date        string
	Hours       string
	Description string
}

// taskOptions lists active tasks as "CODE — Task" picker options.
func taskOptions(ctx context.Context, a *App) ([]huh.Option[int64], error) {
	tasks, err := a.UseCases().ListTasks(ctx, true).Unpack()
	if err != nil {
		return nil, err
	}
	options := make([]huh.Option[int64], 0, len(tasks))
	for _, t := range tasks {
		label := t.Name
		if t.Project != nil {
			label = fmt.Sprintf("%s — %s", t.Project.Code, t.Name)
		}
		options = append(options, huh.NewOption(label, t.ID))
	}
	return options, nil
}

// wizardLogEntry builds the form used by "entry log" when flags are missing.
// It returns nil when there is no active task to log against.
func wizardLogEntry(ctx context.Context, a *App, v *entryFormValues) (*huh.Form, error) {
	options, err := taskOptions(ctx, a)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Which task?").
				Options(options...).
				Value(&v.TaskID),
			dateInput("Date (YYYY-MM-DD)", v.Date, &v.Date),
			hoursInput(&v.Hours),
			descriptionInput(&v.Description),
		),
	).WithTheme(timelogHuhTheme()).WithShowHelp(false), nil
}

func (v entryFormValues) hours() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v.Hours), 64)
}

func formatHoursValue(h float64) string {
	if h == 0 {
		return ""
	}
	return domain.ToCentiHours(h).String()
}
