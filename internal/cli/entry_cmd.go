package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/spf13/cobra"
)

var errMissingEntryFlags = errors.New("--task, --hours and --description are required (run in a terminal to use the form)")

func newEntryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries", "e"},
		Short:   "Log and manage time entries",
	}

	cmd.AddCommand(
		newEntryLogCmd(a),
		newEntryListCmd(a),
		newEntryShowCmd(a),
		newEntryUpdateCmd(a),
		newEntryRemoveCmd(a),
	)

	return cmd
}

func newEntryLogCmd(a *App) *cobra.Command {
	var date, description string
	var hours float64
	var taskID int64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log hours against a task",
		Long: "Log hours against an active task. The total across all entries of one date\n" +
			"may not exceed 24 hours. Without flags, a form is shown when running in a terminal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if date == "" {
				date = a.now().Format(domain.DateLayout)
			}
			req := contract.TimeEntryRequest{Date: date, Hours: hours, Description: description, TaskID: taskID}

			if taskID == 0 || hours == 0 || description == "" {
				if !a.interactive() {
					return errMissingEntryFlags
				}
				filled, err := runEntryForm(ctx, a, req)
				if err != nil {
					return err
				}
				req = filled
			}

			in, err := req.Input()
			if err != nil {
				return err
			}
			e, err := a.UseCases().CreateEntry(ctx, in).Unpack()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged %s on %s to %s (id %d)\n",
				formatter.FormatHours(e.Hours), e.Date.Format(domain.DateLayout), entryTaskName(e), e.ID)
			return printDayTotal(ctx, a, out, e.Date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Calendar date YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked, 0.1 to 24")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Task id")
	cmd.Flags().StringVarP(&description, "description", "m", "", "What was done")

	return cmd
}

// runEntryForm prompts for the fields missing from req.
func runEntryForm(ctx context.Context, a *App, req contract.TimeEntryRequest) (contract.TimeEntryRequest, error) {
	v := entryFormValues{
		TaskID:      req.TaskID,
		Date:        req.Date,
		Hours:       formatHoursValue(req.Hours),
		Description: req.Description,
	}
	form, err := wizardLogEntry(ctx, a, &v)
	if err != nil {
		return req, err
	}
	if form == nil {
		return req, fmt.Errorf("no active tasks; create one with: timelog task add")
	}
	if err := form.RunWithContext(ctx); err != nil {
		return req, err
	}

	h, err := v.hours()
	if err != nil {
		return req, fmt.Errorf("invalid hours %q", v.Hours)
	}
	return contract.TimeEntryRequest{Date: v.Date, Hours: h, Description: v.Description, TaskID: v.TaskID}, nil
}

// printDayTotal reports where the day stands after a change.
func printDayTotal(ctx context.Context, a *App, out io.Writer, day time.Time) error {
	d, err := a.UseCases().SummaryForDate(ctx, day).Unpack()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Day total %s %s\n", formatter.FormatHours(d.TotalHours), formatter.StatusIndicator(d.Status))
	return nil
}

func entryTaskName(e *domain.TimeEntry) string {
	if e.Task == nil {
		return fmt.Sprintf("task %d", e.TaskID)
	}
	if e.Task.Project == nil {
		return e.Task.Name
	}
	return fmt.Sprintf("%s / %s", e.Task.Project.Code, e.Task.Name)
}

func newEntryListCmd(a *App) *cobra.Command {
	var from, to, projectRef string
	var taskID int64

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List time entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lo, hi, err := parseRange(from, to)
			if err != nil {
				return err
			}
			f := repository.EntryFilter{TaskID: taskID}
			if !lo.IsZero() {
				f.From = &lo
			}
			if !hi.IsZero() {
				f.To = &hi
			}
			if projectRef != "" {
				p, err := resolveProject(ctx, a, projectRef)
				if err != nil {
					return err
				}
				f.ProjectID = p.ID
			}

			entries, err := a.UseCases().ListEntries(ctx, f).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntryList(entries, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Earliest date, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Latest date, inclusive")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Only entries of this task id")
	cmd.Flags().StringVar(&projectRef, "project", "", "Only entries of this project (id or code)")

	return cmd
}

func newEntryShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contract.ParseID("entry id", args[0])
			if err != nil {
				return err
			}
			e, err := a.UseCases().GetEntry(cmd.Context(), id).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntryDetail(e))
			return nil
		},
	}
}

func newEntryUpdateCmd(a *App) *cobra.Command {
	var date, description string
	var hours float64
	var taskID int64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChanges(cmd.Flags()); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := contract.ParseID("entry id", args[0])
			if err != nil {
				return err
			}
			uc := a.UseCases()
			e, err := uc.GetEntry(ctx, id).Unpack()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			in, err := contract.TimeEntryRequest{
				Date:        domain.ValueOr(e.Date.Format(domain.DateLayout), changed(flags, "date", &date)),
				Hours:       domain.ValueOr(e.Hours, changed(flags, "hours", &hours)),
				Description: domain.ValueOr(e.Description, changed(flags, "description", &description)),
				TaskID:      domain.ValueOr(e.TaskID, changed(flags, "task", &taskID)),
			}.Input()
			if err != nil {
				return err
			}

			updated, err := uc.UpdateEntry(ctx, id, in).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d: %s on %s\n",
				updated.ID, formatter.FormatHours(updated.Hours), updated.Date.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date YYYY-MM-DD")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New hours")
	cmd.Flags().Int64Var(&taskID, "task", 0, "New task id")
	cmd.Flags().StringVarP(&description, "description", "m", "", "New description")

	return cmd
}

func newEntryRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a time entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contract.ParseID("entry id", args[0])
			if err != nil {
				return err
			}
			if _, err := a.UseCases().DeleteEntry(cmd.Context(), id).Unpack(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
			return nil
		},
	}
}
