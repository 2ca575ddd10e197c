package cli

import (
	"fmt"

	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskShowCmd(a),
		newTaskUpdateCmd(a),
		newTaskRemoveCmd(a),
	)

	return cmd
}

func newTaskAddCmd(a *App) *cobra.Command {
	var name, projectRef string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task under a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, projectRef)
			if err != nil {
				return err
			}

			active := !inactive
			in, err := contract.TaskRequest{Name: name, ProjectID: p.ID, Active: &active}.Input()
			if err != nil {
				return err
			}

			t, err := a.UseCases().CreateTask(ctx, in).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %q in %s (id %d)\n", t.Name, p.Code, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name, unique within the project")
	cmd.Flags().StringVar(&projectRef, "project", "", "Project id or code")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the task as inactive")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	var activeOnly bool
	var projectRef string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uc := a.UseCases()

			var (
				tasks []*domain.Task
				err   error
			)
			if projectRef != "" {
				p, perr := resolveProject(ctx, a, projectRef)
				if perr != nil {
					return perr
				}
				tasks, err = uc.ListProjectTasks(ctx, p.ID).Unpack()
				if activeOnly {
					tasks = activeTasks(tasks)
				}
			} else {
				tasks, err = uc.ListTasks(ctx, activeOnly).Unpack()
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active tasks")
	cmd.Flags().StringVar(&projectRef, "project", "", "Only tasks of this project (id or code)")

	return cmd
}

func activeTasks(tasks []*domain.Task) []*domain.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

func newTaskShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contract.ParseID("task id", args[0])
			if err != nil {
				return err
			}
			t, err := a.UseCases().GetTask(cmd.Context(), id).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(t))
			return nil
		},
	}
}

func newTaskUpdateCmd(a *App) *cobra.Command {
	var name, projectRef string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a task, move it to another project or toggle it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChanges(cmd.Flags()); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := contract.ParseID("task id", args[0])
			if err != nil {
				return err
			}
			uc := a.UseCases()
			t, err := uc.GetTask(ctx, id).Unpack()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var projectID *int64
			if flags.Changed("project") {
				p, err := resolveProject(ctx, a, projectRef)
				if err != nil {
					return err
				}
				projectID = &p.ID
			}
			isActive := domain.ValueOr(t.Active, changed(flags, "active", &active))
			in, err := contract.TaskRequest{
				Name:      domain.ValueOr(t.Name, changed(flags, "name", &name)),
				ProjectID: domain.ValueOr(t.ProjectID, projectID),
				Active:    &isActive,
			}.Input()
			if err != nil {
				return err
			}

			updated, err := uc.UpdateTask(ctx, id, in).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %q (id %d)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New task name")
	cmd.Flags().StringVar(&projectRef, "project", "", "Move to this project (id or code)")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the task is active")

	return cmd
}

func newTaskRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task that has no time entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contract.ParseID("task id", args[0])
			if err != nil {
				return err
			}
			if _, err := a.UseCases().DeleteTask(cmd.Context(), id).Unpack(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %d\n", id)
			return nil
		},
	}
}
