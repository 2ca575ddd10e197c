package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/spf13/cobra"
)

// resolveProject accepts a numeric id or a project code. A numeric ref that
// matches no id is retried as a code.
func resolveProject(ctx context.Context, a *App, ref string) (*domain.Project, error) {
	if ref == "" {
		return nil, fmt.Errorf("project id or code is required")
	}
	uc := a.UseCases()
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		p, err := uc.GetProject(ctx, id).Unpack()
		if err == nil || !app.IsStatus(err, app.StatusNotFound) {
			return p, err
		}
	}
	return uc.GetProjectByCode(ctx, ref).Unpack()
}

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(a),
		newProjectListCmd(a),
		newProjectShowCmd(a),
		newProjectUpdateCmd(a),
		newProjectRemoveCmd(a),
	)

	return cmd
}

func newProjectAddCmd(a *App) *cobra.Command {
	var name, code string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := !inactive
			in, err := contract.ProjectRequest{Name: name, Code: code, Active: &active}.Input()
			if err != nil {
				return err
			}

			p, err := a.UseCases().CreateProject(cmd.Context(), in).Unpack()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s] (id %d)\n", p.Name, p.Code, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&code, "code", "", "Unique project code, e.g. PLT")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the project as inactive")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newProjectListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.UseCases().ListProjects(cmd.Context()).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|code>",
		Short: "Show a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}
			tasks, err := a.UseCases().ListProjectTasks(ctx, p.ID).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, tasks))
			return nil
		},
	}
}

func newProjectUpdateCmd(a *App) *cobra.Command {
	var name, code string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id|code>",
		Short: "Change a project's name, code or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireChanges(cmd.Flags()); err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			isActive := domain.ValueOr(p.Active, changed(flags, "active", &active))
			in, err := contract.ProjectRequest{
				Name:   domain.ValueOr(p.Name, changed(flags, "name", &name)),
				Code:   domain.ValueOr(p.Code, changed(flags, "code", &code)),
				Active: &isActive,
			}.Input()
			if err != nil {
				return err
			}

			updated, err := a.UseCases().UpdateProject(ctx, p.ID, in).Unpack()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", updated.Name, updated.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&code, "code", "", "New project code")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the project is active")

	return cmd
}

func newProjectRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|code>",
		Aliases: []string{"rm"},
		Short:   "Delete a project that has no tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}
			if _, err := a.UseCases().DeleteProject(ctx, p.ID).Unpack(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s [%s]\n", p.Name, p.Code)
			return nil
		},
	}
}
