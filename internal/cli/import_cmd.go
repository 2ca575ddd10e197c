package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timelog/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import projects, tasks and entries from a JSON or YAML file",
		Long: "Projects are matched by code and tasks by name within their project;\n" +
			"existing ones are reused. Entries go through the same rules as\n" +
			"'entry log', and the whole file is rolled back if any row is rejected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.LoadImportFile(a.fs(), args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportFile(f); len(errs) > 0 {
				return fmt.Errorf("invalid import file:\n%w", errors.Join(errs...))
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%s is valid: %d projects, %d tasks, %d entries\n",
					args[0], len(f.Projects), len(f.Tasks), len(f.Entries))
				return nil
			}

			sum, err := importer.Apply(cmd.Context(), a.Store, a.logger(), f, a.Observers...)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %s\n", args[0])
			fmt.Fprintf(out, "  projects  %d created, %d reused\n", sum.ProjectsCreated, sum.ProjectsReused)
			fmt.Fprintf(out, "  tasks     %d created, %d reused\n", sum.TasksCreated, sum.TasksReused)
			fmt.Fprintf(out, "  entries   %d created\n", sum.EntriesCreated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing anything")

	return cmd
}
