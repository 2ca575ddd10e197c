package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timelog/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var format, outPath, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export projects, tasks and entries as JSON, YAML or CSV",
		Long: "JSON and YAML output can be read back with 'timelog import'.\n" +
			"CSV holds entries only. --from/--to limit the exported entries.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := parseRange(from, to)
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(outPath)
			}

			f, err := export.Build(cmd.Context(), a.UseCases(), lo, hi)
			if err != nil {
				return err
			}

			if outPath == "" {
				return export.Write(cmd.OutOrStdout(), format, f)
			}

			file, err := a.fs().Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			if err := export.Write(file, format, f); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(f.Entries), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json, yaml or csv (default from --out, else json)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&from, "from", "", "First entry date, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Last entry date, inclusive")

	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".csv":
		return "csv"
	default:
		return "json"
	}
}
