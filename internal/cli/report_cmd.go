package cli

import (
	"fmt"

	"github.com/alexanderramin/timelog/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Interactive chart of daily totals",
		Long: "Shows a bar per day colored by status. Outside a terminal the current\n" +
			"week is printed as a table instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m := newReportModel(ctx, a.UseCases(), a.now())

			if !a.interactive() {
				from, to := m.dateRange()
				days, err := a.UseCases().DailySummaryBetween(ctx, from, to).Unpack()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDailySummaries(days))
				return nil
			}

			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
