package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/contract"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *App) *cobra.Command {
	var date, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total hours per day, classified against the 8h target",
		Long: "Without flags every day with logged hours is listed, newest first.\n" +
			"--date shows a single day, --from/--to limit the listing to a range.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uc := a.UseCases()
			out := cmd.OutOrStdout()

			if date != "" {
				if from != "" || to != "" {
					return fmt.Errorf("--date cannot be combined with --from/--to")
				}
				day, err := contract.ParseRequestDate(date)
				if err != nil {
					return err
				}
				d, err := uc.SummaryForDate(ctx, day).Unpack()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatDaySummary(d))
				return nil
			}

			var (
				days []domain.DailySummary
				err  error
			)
			if from != "" || to != "" {
				lo, hi, rerr := parseRange(from, to)
				if rerr != nil {
					return rerr
				}
				days, err = uc.DailySummaryBetween(ctx, lo, hi).Unpack()
			} else {
				days, err = uc.DailySummary(ctx).Unpack()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatDailySummaries(days))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Single day YYYY-MM-DD")
	cmd.Flags().StringVar(&from, "from", "", "First day of the range, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the range, inclusive")

	return cmd
}

// parseRange parses optional --from/--to values. An empty value stays zero,
// which leaves that end of the range open.
func parseRange(from, to string) (lo, hi time.Time, err error) {
	if from != "" {
		if lo, err = contract.ParseRequestDate(from); err != nil {
			return lo, hi, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if hi, err = contract.ParseRequestDate(to); err != nil {
			return lo, hi, fmt.Errorf("--to: %w", err)
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return lo, hi, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return lo, hi, nil
}
