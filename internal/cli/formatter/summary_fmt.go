package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/report"
)

const dayBarWidth = 24

// FormatDailySummaries renders one row per day followed by per-status counts.
func FormatDailySummaries(days []domain.DailySummary) string {
	if len(days) == 0 {
		return Dim("No hours logged yet.")
	}

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		total := domain.ToCentiHours(d.TotalHours)
		rows = append(rows, []string{
			d.Date.Format(domain.DateLayout),
			FormatHours(d.TotalHours),
			RenderDayBar(total, dayBarWidth),
			StatusIndicator(d.Status),
		})
	}

	table := Table{
		Headers:    []string{"DATE", "TOTAL", "", "STATUS"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true},
	}
	return RenderBox("Daily Summary", table.Render()+"\n"+summaryFooter(days))
}

// FormatDaySummary renders a single day.
func FormatDaySummary(d domain.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(d.Date.Format("Monday, Jan 2 2006")), StatusIndicator(d.Status))
	b.WriteString(RenderDayBar(domain.ToCentiHours(d.TotalHours), dayBarWidth))

	remaining := domain.DailyTarget - domain.ToCentiHours(d.TotalHours)
	if remaining > 0 {
		fmt.Fprintf(&b, "\n%s", Dim(fmt.Sprintf("%sh left to reach the %sh target", remaining, domain.DailyTarget)))
	}
	return RenderBox("Day", b.String())
}

func summaryFooter(days []domain.DailySummary) string {
	total, counts := report.Totals(days)
	parts := []string{
		StatusStyle(domain.DaySufficient).Render(fmt.Sprintf("%d sufficient", counts[domain.DaySufficient])),
		StatusStyle(domain.DayInsufficient).Render(fmt.Sprintf("%d insufficient", counts[domain.DayInsufficient])),
		StatusStyle(domain.DayExcessive).Render(fmt.Sprintf("%d excessive", counts[domain.DayExcessive])),
	}
	return fmt.Sprintf("%s %s  %s", Dim(Count(len(days), "day", "days")+","), Bold(total.String()+"h"), strings.Join(parts, Dim(" · ")))
}
