package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

const descriptionWidth = 40

// FormatEntryList renders entries in the order given, with a footer total.
func FormatEntryList(entries []*domain.TimeEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No time entries found.")
	}

	var total domain.CentiHours
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		total += domain.ToCentiHours(e.Hours)
		rows = append(rows, []string{
			fmt.Sprint(e.ID),
			DateCell(e.Date, now),
			FormatHours(e.Hours),
			taskLabel(e),
			Truncate(e.Description, descriptionWidth),
		})
	}

	table := Table{
		Headers:    []string{"ID", "DATE", "HOURS", "TASK", "DESCRIPTION"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true, 2: true},
	}
	footer := fmt.Sprintf("%s %s", Dim(Count(len(entries), "entry", "entries")+","), Bold(total.String()+"h"))
	return RenderBox("Time Entries", table.Render()+"\n"+footer)
}

// FormatEntryDetail renders one entry.
func FormatEntryDetail(e *domain.TimeEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(e.Date.Format(domain.DateLayout)), StyleBlue.Render(FormatHours(e.Hours)))
	fmt.Fprintf(&b, "%s %d\n", Dim("id"), e.ID)
	fmt.Fprintf(&b, "%s %s\n\n", Dim("task"), taskLabel(e))
	b.WriteString(e.Description)
	return RenderBox("Time Entry", b.String())
}

func taskLabel(e *domain.TimeEntry) string {
	if e.Task == nil {
		return Dim(fmt.Sprintf("#%d", e.TaskID))
	}
	if e.Task.Project == nil {
		return e.Task.Name
	}
	return StylePurple.Render(e.Task.Project.Code) + " " + e.Task.Name
}
