package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timelog/internal/domain"
)

// FormatTaskList renders tasks with their owning project.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks found.")
	}
	return RenderBox("Tasks", taskTable(tasks, true))
}

func taskTable(tasks []*domain.Task, withProject bool) string {
	headers := []string{"ID", "NAME", "STATUS"}
	if withProject {
		headers = []string{"ID", "NAME", "PROJECT", "STATUS"}
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		row := []string{fmt.Sprint(t.ID), Bold(t.Name)}
		if withProject {
			row = append(row, projectLabel(t.Project, t.ProjectID))
		}
		rows = append(rows, append(row, ActivePill(t.Active)))
	}
	return Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{0: true}}.Render()
}

// FormatTaskDetail renders one task.
func FormatTaskDetail(t *domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(t.Name))
	fmt.Fprintf(&b, "%s %d   %s\n", Dim("id"), t.ID, ActivePill(t.Active))
	fmt.Fprintf(&b, "%s %s", Dim("project"), projectLabel(t.Project, t.ProjectID))
	return RenderBox("Task", b.String())
}

func projectLabel(p *domain.Project, id int64) string {
	if p == nil {
		return Dim(fmt.Sprintf("#%d", id))
	}
	return StylePurple.Render(p.Code) + " " + p.Name
}
