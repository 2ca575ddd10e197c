package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timelog/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with: timelog project add --name ... --code ...")
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			StylePurple.Render(p.Code),
			Bold(p.Name),
			ActivePill(p.Active),
		})
	}

	table := Table{
		Headers:    []string{"ID", "CODE", "NAME", "STATUS"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true},
	}
	return RenderBox("Projects", table.Render())
}

// FormatProjectDetail renders one project with its tasks.
func FormatProjectDetail(p *domain.Project, tasks []*domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), StylePurple.Render(p.Code))
	fmt.Fprintf(&b, "%s %d   %s\n", Dim("id"), p.ID, ActivePill(p.Active))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", Dim("created"), p.CreatedAt.Format("2006-01-02 15:04"))
	}

	b.WriteString("\n")
	b.WriteString(Header(fmt.Sprintf("Tasks (%d)", len(tasks))))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("none"))
	} else {
		b.WriteString(strings.TrimRight(taskTable(tasks, false), "\n"))
	}
	return RenderBox("Project", b.String())
}
