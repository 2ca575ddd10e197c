// Package export writes stored projects, tasks and time entries out in the
// import file format (JSON or YAML) or as a flat CSV of entries.
package export

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/importer"
	"github.com/alexanderramin/timelog/internal/repository"
)

// Build collects every project and task plus the entries dated within
// [from, to]. A zero bound leaves that end open. Entries come out oldest
// first so that re-importing the file replays them in date order.
func Build(ctx context.Context, uc *app.UseCases, from, to time.Time) (*importer.ImportFile, error) {
	projects, err := uc.ListProjects(ctx).Unpack()
	if err != nil {
		return nil, err
	}
	tasks, err := uc.ListTasks(ctx, false).Unpack()
	if err != nil {
		return nil, err
	}

	var filter repository.EntryFilter
	if !from.IsZero() {
		lo := domain.NormalizeDate(from)
		filter.From = &lo
	}
	if !to.IsZero() {
		hi := domain.NormalizeDate(to)
		filter.To = &hi
	}
	entries, err := uc.ListEntries(ctx, filter).Unpack()
	if err != nil {
		return nil, err
	}

	out := &importer.ImportFile{Projects: []importer.ProjectImport{}}
	codes := make(map[int64]string, len(projects))
	for _, p := range projects {
		codes[p.ID] = p.Code
		out.Projects = append(out.Projects, importer.ProjectImport{
			Code:   p.Code,
			Name:   p.Name,
			Active: activeFlag(p.Active),
		})
	}

	byID := make(map[int64]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		code, ok := codes[t.ProjectID]
		if !ok {
			return nil, fmt.Errorf("task %d references unknown project %d", t.ID, t.ProjectID)
		}
		out.Tasks = append(out.Tasks, importer.TaskImport{
			Project: code,
			Name:    t.Name,
			Active:  activeFlag(t.Active),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
	for _, e := range entries {
		t, ok := byID[e.TaskID]
		if !ok {
			return nil, fmt.Errorf("entry %d references unknown task %d", e.ID, e.TaskID)
		}
		out.Entries = append(out.Entries, importer.EntryImport{
			Project:     codes[t.ProjectID],
			Task:        t.Name,
			Date:        e.Date.Format(domain.DateLayout),
			Hours:       e.Hours,
			Description: e.Description,
		})
	}
	return out, nil
}

// activeFlag omits the default so exported files stay terse.
func activeFlag(active bool) *bool {
	if active {
		return nil
	}
	f := false
	return &f
}
