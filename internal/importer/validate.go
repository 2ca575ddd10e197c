package importer

import (
	"fmt"

	"github.com/alexanderramin/timelog/internal/contract"
)

// ValidateImportFile checks shape and in-file consistency before anything
// is written. It returns every problem found. Rules that depend on stored
// data (code uniqueness against existing projects, the daily cap) are left
// to the rule sets during Apply.
func ValidateImportFile(f *ImportFile) []error {
	var errs []error

	codes := make(map[string]bool, len(f.Projects))
	for i, p := range f.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if _, err := (contract.ProjectRequest{Name: p.Name, Code: p.Code, Active: p.Active}).Input(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
		if p.Code != "" && codes[p.Code] {
			errs = append(errs, fmt.Errorf("%s: duplicate code %q", prefix, p.Code))
		}
		codes[p.Code] = true
	}

	tasks := make(map[taskKey]bool, len(f.Tasks))
	for i, t := range f.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Project == "" {
			errs = append(errs, fmt.Errorf("%s: project is required", prefix))
		}
		// ProjectID is resolved at apply time; 1 stands in for shape checks.
		if _, err := (contract.TaskRequest{Name: t.Name, ProjectID: 1, Active: t.Active}).Input(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
		k := taskKey{t.Project, t.Name}
		if t.Name != "" && tasks[k] {
			errs = append(errs, fmt.Errorf("%s: duplicate task %q in project %q", prefix, t.Name, t.Project))
		}
		tasks[k] = true
	}

	for i, e := range f.Entries {
		prefix := fmt.Sprintf("entries[%d]", i)
		if e.Project == "" || e.Task == "" {
			errs = append(errs, fmt.Errorf("%s: project and task are required", prefix))
		}
		req := contract.TimeEntryRequest{Date: e.Date, Hours: e.Hours, Description: e.Description, TaskID: 1}
		if _, err := req.Input(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
	}

	return errs
}

type taskKey struct {
	project string
	name    string
}
