package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/alexanderramin/timelog/internal/importer"
)

var csvHeader = []string{"Date", "Project", "Task", "Hours", "Description"}

// ToCSV writes one row per entry. Projects and tasks without entries are
// not represented.
func ToCSV(w io.Writer, f *importer.ImportFile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range f.Entries {
		row := []string{
			e.Date,
			e.Project,
			e.Task,
			strconv.FormatFloat(e.Hours, 'f', 2, 64),
			e.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
