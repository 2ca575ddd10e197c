package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/timelog/internal/importer"
)

// Formats lists the names accepted by Write.
var Formats = []string{"json", "yaml", "csv"}

// Write renders f in the named format.
func Write(w io.Writer, format string, f *importer.ImportFile) error {
	switch strings.ToLower(format) {
	case "json":
		return ToJSON(w, f)
	case "yaml", "yml":
		return ToYAML(w, f)
	case "csv":
		return ToCSV(w, f)
	default:
		return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
