package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/timelog/internal/importer"
	"gopkg.in/yaml.v3"
)

func ToJSON(w io.Writer, f *importer.ImportFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func ToYAML(w io.Writer, f *importer.ImportFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}
