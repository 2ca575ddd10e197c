package importer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ImportFile is the top-level structure of an import (and export) file.
// Tasks name their project by code; entries name their task by project code
// and task name.
type ImportFile struct {
	Projects []ProjectImport `json:"projects" yaml:"projects"`
	Tasks    []TaskImport    `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Entries  []EntryImport   `json:"entries,omitempty" yaml:"entries,omitempty"`
}

type ProjectImport struct {
	Code   string `json:"code" yaml:"code"`
	Name   string `json:"name" yaml:"name"`
	Active *bool  `json:"active,omitempty" yaml:"active,omitempty"`
}

type TaskImport struct {
	Project string `json:"project" yaml:"project"`
	Name    string `json:"name" yaml:"name"`
	Active  *bool  `json:"active,omitempty" yaml:"active,omitempty"`
}

type EntryImport struct {
	Project     string  `json:"project" yaml:"project"`
	Task        string  `json:"task" yaml:"task"`
	Date        string  `json:"date" yaml:"date"`
	Hours       float64 `json:"hours" yaml:"hours"`
	Description string  `json:"description" yaml:"description"`
}

// LoadImportFile reads path from fsys. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func LoadImportFile(fsys afero.Fs, path string) (*ImportFile, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	var f ImportFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}
