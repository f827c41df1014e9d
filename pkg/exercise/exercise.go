// Package exercise bundles a reference document with the script that grades
// submissions against it.
package exercise

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/markcheck/pkg/script"
	"gopkg.in/yaml.v3"
)

// Exercise is a named, self-contained grading task.
//
//	title: Personal page
//	solution: |
//	  <!DOCTYPE html>
//	  <html><body class="main"></body></html>
//	checks:
//	  - - check_body
//	    - has_equal_attr
type Exercise struct {
	ID       string        `yaml:"id,omitempty" json:"id"`
	Title    string        `yaml:"title,omitempty" json:"title,omitempty"`
	Solution string        `yaml:"solution" json:"-"`
	Script   script.Script `yaml:"checks" json:"-"`
}

// Parse decodes an exercise document. When the document has no id, id is used.
func Parse(id string, data []byte) (*Exercise, error) {
	var ex Exercise
	if err := yaml.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("exercise %s: %w", id, err)
	}
	if ex.ID == "" {
		ex.ID = id
	}
	if ex.ID == "" {
		return nil, fmt.Errorf("exercise missing id")
	}
	if strings.TrimSpace(ex.Solution) == "" {
		return nil, fmt.Errorf("exercise %s: missing solution", ex.ID)
	}
	return &ex, nil
}

// Load reads an exercise file. The file name without extension is the
// default id.
func Load(path string) (*Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exercise: %w", err)
	}
	return Parse(IDFromPath(path), data)
}

// IDFromPath derives an exercise id from a file name.
func IDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
