// Package export flattens aggregated asset lists into spreadsheet and PDF
// downloads. The column layout lives in an embedded YAML mapping so the
// sheet and the PDF table stay in sync with one edit.
package export

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed columns.yaml
var columnsYAML []byte

// Column is one output column: which row field it reads, the header text,
// and its width (characters for xlsx, points for PDF).
type Column struct {
	Key    string  `yaml:"key"`
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// Plan is the full export layout.
type Plan struct {
	Version    int      `yaml:"version"`
	Sheet      string   `yaml:"sheet"`
	Title      string   `yaml:"title"`
	Columns    []Column `yaml:"columns"`
	PDFColumns []Column `yaml:"pdf_columns"`
}

// DefaultPlan returns the embedded column plan.
func DefaultPlan() (Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(columnsYAML, &plan); err != nil {
		return Plan{}, fmt.Errorf("parsing column plan: %w", err)
	}
	if len(plan.Columns) == 0 || len(plan.PDFColumns) == 0 {
		return Plan{}, fmt.Errorf("column plan is incomplete")
	}
	return plan, nil
}
