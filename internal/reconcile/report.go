// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// RunReport summarizes one reconciliation run for later inspection.
type RunReport struct {
	Path     string    `yaml:"path"`
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`
	Result   Result    `yaml:"result"`
}

// WriteReport saves the report as YAML.
func WriteReport(path string, report RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
