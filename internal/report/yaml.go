package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/punkarchives/metafix/internal/apply"
)

// RunConfig captures the settings a batch ran with.
type RunConfig struct {
	IssuesFile string `yaml:"issuesfile"`
	Identifier string `yaml:"identifier,omitempty"`
	Delay      string `yaml:"delay"`
	Timestamp  string `yaml:"timestamp"`
}

// RunReport is the complete record of one apply run.
type RunReport struct {
	Config  RunConfig     `yaml:"config"`
	Summary apply.Summary `yaml:"summary"`
}

// SaveRunReport writes the apply summary to reports/apply-<timestamp>.yaml
// and returns the path written.
func SaveRunReport(config RunConfig, summary apply.Summary) (string, error) {
	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	config.Timestamp = timestamp

	data, err := yaml.Marshal(&RunReport{Config: config, Summary: summary})
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	filename := fmt.Sprintf("reports/apply-%s.yaml", timestamp)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	return absPath, nil
}
