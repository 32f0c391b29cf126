// Package review manages the working set of flagged records: the issues file
// the analyzer writes, the deterministic review ordering, and the second-pass
// date correction.
package review

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/punkarchives/metafix/internal/models"
)

// DefaultIssuesFile is the artifact every downstream command consumes.
const DefaultIssuesFile = "metadata_issues.json"

// Load reads a review set from disk. The format is picked by extension:
// .json (the native artifact) or .parquet (the export format).
func Load(path string) ([]models.IssueRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return loadParquet(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported issues file format: %s (supported: .json, .parquet)", ext)
	}
}

func loadJSON(path string) ([]models.IssueRecord, error) {
	slog.Debug("Opening issues file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open issues file: %w", err)
	}

	var issues []models.IssueRecord
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("failed to parse issues file: %w", err)
	}

	// The issues file is the sole input contract for the batch commands;
	// an entry without an identifier means the file is unusable.
	for i, entry := range issues {
		if entry.Identifier == "" {
			return nil, fmt.Errorf("issues file entry %d is missing an identifier", i)
		}
	}

	slog.Debug("Issues file loaded", "path", path, "entries", len(issues))
	return issues, nil
}

// Save writes the review set as pretty-printed JSON, the shape the original
// tooling and the apply command both expect.
func Save(path string, issues []models.IssueRecord) error {
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal issues: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write issues file: %w", err)
	}

	slog.Info("Issues file written", "path", path, "entries", len(issues))
	return nil
}
