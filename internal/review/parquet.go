package review

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/punkarchives/metafix/internal/models"
)

// issueRow is the flattened Parquet shape of an IssueRecord. The issues set
// is stored as a comma-joined string and the suggestion map as one optional
// column per field.
type issueRow struct {
	Identifier     string `parquet:"identifier"`
	Title          string `parquet:"title"`
	CurrentBand    string `parquet:"current_band,optional"`
	CurrentVenue   string `parquet:"current_venue,optional"`
	CurrentDate    string `parquet:"current_date,optional"`
	Issues         string `parquet:"issues"`
	SuggestedBand  string `parquet:"suggested_band,optional"`
	SuggestedVenue string `parquet:"suggested_venue,optional"`
	SuggestedDate  string `parquet:"suggested_date,optional"`
}

func toRow(entry models.IssueRecord) issueRow {
	return issueRow{
		Identifier:     entry.Identifier,
		Title:          entry.Title,
		CurrentBand:    entry.Current.Band,
		CurrentVenue:   entry.Current.Venue,
		CurrentDate:    entry.Current.Date,
		Issues:         strings.Join(entry.Issues, ","),
		SuggestedBand:  entry.Suggestions["band"],
		SuggestedVenue: entry.Suggestions["venue"],
		SuggestedDate:  entry.Suggestions["date"],
	}
}

func fromRow(row issueRow) models.IssueRecord {
	entry := models.IssueRecord{
		Identifier: row.Identifier,
		Title:      row.Title,
		Current: models.CurrentFields{
			Band:  row.CurrentBand,
			Venue: row.CurrentVenue,
			Date:  row.CurrentDate,
		},
		Suggestions: map[string]string{},
	}

	if row.Issues != "" {
		entry.Issues = strings.Split(row.Issues, ",")
	}
	if row.SuggestedBand != "" {
		entry.Suggestions["band"] = row.SuggestedBand
	}
	if row.SuggestedVenue != "" {
		entry.Suggestions["venue"] = row.SuggestedVenue
	}
	if row.SuggestedDate != "" {
		entry.Suggestions["date"] = row.SuggestedDate
	}

	return entry
}

// ExportParquet writes the review set as a Parquet file for downstream
// analysis tooling.
func ExportParquet(path string, issues []models.IssueRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[issueRow](file)

	rows := make([]issueRow, 0, len(issues))
	for _, entry := range issues {
		rows = append(rows, toRow(entry))
	}

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Info("Parquet export written", "path", path, "entries", len(rows))
	return nil
}

// loadParquet reads a review set previously written by ExportParquet.
func loadParquet(path string) ([]models.IssueRecord, error) {
	slog.Debug("Opening Parquet issues file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[issueRow](pf)
	defer reader.Close()

	var issues []models.IssueRecord
	rows := make([]issueRow, 128)

	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			if rows[i].Identifier == "" {
				return nil, fmt.Errorf("parquet issues row %d is missing an identifier", len(issues))
			}
			issues = append(issues, fromRow(rows[i]))
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Parquet issues file loaded", "entries", len(issues))
	return issues, nil
}
