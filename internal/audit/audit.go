// Package audit cross-checks the date encoded in an item's identifier
// against the date written in its title. Disagreement usually means a data
// entry error at upload time; neither source is trusted enough to pick a
// winner automatically, so mismatches are only surfaced for review.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/punkarchives/metafix/internal/dates"
	"github.com/punkarchives/metafix/internal/models"
)

// DefaultMismatchFile is where audit results are written.
const DefaultMismatchFile = "date_mismatches.json"

// DateFetcher supplies the currently stored date for an item, so a mismatch
// report can show all three values side by side.
type DateFetcher interface {
	StoredDate(ctx context.Context, identifier string) (string, error)
}

// Title date patterns for the audit pass. These are narrower than the
// general free-text scanner: dates here are expected after the word "on",
// or as a bare canonical date.
type titlePattern struct {
	re     *regexp.Regexp
	single bool
}

var titlePatterns = []titlePattern{
	{re: regexp.MustCompile(`on (\d{2})\.(\d{2})\.(\d{2})`)},
	{re: regexp.MustCompile(`on (\d{1,2})/(\d{1,2})/(\d{2,4})`)},
	{re: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), single: true},
	{re: regexp.MustCompile(`on (\d{2})-(\d{2})-(\d{2})`)},
}

// titleDate parses a show date from title text using the audit patterns.
func titleDate(title string) (string, bool) {
	for _, p := range titlePatterns {
		m := p.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}

		if p.single {
			return m[1], true
		}

		month, day, year := m[1], m[2], m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), true
	}

	return "", false
}

// Run compares identifier and title dates for every entry and collects the
// disagreements. Fetch errors for the stored date are noted in the mismatch
// rather than aborting the audit.
func Run(ctx context.Context, issues []models.IssueRecord, fetcher DateFetcher) []models.Mismatch {
	var mismatches []models.Mismatch

	for _, entry := range issues {
		idDate, ok := dates.FromIdentifier(entry.Identifier)
		if !ok {
			continue
		}
		td, ok := titleDate(entry.Title)
		if !ok || idDate == td {
			continue
		}

		current := "Not set"
		if fetcher != nil {
			stored, err := fetcher.StoredDate(ctx, entry.Identifier)
			switch {
			case err != nil:
				slog.Warn("Failed to fetch stored date", "identifier", entry.Identifier, "err", err)
				current = "Error fetching"
			case stored != "":
				current = stored
			}
		}

		slog.Info("Date mismatch",
			"identifier", entry.Identifier,
			"identifier_date", idDate,
			"title_date", td,
			"current", current)

		mismatches = append(mismatches, models.Mismatch{
			Identifier:         entry.Identifier,
			Title:              entry.Title,
			IdentifierDate:     idDate,
			TitleDate:          td,
			CurrentArchiveDate: current,
		})
	}

	slog.Info("Audit finished", "checked", len(issues), "mismatches", len(mismatches))
	return mismatches
}

// SaveMismatches writes the audit result artifact.
func SaveMismatches(path string, mismatches []models.Mismatch) error {
	data, err := json.MarshalIndent(mismatches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mismatches: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mismatch file: %w", err)
	}

	return nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
