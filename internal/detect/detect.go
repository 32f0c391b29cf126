// Package detect finds missing or malformed metadata on archive records by
// comparing each record's stored fields against what its title says.
package detect

import (
	"log/slog"
	"strings"

	"github.com/punkarchives/metafix/internal/dates"
	"github.com/punkarchives/metafix/internal/models"
	"github.com/punkarchives/metafix/internal/titles"
)

// Detect inspects one record and returns its issue entry. The second return
// is false when the record is clean, in which case the record is dropped from
// the review set.
func Detect(record models.Record) (models.IssueRecord, bool) {
	issues := []string{}
	suggestions := map[string]string{}

	if record.Band == "" {
		if band, ok := titles.ExtractBand(record.Title); ok {
			issues = append(issues, models.IssueMissingBand)
			suggestions["band"] = band
		}
	}

	if record.Venue == "" {
		if venue, ok := titles.ExtractVenue(record.Title); ok {
			issues = append(issues, models.IssueMissingVenue)
			suggestions["venue"] = venue
		}
	}

	effective := record.EffectiveDate()
	if effective == "" {
		if date, ok := titles.ExtractDate(record.Title); ok {
			issues = append(issues, models.IssueMissingDate)
			suggestions["date"] = date
		}
	} else {
		canonical, _ := dates.Canonicalize(effective)
		titleDate, hasTitleDate := titles.ExtractDate(record.Title)

		// A title date with day precision beats a stored date that only
		// carried the year.
		switch {
		case hasTitleDate && strings.HasSuffix(canonical, "-01-01") &&
			!strings.HasSuffix(titleDate, "-01-01") && canonical != titleDate:
			issues = append(issues, models.IssueBadDateFormat)
			suggestions["date"] = titleDate
		case canonical != effective:
			issues = append(issues, models.IssueBadDateFormat)
			suggestions["date"] = canonical
		}
	}

	if len(issues) == 0 {
		return models.IssueRecord{}, false
	}

	return models.IssueRecord{
		Identifier: record.Identifier,
		Title:      record.Title,
		Current: models.CurrentFields{
			Band:  record.Band,
			Venue: record.Venue,
			Date:  effective,
		},
		Issues:      issues,
		Suggestions: suggestions,
	}, true
}

// DetectAll runs detection across a collection and keeps only the records
// with at least one flagged issue.
func DetectAll(records []models.Record) []models.IssueRecord {
	issues := make([]models.IssueRecord, 0, len(records))
	for _, record := range records {
		entry, flagged := Detect(record)
		if !flagged {
			continue
		}
		issues = append(issues, entry)
	}

	slog.Info("Analyzed records", "total", len(records), "with_issues", len(issues))
	return issues
}
