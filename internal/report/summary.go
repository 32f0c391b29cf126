// Package report renders human-facing views of the review set: console
// summaries, mismatch tables, and the YAML run report written after a batch.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/punkarchives/metafix/internal/models"
	"github.com/punkarchives/metafix/internal/review"
)

var issueNames = map[string]string{
	models.IssueMissingBand:   "Missing band",
	models.IssueMissingVenue:  "Missing venue",
	models.IssueMissingDate:   "Missing date",
	models.IssueBadDateFormat: "Bad date format",
}

var tierNames = map[int]string{
	1: "Date format fixes only",
	2: "Missing band + venue",
	3: "Missing band (+ date fixes)",
	4: "Missing venue (+ date fixes)",
	5: "Missing band only",
	6: "Missing venue only",
	7: "Other combinations",
}

// PrintSummary writes the issue breakdown table. Pass a negative totalItems
// when the scan total is unknown, such as when summarizing a saved file.
func PrintSummary(w io.Writer, totalItems int, issues []models.IssueRecord) {
	if totalItems >= 0 {
		fmt.Fprintf(w, "Total items analyzed: %d\n", totalItems)
	}
	fmt.Fprintf(w, "Items with metadata issues: %d\n\n", len(issues))

	counts := map[string]int{}
	for _, entry := range issues {
		for _, issue := range entry.Issues {
			counts[issue]++
		}
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Issue", "Items"})
	for _, tag := range []string{
		models.IssueBadDateFormat,
		models.IssueMissingBand,
		models.IssueMissingVenue,
		models.IssueMissingDate,
	} {
		if counts[tag] == 0 {
			continue
		}
		tw.AppendRow(table.Row{issueNames[tag], counts[tag]})
	}
	tw.Render()
}

// PrintSamples writes up to limit entries grouped by review tier, showing
// the current value next to each suggestion.
func PrintSamples(w io.Writer, issues []models.IssueRecord, limit int) {
	if limit <= 0 || limit > len(issues) {
		limit = len(issues)
	}

	currentTier := 0
	for i, entry := range issues[:limit] {
		if tier := review.Tier(entry); tier != currentTier {
			currentTier = tier
			fmt.Fprintf(w, "\n%s\n", tierNames[tier])
		}

		fmt.Fprintf(w, "\n%d. %s\n", i+1, entry.Identifier)
		fmt.Fprintf(w, "   Title: %s\n", entry.Title)
		for _, field := range []string{"band", "venue", "date"} {
			suggested, ok := entry.Suggestions[field]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "   %s: %q -> %q\n", field, currentValue(entry, field), suggested)
		}
	}

	if len(issues) > limit {
		fmt.Fprintf(w, "\n... and %d more\n", len(issues)-limit)
	}
}

// PrintMismatches writes the audit result table.
func PrintMismatches(w io.Writer, mismatches []models.Mismatch) {
	if len(mismatches) == 0 {
		fmt.Fprintln(w, "No date mismatches found")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Identifier", "Identifier date", "Title date", "Stored date"})
	for _, m := range mismatches {
		tw.AppendRow(table.Row{m.Identifier, m.IdentifierDate, m.TitleDate, m.CurrentArchiveDate})
	}
	tw.Render()
}

func currentValue(entry models.IssueRecord, field string) string {
	switch field {
	case "band":
		return entry.Current.Band
	case "venue":
		return entry.Current.Venue
	case "date":
		return entry.Current.Date
	}
	return ""
}
