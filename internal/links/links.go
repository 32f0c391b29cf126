// Package links finds Facebook event links buried in item descriptions and
// metadata fields. Items with event links often have show flyers worth
// uploading alongside the recording.
package links

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/punkarchives/metafix/internal/models"
)

// DefaultResultsFile is where scan results are written.
const DefaultResultsFile = "facebook_events_found.json"

// Event URL shapes seen in the collection, including mobile and shortened
// variants.
var eventPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/events/(\d+)`),
	regexp.MustCompile(`(?i)https?://(?:m\.)?facebook\.com/events/(\d+)`),
	regexp.MustCompile(`(?i)https?://fb\.me/e/(\w+)`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/events/(\d+)/permalink/(\d+)`),
	regexp.MustCompile(`(?i)https?://[^/]*facebook\.com/[^/]*/events/[^/\s<>"']+`),
}

// Scan returns every event link in the text, deduplicated in first-seen
// order.
func Scan(text string) []string {
	if text == "" {
		return nil
	}

	var found []string
	seen := make(map[string]struct{})

	for _, re := range eventPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			found = append(found, m)
		}
	}

	return found
}

// ItemLinks is one item's scan result.
type ItemLinks struct {
	Identifier string   `json:"identifier"`
	Title      string   `json:"title"`
	Links      []string `json:"facebook_links_found"`
	Fields     []string `json:"found_in_fields"`
	Summary    string   `json:"summary"`
}

// Results is the scan artifact: a little metadata about the run plus every
// item that had at least one link.
type Results struct {
	SearchMetadata struct {
		TotalItemsFound int    `json:"total_items_found"`
		Timestamp       string `json:"search_timestamp"`
		Description     string `json:"search_description"`
	} `json:"search_metadata"`
	Items []ItemLinks `json:"items_with_facebook_events"`
}

// FindEvents scans each record's description, fb, and facebook fields for
// event links. Records without links are dropped.
func FindEvents(records []models.Record) []ItemLinks {
	var items []ItemLinks

	for _, record := range records {
		var fields []string
		var found []string
		seen := make(map[string]struct{})

		collect := func(field, text string) {
			links := Scan(text)
			if len(links) == 0 {
				return
			}
			fields = append(fields, field)
			for _, link := range links {
				if _, dup := seen[link]; dup {
					continue
				}
				seen[link] = struct{}{}
				found = append(found, link)
			}
		}

		collect("description", record.Description)
		collect("fb", record.Fb)
		collect("facebook", record.Facebook)

		if len(found) == 0 {
			continue
		}

		slog.Info("Found event links", "identifier", record.Identifier, "count", len(found))
		items = append(items, ItemLinks{
			Identifier: record.Identifier,
			Title:      record.Title,
			Links:      found,
			Fields:     fields,
			Summary:    fmt.Sprintf("Found %d Facebook link(s) in: %s", len(found), strings.Join(fields, ", ")),
		})
	}

	return items
}

// SaveResults writes the scan artifact.
func SaveResults(path string, items []ItemLinks) error {
	var results Results
	results.SearchMetadata.TotalItemsFound = len(items)
	results.SearchMetadata.Timestamp = time.Now().Format(time.RFC3339)
	results.SearchMetadata.Description = "Archive items containing Facebook event links"
	results.Items = items

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal link results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write link results: %w", err)
	}

	return nil
}
