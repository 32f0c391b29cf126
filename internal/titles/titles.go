// Package titles recovers band names, venue names, and show dates from the
// free-text titles used across the collection. Titles follow a handful of
// house conventions ("Band @ Venue on Date", "Band live at Venue (City, ST)")
// and each extractor tries an ordered list of patterns, first match wins.
package titles

import (
	"regexp"
	"strings"

	"github.com/punkarchives/metafix/internal/dates"
)

// Band patterns: everything before "@", or before "on"/"in" followed by a
// digit when the title has no venue separator.
var bandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([^@]+?)\s*@`),
	regexp.MustCompile(`^(.+?)\s+on\s+\d`),
	regexp.MustCompile(`^(.+?)\s+in\s+\d`),
}

// Generic words that show up before "@" but are never band names.
var bandStoplist = map[string]struct{}{
	"live":        {},
	"show":        {},
	"concert":     {},
	"performance": {},
}

// Venue patterns, one delimiter family at a time ("@", "at", "live at").
// Within each family the parenthesis-terminated variant comes first so that
// "(City, ST)" detail is cut early; the fallback stops at "on", an opening
// bracket, a 4-digit year, or end of string.
var venuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)@\s+([^(]+?)\s*\(`),
	regexp.MustCompile(`(?i)@\s+(.+?)(?:\s+on\s|\s+\[|\s+\d{4}|$)`),
	regexp.MustCompile(`(?i)\bat\s+([^(]+?)\s*\(`),
	regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+on\s|\s+\[|\s+\d{4}|$)`),
	regexp.MustCompile(`(?i)live\s+at\s+([^(]+?)\s*\(`),
	regexp.MustCompile(`(?i)live\s+at\s+(.+?)(?:\s+on\s|\s+\[|\s+\d{4}|$)`),
}

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// ExtractBand attempts to recover the band name from a title. Candidates
// shorter than three characters or on the stoplist are rejected.
func ExtractBand(title string) (string, bool) {
	if title == "" {
		return "", false
	}

	for _, re := range bandPatterns {
		m := re.FindStringSubmatch(title)
		if m == nil || m[1] == "" {
			continue
		}

		band := strings.TrimSpace(m[1])
		if len(band) <= 2 {
			continue
		}
		if _, stopped := bandStoplist[strings.ToLower(band)]; stopped {
			continue
		}
		return band, true
	}

	return "", false
}

// ExtractVenue attempts to recover the venue name from a title. Parenthesized
// city/state detail is stripped from the candidate before the length check.
func ExtractVenue(title string) (string, bool) {
	if title == "" {
		return "", false
	}

	for _, re := range venuePatterns {
		m := re.FindStringSubmatch(title)
		if m == nil || m[1] == "" {
			continue
		}

		venue := strings.TrimSpace(parenthetical.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if len(venue) > 2 {
			return venue, true
		}
	}

	return "", false
}

// ExtractDate scans the title for an embedded show date.
func ExtractDate(title string) (string, bool) {
	return dates.ExtractFromText(title)
}
