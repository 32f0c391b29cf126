package review

import (
	"log/slog"
	"regexp"

	"github.com/punkarchives/metafix/internal/models"
)

// Corrective-pass title patterns. All three are month-first, including the
// dotted form (the canonicalizer treats dotted dates as day-first; this
// narrower pass does not).
var correctorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})`),
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
}

// dateFromTitle re-derives a date directly from title text for the
// corrective pass.
func dateFromTitle(title string) (string, bool) {
	for _, re := range correctorPatterns {
		m := re.FindStringSubmatch(title)
		if m == nil {
			continue
		}

		if len(m) == 2 {
			// already canonical
			return m[1], true
		}

		month, day, year := m[1], m[2], m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return year + "-" + pad2(month) + "-" + pad2(day), true
	}

	return "", false
}

// CorrectDates re-extracts each entry's date from its title and overwrites a
// stored date suggestion that disagrees. Title text is treated as ground
// truth here: upstream detection may have anchored on a stale stored value.
// Returns the number of suggestions rewritten.
func CorrectDates(issues []models.IssueRecord) int {
	fixed := 0

	for i := range issues {
		suggested, ok := issues[i].Suggestions["date"]
		if !ok {
			continue
		}

		titleDate, found := dateFromTitle(issues[i].Title)
		if !found || titleDate == suggested {
			continue
		}

		slog.Info("Correcting date suggestion",
			"identifier", issues[i].Identifier,
			"was", suggested,
			"now", titleDate)
		issues[i].Suggestions["date"] = titleDate
		fixed++
	}

	return fixed
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
