// Package dates normalizes the date strings found on archive items into the
// canonical YYYY-MM-DD shape used across the collection.
package dates

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Canonical shape all dates are rendered into.
const layout = "%s-%s-%s"

// canonRule pairs an anchored pattern with the transform that renders its
// submatches into canonical form. Rules are tried in order; the first match
// wins.
type canonRule struct {
	re     *regexp.Regexp
	render func(m []string) string
}

// Canonicalization rules. Slash dates are month-first, dotted dates are
// day-first. Two-digit years expand by prefixing "20".
var canonRules = []canonRule{
	{
		// MM/DD/YYYY
		re:     regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
		render: func(m []string) string { return format(m[3], m[1], m[2]) },
	},
	{
		// MM/DD/YY
		re:     regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`),
		render: func(m []string) string { return format("20"+m[3], m[1], m[2]) },
	},
	{
		// DD.MM.YYYY
		re:     regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`),
		render: func(m []string) string { return format(m[3], m[2], m[1]) },
	},
	{
		// DD.MM.YY
		re:     regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2})$`),
		render: func(m []string) string { return format("20"+m[3], m[2], m[1]) },
	},
	{
		// ISO timestamp, truncate to the date prefix
		re:     regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T`),
		render: func(m []string) string { return m[1] },
	},
	{
		// already canonical
		re:     regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		render: func(m []string) string { return m[0] },
	},
	{
		// bare year, pinned to January 1st
		re:     regexp.MustCompile(`^\d{4}$`),
		render: func(m []string) string { return m[0] + "-01-01" },
	},
}

// Canonicalize renders a date-like string into YYYY-MM-DD form. The returned
// bool reports whether the input shape was recognized; unrecognized input is
// passed through unchanged so callers can decide what to do with it.
func Canonicalize(raw string) (string, bool) {
	if raw == "" {
		return raw, false
	}

	for _, rule := range canonRules {
		if m := rule.re.FindStringSubmatch(raw); m != nil {
			return rule.render(m), true
		}
	}

	slog.Warn("Unrecognized date format, returning as-is", "value", raw)
	return raw, false
}

// textPattern is one free-text date pattern. Group order within the pattern is
// month, day, year unless single is set, in which case the sole group is a
// complete canonical date.
type textPattern struct {
	re     *regexp.Regexp
	single bool
}

// Free-text scan patterns, most specific first. Unlike the canonicalization
// rules above, dotted dates here are month-first.
var textPatterns = []textPattern{
	{re: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), single: true},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)},
	{re: regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2})`)},
	{re: regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2})`)},
	{re: regexp.MustCompile(`(\d{4})`), single: true},
}

// ExtractFromText scans free text for the first recognizable date and returns
// it canonicalized. Earlier patterns win when the text contains more than one
// candidate substring.
func ExtractFromText(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, p := range textPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		if p.single {
			if strings.Contains(m[1], "-") {
				if !plausible(m[1][5:7], m[1][8:10]) {
					continue
				}
				return m[1], true
			}
			// bare year
			return m[1] + "-01-01", true
		}

		month, day, year := m[1], m[2], m[3]
		if !plausible(month, day) {
			continue
		}
		if len(year) == 2 {
			year = "20" + year
		}
		return format(year, month, day), true
	}

	return "", false
}

// plausible checks digit ranges only. This is a text transform, not a
// calendar validator.
func plausible(month, day string) bool {
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return mo >= 1 && mo <= 12 && d >= 1 && d <= 31
}

func format(year, month, day string) string {
	return fmt.Sprintf(layout, year, pad2(month), pad2(day))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
