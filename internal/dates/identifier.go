package dates

import "regexp"

// Identifier prefixes carry the show date in one of three shapes. Dotted
// identifier dates are month-first (MM.DD.YY_Band).
var identifierPatterns = []textPattern{
	{re: regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{2})_`)},
	{re: regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2})_`)},
	{re: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`), single: true},
}

// FromIdentifier parses the date encoded in an item identifier such as
// "01.20.12_Thou" or "2012-01-20-thou". Returns false when the identifier
// carries no recognizable date prefix.
func FromIdentifier(identifier string) (string, bool) {
	for _, p := range identifierPatterns {
		m := p.re.FindStringSubmatch(identifier)
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
		return format(year, month, day), true
	}

	return "", false
}
