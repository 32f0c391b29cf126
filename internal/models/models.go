// Package models holds the record and review types shared across the toolkit.
package models

// Issue tags. These are the closed set of problems the detector can flag on
// an item.
const (
	IssueMissingBand   = "missing_band"
	IssueMissingVenue  = "missing_venue"
	IssueMissingDate   = "missing_date"
	IssueBadDateFormat = "bad_date_format"
)

// Record is one archived item's descriptive metadata as currently stored.
// The toolkit only reads records and proposes deltas; it never mutates one.
type Record struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Band        string `json:"band,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Date        string `json:"date,omitempty"`
	PublicDate  string `json:"publicdate,omitempty"`
	Description string `json:"description,omitempty"`
	Fb          string `json:"fb,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
}

// EffectiveDate returns the stored date, falling back to the public date.
func (r Record) EffectiveDate() string {
	if r.Date != "" {
		return r.Date
	}
	return r.PublicDate
}

// CurrentFields is the snapshot of the fields under review at detection time.
type CurrentFields struct {
	Band  string `json:"band"`
	Venue string `json:"venue"`
	Date  string `json:"date"`
}

// IssueRecord pairs a record with its detected problems and suggested fixes.
// Suggestions only carries fields for which an extraction pattern produced a
// value.
type IssueRecord struct {
	Identifier  string            `json:"identifier"`
	Title       string            `json:"title"`
	Current     CurrentFields     `json:"current"`
	Issues      []string          `json:"issues"`
	Suggestions map[string]string `json:"suggestions"`
}

// HasIssue reports whether the given tag was flagged.
func (ir IssueRecord) HasIssue(tag string) bool {
	for _, issue := range ir.Issues {
		if issue == tag {
			return true
		}
	}
	return false
}

// Mismatch records a disagreement between the date encoded in an item's
// identifier and the date written in its title. Informational only; neither
// side is trusted enough to auto-correct.
type Mismatch struct {
	Identifier         string `json:"identifier"`
	Title              string `json:"title"`
	IdentifierDate     string `json:"identifier_date"`
	TitleDate          string `json:"title_date"`
	CurrentArchiveDate string `json:"current_archive_date"`
}
