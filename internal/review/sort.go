package review

import (
	"sort"

	"github.com/punkarchives/metafix/internal/models"
)

// Review priority tiers. Lower sorts first.
const (
	tierDateOnly = iota + 1
	tierBandVenue
	tierBandDate
	tierVenueDate
	tierBandOnly
	tierVenueOnly
	tierOther
)

// Tier buckets an entry for review ordering: plain date-format fixes first,
// then combined gaps, then single-field gaps, then everything else.
func Tier(entry models.IssueRecord) int {
	set := make(map[string]bool, len(entry.Issues))
	for _, issue := range entry.Issues {
		set[issue] = true
	}

	switch {
	case len(set) == 1 && set[models.IssueBadDateFormat]:
		return tierDateOnly
	case set[models.IssueMissingBand] && set[models.IssueMissingVenue]:
		return tierBandVenue
	case set[models.IssueMissingBand] && set[models.IssueBadDateFormat]:
		return tierBandDate
	case set[models.IssueMissingVenue] && set[models.IssueBadDateFormat]:
		return tierVenueDate
	case len(set) == 1 && set[models.IssueMissingBand]:
		return tierBandOnly
	case len(set) == 1 && set[models.IssueMissingVenue]:
		return tierVenueOnly
	default:
		return tierOther
	}
}

// SortByPriority imposes the deterministic review order: tier, then
// identifier ascending. Records are updated in exactly this order.
func SortByPriority(issues []models.IssueRecord) {
	sort.Slice(issues, func(i, j int) bool {
		ti, tj := Tier(issues[i]), Tier(issues[j])
		if ti != tj {
			return ti < tj
		}
		return issues[i].Identifier < issues[j].Identifier
	})
}
