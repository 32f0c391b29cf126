package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/punkarchives/metafix/internal/models"
)

type fakeFetcher struct {
	dates map[string]string
	err   error
}

func (f *fakeFetcher) StoredDate(_ context.Context, identifier string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.dates[identifier], nil
}

func TestTitleDate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
		found bool
	}{
		{
			name:  "on dotted date",
			title: "Thou @ The Che Cafe on 01.12.12",
			want:  "2012-01-12",
			found: true,
		},
		{
			name:  "on slash date",
			title: "Punch at Gilman on 6/3/11",
			want:  "2011-06-03",
			found: true,
		},
		{
			name:  "on slash date with 4-digit year",
			title: "Punch at Gilman on 6/3/2011",
			want:  "2011-06-03",
			found: true,
		},
		{
			name:  "bare canonical date",
			title: "Dress Code 2014-06-14 full set",
			want:  "2014-06-14",
			found: true,
		},
		{
			name:  "on dashed date",
			title: "Thou @ The Che Cafe on 01-12-12",
			want:  "2012-01-12",
			found: true,
		},
		{
			name:  "dotted date without the on keyword is ignored",
			title: "Thou 01.12.12",
			found: false,
		},
		{
			name:  "no date",
			title: "Untitled rehearsal tape",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := titleDate(tt.title)
			if ok != tt.found {
				t.Fatalf("titleDate(%q) found = %v, want %v", tt.title, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("titleDate(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestRunFlagsDisagreement(t *testing.T) {
	issues := []models.IssueRecord{
		{
			Identifier: "01.20.12_Thou",
			Title:      "Thou @ The Che Cafe on 01.12.12",
		},
		{
			Identifier: "01.12.12_Thou2",
			Title:      "Thou @ The Che Cafe on 01.12.12",
		},
		{
			Identifier: "no-date-prefix",
			Title:      "Thou @ The Che Cafe on 01.12.12",
		},
	}

	fetcher := &fakeFetcher{dates: map[string]string{"01.20.12_Thou": "2012-01-20"}}
	mismatches := Run(context.Background(), issues, fetcher)

	if len(mismatches) != 1 {
		t.Fatalf("len(mismatches) = %d, want 1", len(mismatches))
	}

	m := mismatches[0]
	if m.Identifier != "01.20.12_Thou" {
		t.Errorf("identifier = %q", m.Identifier)
	}
	if m.IdentifierDate != "2012-01-20" {
		t.Errorf("identifier date = %q, want 2012-01-20", m.IdentifierDate)
	}
	if m.TitleDate != "2012-01-12" {
		t.Errorf("title date = %q, want 2012-01-12", m.TitleDate)
	}
	if m.CurrentArchiveDate != "2012-01-20" {
		t.Errorf("current date = %q, want 2012-01-20", m.CurrentArchiveDate)
	}
}

func TestRunSurvivesFetchErrors(t *testing.T) {
	issues := []models.IssueRecord{
		{Identifier: "01.20.12_Thou", Title: "Thou @ The Che Cafe on 01.12.12"},
	}

	fetcher := &fakeFetcher{err: errors.New("network down")}
	mismatches := Run(context.Background(), issues, fetcher)

	if len(mismatches) != 1 {
		t.Fatalf("len(mismatches) = %d, want 1", len(mismatches))
	}
	if mismatches[0].CurrentArchiveDate != "Error fetching" {
		t.Errorf("current date = %q, want error marker", mismatches[0].CurrentArchiveDate)
	}
}

func TestRunFetchesNothingWhenDatesAgree(t *testing.T) {
	issues := []models.IssueRecord{
		{Identifier: "01.12.12_Thou", Title: "Thou @ The Che Cafe on 01.12.12"},
	}

	if got := Run(context.Background(), issues, nil); len(got) != 0 {
		t.Fatalf("expected no mismatches, got %d", len(got))
	}
}
