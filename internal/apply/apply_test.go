package apply

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/punkarchives/metafix/internal/models"
)

type fakeArchive struct {
	live    map[string]map[string]string
	fetchEe map[string]error
	submitE map[string]error

	updates []update
}

type update struct {
	identifier string
	fields     map[string]string
}

func (f *fakeArchive) GetMetadata(_ context.Context, identifier string) (map[string]string, error) {
	if err := f.fetchEe[identifier]; err != nil {
		return nil, err
	}
	return f.live[identifier], nil
}

func (f *fakeArchive) ModifyMetadata(_ context.Context, identifier string, fields map[string]string) error {
	if err := f.submitE[identifier]; err != nil {
		return err
	}
	f.updates = append(f.updates, update{identifier: identifier, fields: fields})
	return nil
}

func newTestApplier(archive *fakeArchive) *Applier {
	a := New(archive, archive)
	a.Delay = 0
	a.ProgressOut = io.Discard
	return a
}

func issueEntry(identifier string, issues []string, suggestions map[string]string) models.IssueRecord {
	return models.IssueRecord{
		Identifier:  identifier,
		Title:       identifier,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func TestRunAppliesSuggestions(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{
			"01.12.12_Thou": {"date": "2012"},
		},
	}

	issues := []models.IssueRecord{
		issueEntry("01.12.12_Thou",
			[]string{models.IssueMissingBand, models.IssueBadDateFormat},
			map[string]string{"band": "Thou", "date": "2012-01-12"}),
	}

	summary := newTestApplier(archive).Run(context.Background(), issues)

	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	if len(archive.updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(archive.updates))
	}

	got := archive.updates[0]
	if got.fields["band"] != "Thou" || got.fields["date"] != "2012-01-12" {
		t.Errorf("updates = %v", got.fields)
	}
}

func TestRunSkipsFieldsAlreadyCorrect(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{
			"01.12.12_Thou": {"band": "Thou", "date": "2012"},
		},
	}

	issues := []models.IssueRecord{
		issueEntry("01.12.12_Thou",
			[]string{models.IssueMissingBand, models.IssueBadDateFormat},
			map[string]string{"band": "Thou", "date": "2012-01-12"}),
	}

	summary := newTestApplier(archive).Run(context.Background(), issues)

	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	got := archive.updates[0].fields
	if _, ok := got["band"]; ok {
		t.Error("band was resubmitted despite matching the live value")
	}
	if got["date"] != "2012-01-12" {
		t.Errorf("date = %q, want 2012-01-12", got["date"])
	}
	if len(summary.Results[0].Skipped) != 1 || summary.Results[0].Skipped[0] != "band" {
		t.Errorf("skipped = %v, want [band]", summary.Results[0].Skipped)
	}
}

func TestRunSubmitsNothingWhenAllFieldsMatch(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{
			"01.12.12_Thou": {"band": "Thou"},
		},
	}

	issues := []models.IssueRecord{
		issueEntry("01.12.12_Thou", []string{models.IssueMissingBand}, map[string]string{"band": "Thou"}),
	}

	summary := newTestApplier(archive).Run(context.Background(), issues)

	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want success", summary)
	}
	if len(archive.updates) != 0 {
		t.Errorf("len(updates) = %d, want 0", len(archive.updates))
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{
			"a_fails":  {},
			"b_broken": {},
			"c_works":  {},
		},
		fetchEe: map[string]error{"a_fails": errors.New("metadata fetch returned status 503")},
		submitE: map[string]error{"b_broken": errors.New("update rejected")},
	}

	issues := []models.IssueRecord{
		issueEntry("a_fails", []string{models.IssueMissingBand}, map[string]string{"band": "A"}),
		issueEntry("b_broken", []string{models.IssueMissingBand}, map[string]string{"band": "B"}),
		issueEntry("c_works", []string{models.IssueMissingBand}, map[string]string{"band": "C"}),
	}

	summary := newTestApplier(archive).Run(context.Background(), issues)

	if summary.Failed != 2 {
		t.Errorf("failed = %d, want 2", summary.Failed)
	}
	if summary.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", summary.Succeeded)
	}
	if len(archive.updates) != 1 || archive.updates[0].identifier != "c_works" {
		t.Errorf("updates = %v, want only c_works", archive.updates)
	}
}

func TestRunProcessesInPriorityOrder(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{
			"z_dateonly": {},
			"a_bandonly": {},
		},
	}

	issues := []models.IssueRecord{
		issueEntry("a_bandonly", []string{models.IssueMissingBand}, map[string]string{"band": "A"}),
		issueEntry("z_dateonly", []string{models.IssueBadDateFormat}, map[string]string{"date": "2012-01-12"}),
	}

	newTestApplier(archive).Run(context.Background(), issues)

	if len(archive.updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(archive.updates))
	}
	// Date-format-only fixes are tier 1 and go first despite the identifier.
	if archive.updates[0].identifier != "z_dateonly" {
		t.Errorf("first update = %q, want z_dateonly", archive.updates[0].identifier)
	}
}

func TestRunStopsAtCancellation(t *testing.T) {
	archive := &fakeArchive{
		live: map[string]map[string]string{"a": {}, "b": {}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestApplier(archive)
	a.Delay = time.Hour // force the ctx branch between items

	issues := []models.IssueRecord{
		issueEntry("a", []string{models.IssueMissingBand}, map[string]string{"band": "A"}),
		issueEntry("b", []string{models.IssueMissingBand}, map[string]string{"band": "B"}),
	}

	summary := a.Run(ctx, issues)
	if summary.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1 before cancellation", summary.Succeeded)
	}
}
