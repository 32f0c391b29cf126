// Package apply drives approved metadata fixes through the archive update
// API: deterministic ordering, a pre-update diff against live values, a
// courtesy delay between requests, and per-item failure isolation.
package apply

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/punkarchives/metafix/internal/models"
	"github.com/punkarchives/metafix/internal/review"
)

// MetadataFetcher supplies an item's live metadata for the pre-update diff.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, identifier string) (map[string]string, error)
}

// MetadataUpdater applies a partial metadata update. Absent fields are left
// untouched.
type MetadataUpdater interface {
	ModifyMetadata(ctx context.Context, identifier string, updates map[string]string) error
}

// ItemResult records what happened to one item during a run.
type ItemResult struct {
	Identifier string            `yaml:"identifier"`
	Updated    map[string]string `yaml:"updated,omitempty"`
	Skipped    []string          `yaml:"skipped,omitempty"`
	Error      string            `yaml:"error,omitempty"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	Total     int          `yaml:"total"`
	Succeeded int          `yaml:"succeeded"`
	Failed    int          `yaml:"failed"`
	Results   []ItemResult `yaml:"results"`
}

// Applier sequences a batch of fixes. One request per item, sequential, in
// review priority order.
type Applier struct {
	Fetcher MetadataFetcher
	Updater MetadataUpdater

	// Delay between update requests. Any value >= 0 is fine; this is a
	// courtesy to the remote service, not a correctness requirement.
	Delay time.Duration

	// ProgressOut receives the progress bar. Defaults to stdout.
	ProgressOut io.Writer
}

// New returns an Applier with the default one second delay.
func New(fetcher MetadataFetcher, updater MetadataUpdater) *Applier {
	return &Applier{
		Fetcher:     fetcher,
		Updater:     updater,
		Delay:       time.Second,
		ProgressOut: os.Stdout,
	}
}

// Run applies every entry's suggestions. Items are processed in the
// deterministic review order; one item's failure never stops the rest.
func (a *Applier) Run(ctx context.Context, issues []models.IssueRecord) Summary {
	review.SortByPriority(issues)

	summary := Summary{Total: len(issues)}
	bar := a.newProgressBar(len(issues))

	for i, entry := range issues {
		result := a.applyOne(ctx, entry)
		summary.Results = append(summary.Results, result)

		if result.Error != "" {
			summary.Failed++
			slog.Error("Update failed", "identifier", entry.Identifier, "err", result.Error)
		} else {
			summary.Succeeded++
		}

		_ = bar.Add(1)

		// Rate limiting between requests, not after the last one.
		if a.Delay > 0 && i < len(issues)-1 {
			select {
			case <-ctx.Done():
				return summary
			case <-time.After(a.Delay):
			}
		}
	}

	slog.Info("Batch finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)
	return summary
}

// applyOne diffs one entry's suggestions against the live record and submits
// whatever actually changed.
func (a *Applier) applyOne(ctx context.Context, entry models.IssueRecord) ItemResult {
	result := ItemResult{Identifier: entry.Identifier}

	if len(entry.Suggestions) == 0 {
		return result
	}

	live, err := a.Fetcher.GetMetadata(ctx, entry.Identifier)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	filtered := make(map[string]string, len(entry.Suggestions))
	for field, value := range entry.Suggestions {
		if live[field] == value {
			result.Skipped = append(result.Skipped, field)
			slog.Debug("Skipping field, already correct", "identifier", entry.Identifier, "field", field)
			continue
		}
		filtered[field] = value
	}

	if len(filtered) == 0 {
		slog.Debug("No updates needed", "identifier", entry.Identifier)
		return result
	}

	if err := a.Updater.ModifyMetadata(ctx, entry.Identifier, filtered); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Updated = filtered
	slog.Info("Updated item", "identifier", entry.Identifier, "fields", len(filtered))
	return result
}

func (a *Applier) newProgressBar(total int) *progressbar.ProgressBar {
	out := a.ProgressOut
	if out == nil {
		out = os.Stdout
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Applying fixes..."),
	)
}
