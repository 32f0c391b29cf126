// Package flyers removes duplicate flyer image files that carry an ISO
// timestamp suffix in their names. The upload pipeline occasionally produces
// both "2016-02-27-flyer_itemimage.jpg" and
// "2016-02-27T00:00:00Z-flyer_itemimage.jpg"; only the clean name should
// survive.
package flyers

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// FileLister returns the names of all files in an item.
type FileLister interface {
	ListFiles(ctx context.Context, identifier string) ([]string, error)
}

// FileDeleter removes one file from an item.
type FileDeleter interface {
	DeleteFile(ctx context.Context, identifier, filename string) error
}

// IsBadFlyerName reports whether a filename is a timestamped flyer
// duplicate.
func IsBadFlyerName(name string) bool {
	return strings.Contains(name, "-flyer_itemimage.") &&
		strings.Contains(name, "T00:00:00Z-flyer_itemimage.")
}

// Summary is the outcome of a cleanup run.
type Summary struct {
	Processed int
	Deleted   int
	Failed    int
}

// Cleaner walks a list of items and deletes their bad flyer files.
type Cleaner struct {
	Lister  FileLister
	Deleter FileDeleter

	// Delay between items, a courtesy to the remote service.
	Delay time.Duration
}

// NewCleaner returns a Cleaner with the default two second delay.
func NewCleaner(lister FileLister, deleter FileDeleter) *Cleaner {
	return &Cleaner{
		Lister:  lister,
		Deleter: deleter,
		Delay:   2 * time.Second,
	}
}

// Run cleans each item in turn. One item's failure never stops the rest.
func (c *Cleaner) Run(ctx context.Context, identifiers []string) Summary {
	var summary Summary

	for i, identifier := range identifiers {
		files, err := c.Lister.ListFiles(ctx, identifier)
		if err != nil {
			summary.Failed++
			slog.Error("Failed to list files", "identifier", identifier, "err", err)
		} else {
			summary.Processed++
			deleted, failed := c.cleanItem(ctx, identifier, files)
			summary.Deleted += deleted
			summary.Failed += failed
		}

		if c.Delay > 0 && i < len(identifiers)-1 {
			select {
			case <-ctx.Done():
				return summary
			case <-time.After(c.Delay):
			}
		}
	}

	slog.Info("Flyer cleanup finished",
		"processed", summary.Processed,
		"deleted", summary.Deleted,
		"failed", summary.Failed)
	return summary
}

func (c *Cleaner) cleanItem(ctx context.Context, identifier string, files []string) (deleted, failed int) {
	for _, name := range files {
		if !IsBadFlyerName(name) {
			continue
		}

		if err := c.Deleter.DeleteFile(ctx, identifier, name); err != nil {
			failed++
			slog.Error("Failed to delete flyer", "identifier", identifier, "file", name, "err", err)
			continue
		}

		deleted++
		slog.Info("Deleted duplicate flyer", "identifier", identifier, "file", name)
	}

	if deleted == 0 && failed == 0 {
		slog.Debug("No bad flyer files", "identifier", identifier)
	}
	return deleted, failed
}
