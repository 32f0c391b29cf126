// Package fixcmd holds the cobra commands for the metadata remediation
// workflow: analyze, correct-dates, audit, apply, and the supporting
// utilities around them.
package fixcmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/punkarchives/metafix/internal/audit"
	"github.com/punkarchives/metafix/internal/links"
	"github.com/punkarchives/metafix/internal/review"
)

// NewAnalyzeCmd creates the analyze command that scans the collection for
// metadata issues.
func NewAnalyzeCmd() *cobra.Command {
	var output string
	var sampleLimit int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan the collection for metadata issues",
		Long: `Fetch every item uploaded by the configured account, parse each
title for band, venue, and date, and record any items whose stored metadata
is missing or malformed.

The result is a prioritized issues file that the apply command consumes.`,
		Example: `  # Scan the collection and write metadata_issues.json
  metafix analyze

  # Write the issues file somewhere else
  metafix analyze --output /tmp/issues.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeAnalyze(cmd.Context(), output, sampleLimit)
		},
	}

	cmd.Flags().StringVar(&output, "output", review.DefaultIssuesFile, "Path to write the issues file")
	cmd.Flags().IntVar(&sampleLimit, "samples", 20, "Number of sample issues to print (-1 for all)")

	return cmd
}

// NewApplyCmd creates the apply command that pushes approved fixes to the
// archive.
func NewApplyCmd() *cobra.Command {
	var issuesFile string
	var identifier string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply suggested metadata fixes to the archive",
		Long: `Load a reviewed issues file and submit each item's suggested fixes
through the archive metadata API.

Items are processed in priority order. Fields that already hold the suggested
value are skipped, and one item's failure never stops the batch. A YAML run
report is written to reports/ when the batch finishes.`,
		Example: `  # Apply every fix in metadata_issues.json
  metafix apply

  # Try the workflow on a single item first
  metafix apply --identifier 01.12.12_Thou

  # Slow down for a large batch
  metafix apply --delay 3s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(issuesFile); os.IsNotExist(err) {
				return fmt.Errorf("issues file not found: %s\n\nRun 'metafix analyze' first", issuesFile)
			}
			return executeApply(cmd.Context(), issuesFile, identifier, delay)
		},
	}

	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file (.json or .parquet)")
	cmd.Flags().StringVar(&identifier, "identifier", "", "Apply fixes to this single item only")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between items")

	return cmd
}

// NewCorrectDatesCmd creates the correct-dates command that re-derives date
// suggestions from titles.
func NewCorrectDatesCmd() *cobra.Command {
	var issuesFile string

	cmd := &cobra.Command{
		Use:   "correct-dates",
		Short: "Re-derive date suggestions from item titles",
		Long: `Walk the issues file and, for every entry whose title contains a
recognizable date, replace the suggested date with the one parsed from the
title. The file is rewritten in place.

Run this after analyze when earlier suggestions look wrong.`,
		Example: `  metafix correct-dates
  metafix correct-dates --issues /tmp/issues.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCorrectDates(issuesFile)
		},
	}

	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file")

	return cmd
}

// NewAuditCmd creates the audit command that cross-checks dates between
// identifiers, titles, and stored metadata.
func NewAuditCmd() *cobra.Command {
	var issuesFile string
	var output string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Cross-check item dates across identifier, title, and archive",
		Long: `For every entry in the issues file whose identifier encodes a date,
compare that date against the one in the title and the one currently stored
on the archive. Disagreements are written to a mismatch file for manual
review; nothing is modified.`,
		Example: `  metafix audit
  metafix audit --output /tmp/mismatches.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeAudit(cmd.Context(), issuesFile, output)
		},
	}

	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file")
	cmd.Flags().StringVar(&output, "output", audit.DefaultMismatchFile, "Path to write the mismatch file")

	return cmd
}

// NewExportCmd creates the export command that converts the issues file to
// Parquet.
func NewExportCmd() *cobra.Command {
	var issuesFile string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the issues file to Parquet",
		Long: `Convert a JSON issues file into a Parquet file for analysis in
columnar tooling. The apply command reads either format.`,
		Example: `  metafix export
  metafix export --output issues.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExport(issuesFile, output)
		},
	}

	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file")
	cmd.Flags().StringVar(&output, "output", "metadata_issues.parquet", "Path to write the Parquet file")

	return cmd
}

// NewReportCmd creates the report command that summarizes an issues file.
func NewReportCmd() *cobra.Command {
	var issuesFile string
	var sampleLimit int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize an existing issues file",
		Example: `  metafix report
  metafix report --samples 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(issuesFile, sampleLimit)
		},
	}

	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file")
	cmd.Flags().IntVar(&sampleLimit, "samples", 20, "Number of sample issues to print (-1 for all)")

	return cmd
}

// NewFindLinksCmd creates the find-links command that scans items for
// Facebook event links.
func NewFindLinksCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "find-links",
		Short: "Find Facebook event links in item descriptions",
		Long: `Scan every item's description for Facebook event URLs. Items that
reference an event page often have a show flyer worth uploading, so the
results are saved for follow-up.`,
		Example: `  metafix find-links
  metafix find-links --output /tmp/events.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeFindLinks(cmd.Context(), output)
		},
	}

	cmd.Flags().StringVar(&output, "output", links.DefaultResultsFile, "Path to write the results file")

	return cmd
}

// NewCleanFlyersCmd creates the clean-flyers command that deletes duplicate
// flyer files.
func NewCleanFlyersCmd() *cobra.Command {
	var identifier string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "clean-flyers",
		Short: "Delete timestamped duplicate flyer files",
		Long: `Walk the collection and delete flyer images whose filenames carry a
stray ISO timestamp, such as "2016-02-27T00:00:00Z-flyer_itemimage.jpg".
These are duplicates of the correctly named flyer left behind by an old
upload pipeline.`,
		Example: `  # Clean the whole collection
  metafix clean-flyers

  # Clean a single item
  metafix clean-flyers --identifier 02.27.16_GAG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCleanFlyers(cmd.Context(), identifier, delay)
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "Clean this single item only")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "Pause between items")

	return cmd
}
