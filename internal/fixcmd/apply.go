package fixcmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punkarchives/metafix/internal/apply"
	"github.com/punkarchives/metafix/internal/archive"
	"github.com/punkarchives/metafix/internal/models"
	"github.com/punkarchives/metafix/internal/report"
	"github.com/punkarchives/metafix/internal/review"
)

func executeApply(ctx context.Context, issuesFile, identifier string, delay time.Duration) error {
	creds, err := archive.CredentialsFromEnv()
	if err != nil {
		return err
	}
	client := archive.NewClient(creds)

	issues, err := review.Load(issuesFile)
	if err != nil {
		return err
	}

	if identifier != "" {
		issues = filterByIdentifier(issues, identifier)
		if len(issues) == 0 {
			return fmt.Errorf("identifier %q not found in %s", identifier, issuesFile)
		}
	}

	slog.Info("Applying fixes", "entries", len(issues), "delay", delay)

	applier := apply.New(client, client)
	applier.Delay = delay
	summary := applier.Run(ctx, issues)

	reportPath, err := report.SaveRunReport(report.RunConfig{
		IssuesFile: issuesFile,
		Identifier: identifier,
		Delay:      delay.String(),
	}, summary)
	if err != nil {
		return err
	}

	fmt.Printf("\nApplied fixes to %d of %d items (%d failed)\n",
		summary.Succeeded, summary.Total, summary.Failed)
	fmt.Printf("Run report saved to: %s\n", reportPath)

	if summary.Failed > 0 {
		return fmt.Errorf("%d items failed", summary.Failed)
	}
	return nil
}

func filterByIdentifier(issues []models.IssueRecord, identifier string) []models.IssueRecord {
	for _, entry := range issues {
		if entry.Identifier == identifier {
			return []models.IssueRecord{entry}
		}
	}
	return nil
}
