package fixcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/punkarchives/metafix/internal/archive"
	"github.com/punkarchives/metafix/internal/detect"
	"github.com/punkarchives/metafix/internal/report"
	"github.com/punkarchives/metafix/internal/review"
)

func executeAnalyze(ctx context.Context, output string, sampleLimit int) error {
	creds, err := archive.CredentialsFromEnv()
	if err != nil {
		return err
	}
	client := archive.NewClient(creds)

	slog.Info("Fetching collection items...")
	records, err := client.SearchItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch items: %w", err)
	}

	issues := detect.DetectAll(records)
	review.SortByPriority(issues)

	if err := review.Save(output, issues); err != nil {
		return err
	}

	report.PrintSummary(os.Stdout, len(records), issues)
	if len(issues) > 0 {
		report.PrintSamples(os.Stdout, issues, sampleLimit)
	}

	return nil
}
