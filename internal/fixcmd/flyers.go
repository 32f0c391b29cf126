package fixcmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punkarchives/metafix/internal/archive"
	"github.com/punkarchives/metafix/internal/flyers"
)

func executeCleanFlyers(ctx context.Context, identifier string, delay time.Duration) error {
	creds, err := archive.CredentialsFromEnv()
	if err != nil {
		return err
	}
	client := archive.NewClient(creds)

	var identifiers []string
	if identifier != "" {
		identifiers = []string{identifier}
	} else {
		slog.Info("Fetching collection items...")
		records, err := client.SearchItems(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch items: %w", err)
		}
		for _, record := range records {
			identifiers = append(identifiers, record.Identifier)
		}
	}

	cleaner := flyers.NewCleaner(client, client)
	cleaner.Delay = delay
	summary := cleaner.Run(ctx, identifiers)

	fmt.Printf("Processed %d items: deleted %d duplicate flyers, %d failures\n",
		summary.Processed, summary.Deleted, summary.Failed)
	return nil
}
