package fixcmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/punkarchives/metafix/internal/archive"
	"github.com/punkarchives/metafix/internal/links"
)

func executeFindLinks(ctx context.Context, output string) error {
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

	items := links.FindEvents(records)
	if err := links.SaveResults(output, items); err != nil {
		return err
	}

	fmt.Printf("Found event links in %d of %d items\n", len(items), len(records))
	fmt.Printf("Results saved to: %s\n", output)
	return nil
}
