package fixcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/punkarchives/metafix/internal/archive"
	"github.com/punkarchives/metafix/internal/audit"
	"github.com/punkarchives/metafix/internal/report"
	"github.com/punkarchives/metafix/internal/review"
)

func executeAudit(ctx context.Context, issuesFile, output string) error {
	creds, err := archive.CredentialsFromEnv()
	if err != nil {
		return err
	}
	client := archive.NewClient(creds)

	issues, err := review.Load(issuesFile)
	if err != nil {
		return err
	}

	mismatches := audit.Run(ctx, issues, client)
	report.PrintMismatches(os.Stdout, mismatches)

	if len(mismatches) == 0 {
		return nil
	}

	if err := audit.SaveMismatches(output, mismatches); err != nil {
		return err
	}
	fmt.Printf("\n%d mismatches saved to: %s\n", len(mismatches), output)
	return nil
}
