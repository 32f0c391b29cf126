package fixcmd

import (
	"fmt"

	"github.com/punkarchives/metafix/internal/review"
)

func executeExport(issuesFile, output string) error {
	issues, err := review.Load(issuesFile)
	if err != nil {
		return err
	}

	if err := review.ExportParquet(output, issues); err != nil {
		return err
	}

	fmt.Printf("Exported %d entries to: %s\n", len(issues), output)
	return nil
}
