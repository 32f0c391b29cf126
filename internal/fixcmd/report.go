package fixcmd

import (
	"os"

	"github.com/punkarchives/metafix/internal/report"
	"github.com/punkarchives/metafix/internal/review"
)

func executeReport(issuesFile string, sampleLimit int) error {
	issues, err := review.Load(issuesFile)
	if err != nil {
		return err
	}

	review.SortByPriority(issues)
	report.PrintSummary(os.Stdout, -1, issues)
	if len(issues) > 0 {
		report.PrintSamples(os.Stdout, issues, sampleLimit)
	}
	return nil
}
