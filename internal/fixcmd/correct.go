package fixcmd

import (
	"fmt"

	"github.com/punkarchives/metafix/internal/review"
)

func executeCorrectDates(issuesFile string) error {
	issues, err := review.Load(issuesFile)
	if err != nil {
		return err
	}

	fixed := review.CorrectDates(issues)
	if fixed == 0 {
		fmt.Println("All date suggestions already match their titles")
		return nil
	}

	if err := review.Save(issuesFile, issues); err != nil {
		return err
	}

	fmt.Printf("Corrected %d date suggestions in %s\n", fixed, issuesFile)
	return nil
}
