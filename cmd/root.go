package cmd

import (
	"github.com/joho/godotenv"
	"github.com/punkarchives/metafix/internal/fixcmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metafix",
		Short: "Metadata remediation tools for a live music archive",
		Long: `Metafix keeps a concert recording archive's metadata honest.

It parses free-text item titles for band, venue, and date, finds items whose
stored metadata is missing or malformed, and applies the suggested fixes
through the archive metadata API after review.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(fixcmd.NewAnalyzeCmd())
	cmd.AddCommand(fixcmd.NewApplyCmd())
	cmd.AddCommand(fixcmd.NewCorrectDatesCmd())
	cmd.AddCommand(fixcmd.NewAuditCmd())
	cmd.AddCommand(fixcmd.NewExportCmd())
	cmd.AddCommand(fixcmd.NewReportCmd())
	cmd.AddCommand(fixcmd.NewFindLinksCmd())
	cmd.AddCommand(fixcmd.NewCleanFlyersCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
