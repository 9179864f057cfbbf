package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janus-clew/clew/core"
)

// statusCmd summarizes the stored growth history.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a summary of the stored growth history",
	Long: `Display how many analyses are stored and the headline numbers of the
most recent one: timestamp, project count, average complexity and growth rate.

Examples:
  # Quick check between runs
  clew status

  # Machine-readable status
  clew status --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteStatus(rootCtx, cfg)
	},
}
