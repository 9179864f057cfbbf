package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janus-clew/clew/core"
	"github.com/janus-clew/clew/internal/contract"
)

// historyCmd groups all growth history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the stored growth history",
	Long: `Manage the append-only growth history of analysis runs.

Every 'clew analyze' invocation stores one timestamped JSON file under the
history directory (default ~/.clew/analyses). The history powers growth-rate
computation and longitudinal exports.

Subcommands:
  list    - Show stored analyses, newest first
  clear   - Remove all stored analyses
  delete  - Remove a single stored analysis by file name

Examples:
  # Show the last five runs
  clew history list --limit 5

  # Remove one bad run
  clew history delete 2026-08-01_09-00-00.json`,
}

// historyListCmd lists stored analyses.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored analyses, newest first",
	Long: `List every stored analysis batch with its timestamp, project count,
average complexity and growth rate.

Supports all output formats; parquet requires --output-file.

Examples:
  # Human-readable table
  clew history list

  # Full batches as JSON
  clew history list --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteHistoryList(rootCtx, cfg)
	},
}

// historyClearCmd clears the stored history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored analyses",
	Long: `Delete every stored analysis batch from the history directory.

WARNING: This action cannot be undone. Consider exporting data first:
  clew export --output-file backup.parquet
  clew history clear`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
	},
}

// historyDeleteCmd deletes a single stored analysis.
var historyDeleteCmd = &cobra.Command{
	Use:   "delete <file-name>",
	Short: "Remove a single stored analysis by file name",
	Long: `Delete one stored analysis batch.

The argument is the bare file name as shown by 'clew history list', for
example 2026-08-01_09-00-00.json. Paths are rejected; deletes are confined
to the history directory.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional arg is a file name, not a repo path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteHistoryDelete(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Failed to delete history entry", err)
		}
	},
}
