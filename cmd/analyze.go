package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janus-clew/clew/core"
)

// analyzeCmd runs the complexity analysis over one or more repositories.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <repo1> [repo2 ...]",
	Short: "Analyze repositories and append the results to the growth history",
	Long: `Analyze one or more local Git repositories.

For each repository, clew:
- Walks the source tree (honoring .gitignore and skipping dependency dirs)
- Parses Go, Python, JavaScript and TypeScript files for structure
- Computes a bounded 0-10 complexity score from files, functions, classes and nesting
- Detects technologies from languages and manifest files
- Reads commit count and first-commit time from Git

The batch is appended to the growth history; the growth rate compares the
batch average against the previous stored run. Invalid repositories are
reported per entry without failing the rest of the batch.

Examples:
  # Analyze two repositories
  clew analyze ~/code/api ~/code/frontend

  # Machine-readable output
  clew analyze ~/code/api --output json

  # Mirror the run into a local SQLite tracking database
  clew analyze ~/code/api --track-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteAnalyze(rootCtx, cfg, version)
	},
}
