package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janus-clew/clew/core"
	"github.com/janus-clew/clew/internal/contract"
)

// exportCmd exports the growth history to Parquet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the growth history to Parquet for BI tools and analytics",
	Long: `Export all stored analyses to Parquet format for use with analytics tools.

Each row is one project within one stored batch, carrying the per-bucket
complexity scores, commit metadata, technologies and batch-level metrics.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  clew export --output-file growth.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT project_name, score_total FROM read_parquet('growth.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}
