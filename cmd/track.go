package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/janus-clew/clew/core"
	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
	"github.com/janus-clew/clew/schema"
)

// trackCmd groups run-tracking database operations.
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage the run-tracking database",
	Long: `Manage the optional SQL database that mirrors analysis runs.

When a tracking backend is configured, every 'clew analyze' run stores:
- Run metadata (timestamp, tool version, project count, growth rate)
- Per-project complexity scores and technologies

This enables longitudinal queries across machines and teams.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show tracking statistics and connection health
  migrate - Run database schema migrations

Examples:
  # Check tracking status against a local SQLite database
  clew track status --track-backend sqlite`,
}

// trackStatusCmd shows tracking store status.
var trackStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-tracking statistics and connection details",
	Long: `Show detailed information about the run-tracking store.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Database table sizes

Examples:
  # Check tracking status
  clew track status --track-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrackStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to get tracking status", err)
		}
	},
}

// trackMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT open the tracking store or create tables, allowing migrations
// to run on a fresh database.
func trackMigrateSetup(_ *cobra.Command, _ []string) error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".clew")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	backendStr := viper.GetString("track-backend")
	connStr := viper.GetString("track-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetTrackDBFilePath()
	}

	cfg.TrackBackend = backend
	cfg.TrackDBConnect = connStr
	return nil
}

// trackMigrateCmd runs database migrations for the tracking store.
var trackMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  clew track migrate --track-backend sqlite

  # Rollback to initial state
  clew track migrate --track-backend sqlite --target-version 0`,
	PreRunE: trackMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateTracking(cfg.TrackBackend, cfg.TrackDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
