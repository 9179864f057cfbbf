package contract

import (
	"fmt"
	"strings"

	"github.com/janus-clew/clew/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxHistoryLimit  = 1000
)

// Config holds the runtime configuration for an invocation.
// This struct remains the "final, validated" config.
type Config struct {
	Repos      []string // Repository paths, order preserved from the command line
	HistoryDir string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Limit      int // Max history rows to display (0 = all)
	Width      int // Terminal width override (0 = auto-detect)

	TrackBackend   schema.DatabaseBackend
	TrackDBConnect string // Please use env var as this is plaintext

	Insights  bool // Request enrichment from the external insight provider
	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored output
	Progress  bool // Show a per-repository progress bar
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPaths []string

	HistoryDir     string `mapstructure:"history-dir"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Limit          int    `mapstructure:"limit"`
	Width          int    `mapstructure:"width"`
	TrackBackend   string `mapstructure:"track-backend"`
	TrackDBConnect string `mapstructure:"track-db-connect"`
	Insights       bool   `mapstructure:"insights"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	Progress       string `mapstructure:"progress"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Repos != nil {
		clone.Repos = make([]string, len(c.Repos))
		copy(clone.Repos, c.Repos)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Repos = input.RepoPaths
	cfg.OutputFile = input.OutputFile
	cfg.Insights = input.Insights

	// --- History directory ---
	cfg.HistoryDir = input.HistoryDir
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = DefaultHistoryDir()
	}

	// --- Output mode ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- Precision ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Limit ---
	if input.Limit < 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.Limit = input.Limit
	cfg.Width = input.Width

	// --- Tracking backend ---
	backend := schema.DatabaseBackend(strings.ToLower(input.TrackBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid track backend '%s'. must be sqlite, mysql, postgresql, none", input.TrackBackend)
	}
	cfg.TrackBackend = backend
	cfg.TrackDBConnect = input.TrackDBConnect
	if err := ValidateDatabaseConnectionString(cfg.TrackBackend, cfg.TrackDBConnect); err != nil {
		return err
	}

	// --- Presentation toggles ---
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	progress, err := ParseBoolString(input.Progress)
	if err != nil {
		return fmt.Errorf("invalid --progress value: %w", err)
	}
	cfg.Progress = progress

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("track-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("track-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "://") && !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must be a URL or contain 'host=' parameter")
		}
	}
	return nil
}
