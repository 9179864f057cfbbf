// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
	"github.com/janus-clew/clew/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteBatch prints one analysis batch using the configured output format.
func (ow *OutWriter) WriteBatch(batch *schema.AnalysisBatch, cfg *contract.Config, duration time.Duration) error {
	return PrintBatchResults(batch, cfg, duration)
}

// WriteHistory prints stored history entries using the configured output format.
func (ow *OutWriter) WriteHistory(entries []history.Entry, cfg *contract.Config) error {
	return PrintHistoryResults(entries, cfg)
}

// WriteStatus prints the growth history summary using the configured output format.
func (ow *OutWriter) WriteStatus(status HistoryStatus, cfg *contract.Config) error {
	return PrintHistoryStatus(status, cfg)
}

// WriteTrackStatus prints run-tracking store status using the configured output format.
func (ow *OutWriter) WriteTrackStatus(status schema.TrackStatus, cfg *contract.Config) error {
	return PrintTrackStatus(status, cfg)
}

// GetMaxTablePathWidth calculates the maximum width for repository paths in
// table output based on terminal width.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns: name, commits, score and bucket columns
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
