// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/janus-clew/clew/schema"
)

// GitClient defines the repository metadata operations the engine needs.
// This allows the core analysis logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// CommitCount returns the total number of commits reachable from HEAD.
	CommitCount(ctx context.Context, repoPath string) (int, error)

	// FirstCommitTime returns the author time of the oldest commit on HEAD.
	FirstCommitTime(ctx context.Context, repoPath string) (time.Time, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// HistoryStore defines the growth history contract the engine depends on.
// Implementations must be append-only and timestamp-ordered: Append never
// mutates an existing entry, and Latest returns the most recent entry or nil.
type HistoryStore interface {
	// Append persists one batch. The write must be atomic with respect to
	// concurrent readers: they see either the old history or the new entry.
	Append(batch *schema.AnalysisBatch) error

	// Latest returns the most recently appended batch, or nil when the
	// history is empty.
	Latest() (*schema.AnalysisBatch, error)
}

// InsightProvider enriches a computed batch with natural-language patterns and
// recommendations. It is an optional, external collaborator: the engine treats
// its absence (a nil provider) as "no enrichment", never as an error.
type InsightProvider interface {
	Enrich(ctx context.Context, batch *schema.AnalysisBatch) (patterns, recommendations []string, err error)
}

// TrackStore defines the interface for the optional run-tracking database.
type TrackStore interface {
	// RecordRun stores one batch as a tracked run with per-project scores.
	RecordRun(batch *schema.AnalysisBatch) (int64, error)

	// GetStatus returns status information about the tracking store.
	GetStatus() (schema.TrackStatus, error)

	// Close closes the underlying connection.
	Close() error
}
