// Package schema has configs, models and shared constants for all parts of clew.
package schema

import "time"

// StructuralSummary holds the structural counts extracted from one source file.
// Summaries are additive: summing them across files yields the repository-wide
// structure that feeds the complexity scorer.
type StructuralSummary struct {
	Functions  int // Named function and method definitions, including nested ones
	Classes    int // Class, type and interface definitions
	MaxNesting int // Deepest lexical block nesting found in the file
}

// Add folds another summary into this one. MaxNesting takes the maximum since
// nesting depth does not accumulate across files.
func (s *StructuralSummary) Add(other StructuralSummary) {
	s.Functions += other.Functions
	s.Classes += other.Classes
	if other.MaxNesting > s.MaxNesting {
		s.MaxNesting = other.MaxNesting
	}
}

// ComplexityScore is the bounded 0-10 multi-factor score for one repository.
// Total is always the exact sum of the four bucket sub-scores.
type ComplexityScore struct {
	Total         float64 `json:"total"`
	FileScore     float64 `json:"file_score"`
	FunctionScore float64 `json:"function_score"`
	ClassScore    float64 `json:"class_score"`
	NestingScore  float64 `json:"nesting_score"`
}

// ProjectAnalysis is the result of analyzing a single repository in one run.
// It is immutable after creation and owned by the AnalysisBatch containing it.
type ProjectAnalysis struct {
	Name            string          `json:"name"`
	Path            string          `json:"path"`
	Commits         int             `json:"commits"`
	FirstCommit     time.Time       `json:"first_commit"`
	ComplexityScore ComplexityScore `json:"complexity_score"`
	Technologies    []string        `json:"technologies"`
}

// OverallMetrics aggregates a batch of project analyses.
type OverallMetrics struct {
	AvgComplexity     float64 `json:"avg_complexity"`
	TotalProjects     int     `json:"total_projects"`
	GrowthRatePercent float64 `json:"growth_rate"`
}

// AnalysisBatch is the result of one analysis invocation over a list of
// repositories. Batches are append-only log entries: once persisted to the
// growth history they are never edited or deleted by the engine.
//
// Patterns and Recommendations stay nil unless an external insight provider
// enriched the batch; the engine itself never fabricates them.
type AnalysisBatch struct {
	Timestamp       time.Time         `json:"timestamp"`
	ToolVersion     string            `json:"tool_version"`
	Projects        []ProjectAnalysis `json:"projects"`
	Overall         OverallMetrics    `json:"overall"`
	Errors          []string          `json:"errors"`
	Patterns        []string          `json:"patterns"`
	Recommendations []string          `json:"recommendations"`
}

// HistoryFileFormat is the layout used for history file names. Lexicographic
// order of the resulting names matches chronological order.
const HistoryFileFormat = "2006-01-02_15-04-05"

// HistoryFileName returns the on-disk file name for the batch.
func (b *AnalysisBatch) HistoryFileName() string {
	return b.Timestamp.Format(HistoryFileFormat) + ".json"
}
