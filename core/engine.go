package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/parser"
	"github.com/janus-clew/clew/internal/techdetect"
	"github.com/janus-clew/clew/schema"
)

// Engine coordinates a full analysis run: walking repositories, parsing
// structure, scoring, detecting technologies, and folding the batch into
// the growth history.
type Engine struct {
	git      contract.GitClient
	store    contract.HistoryStore
	detector *techdetect.Detector
	insights contract.InsightProvider
	version  string
	progress bool
}

// EngineOption customizes engine construction.
type EngineOption func(*Engine)

// WithInsightProvider attaches an external enrichment provider.
func WithInsightProvider(p contract.InsightProvider) EngineOption {
	return func(e *Engine) { e.insights = p }
}

// WithProgress enables a per-repository progress bar on stderr.
func WithProgress(enabled bool) EngineOption {
	return func(e *Engine) { e.progress = enabled }
}

// NewEngine creates an analysis engine.
func NewEngine(git contract.GitClient, store contract.HistoryStore, version string, opts ...EngineOption) *Engine {
	e := &Engine{
		git:      git,
		store:    store,
		detector: techdetect.NewDetector(),
		version:  version,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeRepo analyzes a single repository. Git metadata failures are
// tolerated (zero commits, zero first-commit time) so a checkout without
// history still yields a structural score. Files that fail to read or parse
// are soft failures: they contribute nothing to the counts, and each one is
// reported in the returned soft-error list. Only successfully parsed files
// count toward the file score, so a repository of nothing but malformed
// sources scores exactly zero.
func (e *Engine) AnalyzeRepo(ctx context.Context, repoPath string) (schema.ProjectAnalysis, []string, error) {
	files, err := CollectSourceFiles(repoPath)
	if err != nil {
		return schema.ProjectAnalysis{}, nil, err
	}

	var total schema.StructuralSummary
	var softErrors []string
	parsedFiles := 0
	for _, rel := range files {
		content, readErr := os.ReadFile(filepath.Join(repoPath, rel))
		if readErr != nil {
			softErrors = append(softErrors, fmt.Sprintf("failed to read %s: %v", rel, readErr))
			continue
		}
		sum, parseErr := parser.ParseFile(ctx, rel, content)
		if parseErr != nil {
			softErrors = append(softErrors, parseErr.Error())
			continue
		}
		total.Add(sum)
		parsedFiles++
	}

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		absPath = repoPath
	}

	analysis := schema.ProjectAnalysis{
		Name:            filepath.Base(absPath),
		Path:            absPath,
		ComplexityScore: ComputeComplexity(parsedFiles, total),
		Technologies:    e.detector.Detect(repoPath, files),
	}

	if commits, gitErr := e.git.CommitCount(ctx, repoPath); gitErr == nil {
		analysis.Commits = commits
	}
	if first, gitErr := e.git.FirstCommitTime(ctx, repoPath); gitErr == nil {
		analysis.FirstCommit = first
	}
	return analysis, softErrors, nil
}

// Run analyzes every repository in order and appends the resulting batch to
// the growth history. Per-repository failures are recorded in the batch's
// Errors list; the run fails outright only for an empty repository list or a
// history write failure. Even then the computed batch is returned so callers
// can still display it.
func (e *Engine) Run(ctx context.Context, repos []string, wantInsights bool) (*schema.AnalysisBatch, error) {
	if len(repos) == 0 {
		return nil, &contract.NoRepositoriesError{}
	}

	batch := &schema.AnalysisBatch{
		Timestamp:   time.Now().UTC(),
		ToolVersion: e.version,
	}

	var bar *progressbar.ProgressBar
	if e.progress {
		bar = progressbar.Default(int64(len(repos)), "analyzing")
	}

	var scoreSum float64
	for _, repoPath := range repos {
		analysis, softErrors, err := e.AnalyzeRepo(ctx, repoPath)
		if err != nil {
			batch.Errors = append(batch.Errors, err.Error())
		} else {
			batch.Errors = append(batch.Errors, softErrors...)
			batch.Projects = append(batch.Projects, analysis)
			scoreSum += analysis.ComplexityScore.Total
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	batch.Overall.TotalProjects = len(batch.Projects)
	if len(batch.Projects) > 0 {
		batch.Overall.AvgComplexity = scoreSum / float64(len(batch.Projects))
	}

	prev, err := e.store.Latest()
	if err != nil {
		batch.Errors = append(batch.Errors, fmt.Sprintf("growth rate unavailable: %v", err))
	} else if prev != nil && prev.Overall.AvgComplexity > 0 {
		batch.Overall.GrowthRatePercent = (batch.Overall.AvgComplexity - prev.Overall.AvgComplexity) /
			prev.Overall.AvgComplexity * 100
	}

	if wantInsights {
		if e.insights == nil {
			batch.Errors = append(batch.Errors, "insight enrichment requested but no provider is configured")
		} else if patterns, recommendations, insErr := e.insights.Enrich(ctx, batch); insErr != nil {
			batch.Errors = append(batch.Errors, fmt.Sprintf("insight enrichment failed: %v", insErr))
		} else {
			batch.Patterns = patterns
			batch.Recommendations = recommendations
		}
	}

	if err := e.store.Append(batch); err != nil {
		return batch, err
	}
	return batch, nil
}
