package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/schema"
)

type fakeGit struct {
	commits int
	first   time.Time
	err     error
}

func (g *fakeGit) Run(context.Context, string, ...string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (g *fakeGit) CommitCount(context.Context, string) (int, error) {
	return g.commits, g.err
}

func (g *fakeGit) FirstCommitTime(context.Context, string) (time.Time, error) {
	return g.first, g.err
}

func (g *fakeGit) GetRepoRoot(_ context.Context, path string) (string, error) {
	return path, g.err
}

type memStore struct {
	batches   []*schema.AnalysisBatch
	appendErr error
}

func (s *memStore) Append(batch *schema.AnalysisBatch) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.batches = append(s.batches, batch)
	return nil
}

func (s *memStore) Latest() (*schema.AnalysisBatch, error) {
	if len(s.batches) == 0 {
		return nil, nil
	}
	return s.batches[len(s.batches)-1], nil
}

// makeRepo lays out a fake repository with a .git marker directory.
func makeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

const sampleGoFile = `package x

func Hello() int {
	if true {
		return 1
	}
	return 0
}
`

func TestRunEmptyRepoList(t *testing.T) {
	store := &memStore{}
	engine := NewEngine(&fakeGit{}, store, "test")

	batch, err := engine.Run(context.Background(), nil, false)
	assert.Nil(t, batch)

	var noRepos *contract.NoRepositoriesError
	require.ErrorAs(t, err, &noRepos)
	assert.Empty(t, store.batches)
}

func TestRunMixedValidAndInvalid(t *testing.T) {
	first := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	git := &fakeGit{commits: 42, first: first}
	store := &memStore{}
	engine := NewEngine(git, store, "1.2.3")

	repoA := makeRepo(t, map[string]string{"a.go": sampleGoFile})
	repoB := makeRepo(t, map[string]string{"b.go": sampleGoFile, "c.go": sampleGoFile})
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	batch, err := engine.Run(context.Background(), []string{repoA, missing, repoB}, false)
	require.NoError(t, err)
	require.NotNil(t, batch)

	// Input order is preserved for the successful entries.
	require.Len(t, batch.Projects, 2)
	assert.Equal(t, filepath.Base(repoA), batch.Projects[0].Name)
	assert.Equal(t, filepath.Base(repoB), batch.Projects[1].Name)
	assert.Equal(t, 42, batch.Projects[0].Commits)
	assert.Equal(t, first, batch.Projects[0].FirstCommit)

	require.Len(t, batch.Errors, 1)
	assert.Contains(t, batch.Errors[0], "invalid repository")

	assert.Equal(t, 2, batch.Overall.TotalProjects)
	expectedAvg := (batch.Projects[0].ComplexityScore.Total + batch.Projects[1].ComplexityScore.Total) / 2
	assert.InDelta(t, expectedAvg, batch.Overall.AvgComplexity, 1e-9)
	assert.Equal(t, "1.2.3", batch.ToolVersion)

	// The batch must land in the history store.
	require.Len(t, store.batches, 1)
	assert.Same(t, batch, store.batches[0])
}

func TestRunRecordsFileLevelFailures(t *testing.T) {
	repo := makeRepo(t, map[string]string{
		"good.go":   sampleGoFile,
		"broken.go": "func   {{{",
	})
	store := &memStore{}
	engine := NewEngine(&fakeGit{}, store, "test")

	batch, err := engine.Run(context.Background(), []string{repo}, false)
	require.NoError(t, err)

	// The repository still scores from its parseable file, but the bad
	// file surfaces in the batch's errors instead of vanishing.
	require.Len(t, batch.Projects, 1)
	assert.Greater(t, batch.Projects[0].ComplexityScore.Total, 0.0)
	require.Len(t, batch.Errors, 1)
	assert.Contains(t, batch.Errors[0], "broken.go")
}

func TestAnalyzeRepoMalformedOnlyScoresZero(t *testing.T) {
	repo := makeRepo(t, map[string]string{"broken.go": "func   {{{"})
	engine := NewEngine(&fakeGit{}, &memStore{}, "test")

	analysis, softErrors, err := engine.AnalyzeRepo(context.Background(), repo)
	require.NoError(t, err)

	// Nothing parsed means nothing counted: the score is exactly zero.
	assert.Equal(t, schema.ComplexityScore{}, analysis.ComplexityScore)
	require.Len(t, softErrors, 1)
	assert.Contains(t, softErrors[0], "broken.go")
}

func TestRunGitFailuresAreTolerated(t *testing.T) {
	git := &fakeGit{err: errors.New("no git binary")}
	engine := NewEngine(git, &memStore{}, "test")
	repo := makeRepo(t, map[string]string{"a.go": sampleGoFile})

	batch, err := engine.Run(context.Background(), []string{repo}, false)
	require.NoError(t, err)
	require.Len(t, batch.Projects, 1)
	assert.Zero(t, batch.Projects[0].Commits)
	assert.True(t, batch.Projects[0].FirstCommit.IsZero())
	assert.Greater(t, batch.Projects[0].ComplexityScore.Total, 0.0)
}

func TestRunGrowthRate(t *testing.T) {
	repo := makeRepo(t, map[string]string{"a.go": sampleGoFile})

	// First run against an empty history: no growth baseline.
	store := &memStore{}
	engine := NewEngine(&fakeGit{}, store, "test")
	firstBatch, err := engine.Run(context.Background(), []string{repo}, false)
	require.NoError(t, err)
	assert.Zero(t, firstBatch.Overall.GrowthRatePercent)

	avg := firstBatch.Overall.AvgComplexity
	require.Greater(t, avg, 0.0)

	// Second run against a baseline of half the current average.
	store2 := &memStore{batches: []*schema.AnalysisBatch{{
		Overall: schema.OverallMetrics{AvgComplexity: avg / 2},
	}}}
	engine2 := NewEngine(&fakeGit{}, store2, "test")
	secondBatch, err := engine2.Run(context.Background(), []string{repo}, false)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, secondBatch.Overall.GrowthRatePercent, 0.1)
}

func TestGrowthRateAcrossSuccessiveAverages(t *testing.T) {
	repo := makeRepo(t, map[string]string{"a.go": sampleGoFile})

	// Baselines 6.2 then 7.5; the engine computes growth against each in turn.
	for _, priorAvg := range []float64{6.2, 7.5} {
		store := &memStore{batches: []*schema.AnalysisBatch{{
			Overall: schema.OverallMetrics{AvgComplexity: priorAvg},
		}}}
		engine := NewEngine(&fakeGit{}, store, "test")
		batch, err := engine.Run(context.Background(), []string{repo}, false)
		require.NoError(t, err)

		want := (batch.Overall.AvgComplexity - priorAvg) / priorAvg * 100
		assert.InDelta(t, want, batch.Overall.GrowthRatePercent, 1e-9)
	}
}

func TestRunGrowthRateDropToZeroAverage(t *testing.T) {
	// A batch that averages zero against a positive baseline is a full
	// decline, not a missing data point.
	repo := makeRepo(t, map[string]string{"broken.go": "func   {{{"})
	store := &memStore{batches: []*schema.AnalysisBatch{{
		Overall: schema.OverallMetrics{AvgComplexity: 5.0},
	}}}
	engine := NewEngine(&fakeGit{}, store, "test")

	batch, err := engine.Run(context.Background(), []string{repo}, false)
	require.NoError(t, err)
	assert.Zero(t, batch.Overall.AvgComplexity)
	assert.InDelta(t, -100.0, batch.Overall.GrowthRatePercent, 1e-9)
}

func TestRunInsightsWithoutProvider(t *testing.T) {
	repo := makeRepo(t, map[string]string{"a.go": sampleGoFile})
	engine := NewEngine(&fakeGit{}, &memStore{}, "test")

	batch, err := engine.Run(context.Background(), []string{repo}, true)
	require.NoError(t, err)
	assert.Nil(t, batch.Patterns)
	assert.Nil(t, batch.Recommendations)
	require.Len(t, batch.Errors, 1)
	assert.Contains(t, batch.Errors[0], "no provider is configured")
}

func TestRunStorageWriteFailure(t *testing.T) {
	repo := makeRepo(t, map[string]string{"a.go": sampleGoFile})
	store := &memStore{appendErr: &contract.StorageWriteError{Path: "/nope", Err: errors.New("disk full")}}
	engine := NewEngine(&fakeGit{}, store, "test")

	batch, err := engine.Run(context.Background(), []string{repo}, false)

	var writeErr *contract.StorageWriteError
	require.ErrorAs(t, err, &writeErr)
	// The computed batch is still returned for display.
	require.NotNil(t, batch)
	assert.Len(t, batch.Projects, 1)
}

func TestCollectSourceFilesValidation(t *testing.T) {
	var invalid *contract.InvalidRepositoryError

	_, err := CollectSourceFiles(filepath.Join(t.TempDir(), "missing"))
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "does not exist")

	noGit := t.TempDir()
	_, err = CollectSourceFiles(noGit)
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "not a git repository")
}

func TestCollectSourceFilesFiltering(t *testing.T) {
	repo := makeRepo(t, map[string]string{
		"main.go":                 sampleGoFile,
		"docs/readme.md":          "# notes",
		"node_modules/dep/idx.js": "module.exports = 1;",
		"generated.go":            sampleGoFile,
		".gitignore":              "generated.go\n",
	})

	files, err := CollectSourceFiles(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, files)
}
