package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-clew/clew/schema"
)

func testBatch(ts time.Time, avg float64) *schema.AnalysisBatch {
	return &schema.AnalysisBatch{
		Timestamp:   ts,
		ToolVersion: "test",
		Projects: []schema.ProjectAnalysis{{
			Name: "demo",
			Path: "/tmp/demo",
			ComplexityScore: schema.ComplexityScore{
				Total: avg, FileScore: avg,
			},
			Technologies: []string{"Go"},
		}},
		Overall: schema.OverallMetrics{AvgComplexity: avg, TotalProjects: 1},
	}
}

func TestAppendAndLatestRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	batch := testBatch(time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), 4.2)
	require.NoError(t, store.Append(batch))

	got, err := store.Latest()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, batch.Overall, got.Overall)
	assert.Equal(t, batch.Projects, got.Projects)
	assert.True(t, batch.Timestamp.Equal(got.Timestamp))
}

func TestLatestOnEmptyHistory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "never-created"))

	got, err := store.Latest()
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadAllNewestFirst(t *testing.T) {
	store := NewFileStore(t.TempDir())

	times := []time.Time{
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		require.NoError(t, store.Append(testBatch(ts, float64(i+1))))
	}

	entries, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-08-03_09-00-00.json", entries[0].Name)
	assert.Equal(t, "2026-08-01_09-00-00.json", entries[2].Name)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, latest.Overall.AvgComplexity, 1e-9)
}

func TestAppendSameSecondDoesNotOverwrite(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(testBatch(ts, 1.0)))
	require.NoError(t, store.Append(testBatch(ts, 2.0)))

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The suffixed entry sorts after the original, so it is the latest.
	latest, err := store.Latest()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, latest.Overall.AvgComplexity, 1e-9)
}

func TestAppendManySameSecondStaysChronological(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Twelve appends in one second: suffixes reach double digits and the
	// padded names must still sort in append order.
	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Append(testBatch(ts, float64(i))))
	}

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	entries, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 12)
	assert.Equal(t, "2026-08-01_12-00-00_11.json", entries[0].Name)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.InDelta(t, 12.0, latest.Overall.AvgComplexity, 1e-9)
}

func TestLoadAllSkipsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, store.Append(testBatch(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), 1.0)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-08-02_09-00-00.json"), []byte("{not json"), 0o644))

	entries, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-08-01_09-00-00.json", entries[0].Name)
}

func TestClear(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Append(testBatch(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), 1.0)))
	require.NoError(t, store.Append(testBatch(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), 2.0)))

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteSingleEntry(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Append(testBatch(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), 1.0)))

	require.NoError(t, store.Delete("2026-08-01_09-00-00.json"))

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Error(t, store.Delete("2026-08-01_09-00-00.json"))
}

func TestDeleteRejectsPathTraversal(t *testing.T) {
	store := NewFileStore(t.TempDir())

	assert.Error(t, store.Delete("../outside.json"))
	assert.Error(t, store.Delete("sub/entry.json"))
	assert.Error(t, store.Delete("entry.txt"))
}
