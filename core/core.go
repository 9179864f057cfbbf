// Package core has core logic for analysis, scoring and growth history.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
	"github.com/janus-clew/clew/internal/outwriter"
	"github.com/janus-clew/clew/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteAnalyze runs the full analysis over the configured repositories,
// folds the batch into the growth history and prints the results.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, version string) error {
	start := time.Now()
	client := contract.NewLocalGitClient()
	store := history.NewFileStore(cfg.HistoryDir)
	engine := NewEngine(client, store, version, WithProgress(cfg.Progress))

	batch, err := engine.Run(ctx, cfg.Repos, cfg.Insights)
	if err != nil {
		var writeErr *contract.StorageWriteError
		if errors.As(err, &writeErr) && batch != nil {
			// The analysis itself succeeded; report the failed persist and
			// still show the results.
			contract.LogWarn("failed to save analysis to history", writeErr)
		} else {
			return err
		}
	}

	recordRunIfTracked(batch, cfg)

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteBatch(batch, cfg, duration)
}

// recordRunIfTracked mirrors the batch into the run-tracking database when a
// backend is configured. Tracking failures never fail the analysis.
func recordRunIfTracked(batch *schema.AnalysisBatch, cfg *contract.Config) {
	if cfg.TrackBackend == schema.NoneBackend {
		return
	}
	trackStore, err := history.NewTrackStore(cfg.TrackBackend, cfg.TrackDBConnect)
	if err != nil {
		contract.LogWarn("failed to open tracking store", err)
		return
	}
	defer func() { _ = trackStore.Close() }()

	if _, err := trackStore.RecordRun(batch); err != nil {
		contract.LogWarn("failed to record run in tracking store", err)
	}
}

// ExecuteHistoryList prints the stored growth history, newest first.
func ExecuteHistoryList(_ context.Context, cfg *contract.Config) error {
	store := history.NewFileStore(cfg.HistoryDir)
	entries, err := store.LoadAll()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHistory(entries, cfg)
}

// ExecuteHistoryClear removes every stored analysis.
func ExecuteHistoryClear(_ context.Context, cfg *contract.Config) error {
	store := history.NewFileStore(cfg.HistoryDir)
	removed, err := store.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d stored analyses from %s\n", removed, store.Dir())
	return nil
}

// ExecuteHistoryDelete removes a single stored analysis by file name.
func ExecuteHistoryDelete(_ context.Context, cfg *contract.Config, name string) error {
	store := history.NewFileStore(cfg.HistoryDir)
	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted %s from %s\n", name, store.Dir())
	return nil
}

// ExecuteStatus prints a summary of the stored growth history: how many
// analyses are stored and the headline numbers of the most recent one.
func ExecuteStatus(_ context.Context, cfg *contract.Config) error {
	store := history.NewFileStore(cfg.HistoryDir)
	count, err := store.Count()
	if err != nil {
		return err
	}

	status := outwriter.HistoryStatus{
		HistoryDir:    store.Dir(),
		StoredBatches: count,
	}
	if count > 0 {
		latest, latestErr := store.Latest()
		if latestErr != nil {
			return latestErr
		}
		if latest != nil {
			status.LastTimestamp = latest.Timestamp.Local().Format("2006-01-02 15:04:05")
			status.LastProjects = latest.Overall.TotalProjects
			status.AvgComplexity = latest.Overall.AvgComplexity
			status.GrowthRate = latest.Overall.GrowthRatePercent
		}
	}
	return outwriter.NewOutWriter().WriteStatus(status, cfg)
}

// ExecuteTrackStatus prints status information about the run-tracking store.
func ExecuteTrackStatus(_ context.Context, cfg *contract.Config) error {
	trackStore, err := history.NewTrackStore(cfg.TrackBackend, cfg.TrackDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = trackStore.Close() }()

	status, err := trackStore.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get tracking status: %w", err)
	}
	return outwriter.NewOutWriter().WriteTrackStatus(status, cfg)
}

// ExecuteExport writes the full growth history to a Parquet file.
func ExecuteExport(_ context.Context, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := history.NewFileStore(cfg.HistoryDir)
	entries, err := store.LoadAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no analysis history found to export")
	}

	rows := history.FlattenEntries(entries)
	if err := history.WriteGrowthParquet(rows, cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to write history export: %w", err)
	}

	fmt.Printf("Exported %d rows from %d analyses to: %s\n", len(rows), len(entries), cfg.OutputFile)
	fmt.Println("\nThe Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")
	return nil
}
