package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
	"github.com/janus-clew/clew/schema"
)

// PrintHistoryResults outputs stored history entries, dispatching based on the output format configured.
// Entries arrive newest first; cfg.Limit > 0 truncates the list.
func PrintHistoryResults(entries []history.Entry, cfg *contract.Config) error {
	if cfg.Limit > 0 && len(entries) > cfg.Limit {
		entries = entries[:cfg.Limit]
	}

	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForHistory(entries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForHistory(entries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForHistory(entries, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printHistoryTable(entries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing history table output: %w", err)
		}
	}
	return nil
}

// historyJSONEntry is the JSON shape for a single history listing row.
type historyJSONEntry struct {
	File  string                `json:"file"`
	Batch *schema.AnalysisBatch `json:"batch"`
}

// printJSONResultsForHistory handles opening the file and calling the JSON writer.
func printJSONResultsForHistory(entries []history.Entry, cfg *contract.Config) error {
	out := make([]historyJSONEntry, len(entries))
	for i, entry := range entries {
		out[i] = historyJSONEntry{File: entry.Name, Batch: entry.Batch}
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, out)
	}, "Wrote JSON history results")
}

// printCSVResultsForHistory handles opening the file and calling the CSV writer.
func printCSVResultsForHistory(entries []history.Entry, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"file", "timestamp", "tool_version", "projects", "avg_complexity", "growth_rate", "errors"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, entry := range entries {
				batch := entry.Batch
				row := []string{
					entry.Name,
					batch.Timestamp.Format(time.RFC3339),
					batch.ToolVersion,
					strconv.Itoa(batch.Overall.TotalProjects),
					fmtFloat(batch.Overall.AvgComplexity),
					fmtFloat(batch.Overall.GrowthRatePercent),
					strconv.Itoa(len(batch.Errors)),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV history results")
}

// printParquetResultsForHistory writes flattened history rows to a Parquet file.
func printParquetResultsForHistory(entries []history.Entry, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := history.FlattenEntries(entries)
	if err := history.WriteGrowthParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d Parquet history rows to %s\n", len(rows), cfg.OutputFile)
	return nil
}

// printHistoryTable prints one row per stored batch, newest first.
func printHistoryTable(entries []history.Entry, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(entries) == 0 {
		fmt.Println("No analysis history found. Run 'clew analyze' first.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"File", "When", "Projects", "Avg Score", "Growth"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, entry := range entries {
		batch := entry.Batch
		row := []string{
			entry.Name,
			batch.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(batch.Overall.TotalProjects),
			fmtFloat(batch.Overall.AvgComplexity),
			fmtFloat(batch.Overall.GrowthRatePercent) + "%",
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Showing %d stored analyses\n", len(entries))
	return nil
}

// HistoryStatus summarizes the stored growth history for the status command.
type HistoryStatus struct {
	HistoryDir    string  `json:"history_dir"`
	StoredBatches int     `json:"stored_batches"`
	LastTimestamp string  `json:"last_timestamp,omitempty"`
	LastProjects  int     `json:"last_projects,omitempty"`
	AvgComplexity float64 `json:"avg_complexity,omitempty"`
	GrowthRate    float64 `json:"growth_rate,omitempty"`
}

// PrintHistoryStatus outputs the growth history summary.
func PrintHistoryStatus(status HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON status")
	}

	fmtFloat, _ := createFormatters(cfg.Precision)

	fmt.Println(sectionHeader("Growth History", "🌱", cfg.UseEmojis))
	fmt.Printf("History directory: %s\n", status.HistoryDir)
	fmt.Printf("Stored analyses: %d\n", status.StoredBatches)
	if status.StoredBatches == 0 {
		fmt.Println("Run 'clew analyze' to record your first analysis.")
		return nil
	}
	fmt.Printf("Last analysis: %s\n", status.LastTimestamp)
	fmt.Printf("Projects in last analysis: %d\n", status.LastProjects)
	fmt.Printf("Average complexity: %s\n", fmtFloat(status.AvgComplexity))
	fmt.Printf("Growth rate: %s%%\n", fmtFloat(status.GrowthRate))
	return nil
}

// PrintTrackStatus outputs run-tracking store status.
func PrintTrackStatus(status schema.TrackStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON tracking status")
	}

	fmt.Println(sectionHeader("Run Tracking", "🗄️", cfg.UseEmojis))
	fmt.Printf("Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	if status.LastRunTime != "" {
		fmt.Printf("Last run: %s\n", status.LastRunTime)
	}
	if status.OldestRunTime != "" {
		fmt.Printf("Oldest run: %s\n", status.OldestRunTime)
	}
	for table, size := range status.TableSizes {
		fmt.Printf("Table %s: %d rows\n", table, size)
	}
	return nil
}
