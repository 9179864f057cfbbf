package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
	"github.com/janus-clew/clew/schema"
)

// PrintBatchResults outputs one analysis batch, dispatching based on the output format configured.
func PrintBatchResults(batch *schema.AnalysisBatch, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForBatch(batch, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForBatch(batch, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForBatch(batch, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printBatchTable(batch, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForBatch handles opening the file and calling the JSON writer.
func printJSONResultsForBatch(batch *schema.AnalysisBatch, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, batch)
	}, "Wrote JSON analysis results")
}

// printCSVResultsForBatch handles opening the file and calling the CSV writer.
func printCSVResultsForBatch(batch *schema.AnalysisBatch, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"name", "path", "commits", "first_commit",
		"score_total", "score_files", "score_functions", "score_classes", "score_nesting",
		"technologies",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range batch.Projects {
				firstCommit := ""
				if !p.FirstCommit.IsZero() {
					firstCommit = p.FirstCommit.Format(time.RFC3339)
				}
				score := p.ComplexityScore
				row := []string{
					p.Name,
					p.Path,
					strconv.Itoa(p.Commits),
					firstCommit,
					fmtFloat(score.Total),
					fmtFloat(score.FileScore),
					fmtFloat(score.FunctionScore),
					fmtFloat(score.ClassScore),
					fmtFloat(score.NestingScore),
					formatTechnologies(p.Technologies),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV analysis results")
}

// printParquetResultsForBatch writes the batch as flattened Parquet rows.
// Parquet is a binary format, so an explicit output file is required.
func printParquetResultsForBatch(batch *schema.AnalysisBatch, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := history.FlattenEntries([]history.Entry{{Batch: batch}})
	if err := history.WriteGrowthParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet analysis results to %s\n", cfg.OutputFile)
	return nil
}

// printBatchTable prints the batch as a table followed by an overall summary.
func printBatchTable(batch *schema.AnalysisBatch, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Name", "Path", "Commits", "Since", "Score", "Technologies"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, p := range batch.Projects {
		since := "unknown"
		if !p.FirstCommit.IsZero() {
			since = p.FirstCommit.Format("2006-01-02")
		}
		row := []string{
			p.Name,
			contract.TruncatePath(p.Path, GetMaxTablePathWidth(cfg)),
			strconv.Itoa(p.Commits),
			since,
			fmtFloat(p.ComplexityScore.Total),
			formatTechnologies(p.Technologies),
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

	printBatchSummary(batch, cfg, fmtFloat)
	fmt.Printf("Analysis completed in %v\n", duration)
	return nil
}

// printBatchSummary prints overall metrics, errors and any enrichment.
func printBatchSummary(batch *schema.AnalysisBatch, cfg *contract.Config, fmtFloat func(float64) string) {
	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	fmt.Println(sectionHeader("Overall", "📊", cfg.UseEmojis))
	fmt.Printf("Projects analyzed: %d\n", batch.Overall.TotalProjects)
	fmt.Printf("Average complexity: %s\n", fmtFloat(batch.Overall.AvgComplexity))

	// Rising complexity reads as a warning, falling as relief.
	growth := batch.Overall.GrowthRatePercent
	switch {
	case growth > 0:
		fmt.Printf("Growth rate: %s\n", red(fmt.Sprintf("+%s%% ▲", fmtFloat(growth))))
	case growth < 0:
		fmt.Printf("Growth rate: %s\n", green(fmt.Sprintf("%s%% ▼", fmtFloat(growth))))
	default:
		fmt.Printf("Growth rate: %s\n", yellow(fmtFloat(0)+"%"))
	}

	if len(batch.Errors) > 0 {
		fmt.Println(sectionHeader("Errors", "⚠️", cfg.UseEmojis))
		for _, msg := range batch.Errors {
			fmt.Printf("  - %s\n", yellow(msg))
		}
	}

	if len(batch.Patterns) > 0 {
		fmt.Println(sectionHeader("Patterns", "🔍", cfg.UseEmojis))
		for _, p := range batch.Patterns {
			fmt.Printf("  - %s\n", p)
		}
	}
	if len(batch.Recommendations) > 0 {
		fmt.Println(sectionHeader("Recommendations", "💡", cfg.UseEmojis))
		for _, r := range batch.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
}
