package history

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/janus-clew/clew/schema"
)

// GrowthRow is the flattened Parquet representation of one project within one
// stored batch. A full history export emits one row per project per batch.
type GrowthRow struct {
	// Timestamp is when the containing batch was produced
	Timestamp time.Time `parquet:"timestamp,snappy"`

	// ToolVersion is the clew version that produced the batch
	ToolVersion string `parquet:"tool_version,snappy"`

	// ProjectName is the base name of the analyzed repository
	ProjectName string `parquet:"project_name,snappy"`

	// ProjectPath is the absolute repository path at analysis time
	ProjectPath string `parquet:"project_path,snappy"`

	// Commits is the commit count reachable from HEAD (0 when unavailable)
	Commits int32 `parquet:"commits,snappy"`

	// FirstCommit is the author time of the oldest commit (nullable)
	FirstCommit *time.Time `parquet:"first_commit,optional,snappy"`

	// ScoreTotal is the bounded 0-10 complexity score
	ScoreTotal float64 `parquet:"score_total,snappy"`

	ScoreFiles     float64 `parquet:"score_files,snappy"`
	ScoreFunctions float64 `parquet:"score_functions,snappy"`
	ScoreClasses   float64 `parquet:"score_classes,snappy"`
	ScoreNesting   float64 `parquet:"score_nesting,snappy"`

	// Technologies is the comma-joined technology list (nullable)
	Technologies *string `parquet:"technologies,optional,snappy"`

	// BatchAvgComplexity is the average score across the batch
	BatchAvgComplexity float64 `parquet:"batch_avg_complexity,snappy"`

	// BatchGrowthRate is the growth rate versus the previous batch, in percent
	BatchGrowthRate float64 `parquet:"batch_growth_rate,snappy"`
}

// FlattenEntries converts stored history entries into Parquet rows.
func FlattenEntries(entries []Entry) []GrowthRow {
	var rows []GrowthRow
	for _, entry := range entries {
		batch := entry.Batch
		for _, project := range batch.Projects {
			rows = append(rows, flattenProject(batch, project))
		}
	}
	return rows
}

func flattenProject(batch *schema.AnalysisBatch, project schema.ProjectAnalysis) GrowthRow {
	row := GrowthRow{
		Timestamp:          batch.Timestamp,
		ToolVersion:        batch.ToolVersion,
		ProjectName:        project.Name,
		ProjectPath:        project.Path,
		Commits:            int32(project.Commits),
		ScoreTotal:         project.ComplexityScore.Total,
		ScoreFiles:         project.ComplexityScore.FileScore,
		ScoreFunctions:     project.ComplexityScore.FunctionScore,
		ScoreClasses:       project.ComplexityScore.ClassScore,
		ScoreNesting:       project.ComplexityScore.NestingScore,
		BatchAvgComplexity: batch.Overall.AvgComplexity,
		BatchGrowthRate:    batch.Overall.GrowthRatePercent,
	}
	if !project.FirstCommit.IsZero() {
		first := project.FirstCommit
		row.FirstCommit = &first
	}
	if len(project.Technologies) > 0 {
		tech := strings.Join(project.Technologies, ",")
		row.Technologies = &tech
	}
	return row
}

// WriteGrowthParquet writes flattened history rows to a Parquet file.
func WriteGrowthParquet(rows []GrowthRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the GrowthRow struct tags
	writer := parquet.NewGenericWriter[GrowthRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
