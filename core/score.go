package core

import (
	"math"

	"github.com/janus-clew/clew/schema"
)

// Bucket caps. The four caps sum to 10, the maximum total score.
const (
	fileScoreCap     = 3.0
	functionScoreCap = 4.0
	classScoreCap    = 2.0
	nestingScoreCap  = 1.0
)

// Saturation knees: the count at which a bucket reaches ~63% of its cap.
// Tuned so a mid-sized service lands in the middle of the scale.
const (
	fileKnee     = 15.0
	functionKnee = 40.0
	classKnee    = 10.0
	nestingKnee  = 5.0
)

// saturate maps a non-negative count onto [0, limit) with diminishing returns.
// It is strictly increasing in count, so more structure never lowers a bucket.
func saturate(count int, limit, knee float64) float64 {
	if count <= 0 {
		return 0
	}
	return limit * (1 - math.Exp(-float64(count)/knee))
}

// ComputeComplexity derives the bounded multi-factor complexity score from a
// repository's file count and aggregated structural summary. A repository
// with no parseable files scores exactly zero.
func ComputeComplexity(fileCount int, sum schema.StructuralSummary) schema.ComplexityScore {
	if fileCount <= 0 {
		return schema.ComplexityScore{}
	}

	score := schema.ComplexityScore{
		FileScore:     saturate(fileCount, fileScoreCap, fileKnee),
		FunctionScore: saturate(sum.Functions, functionScoreCap, functionKnee),
		ClassScore:    saturate(sum.Classes, classScoreCap, classKnee),
		NestingScore:  saturate(sum.MaxNesting, nestingScoreCap, nestingKnee),
	}
	score.Total = score.FileScore + score.FunctionScore + score.ClassScore + score.NestingScore
	if score.Total > 10 {
		score.Total = 10
	}
	return score
}
