package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janus-clew/clew/schema"
)

func TestComputeComplexityEmptyRepo(t *testing.T) {
	score := ComputeComplexity(0, schema.StructuralSummary{Functions: 5, Classes: 2, MaxNesting: 3})
	assert.Equal(t, schema.ComplexityScore{}, score)
}

func TestComputeComplexityTotalIsSumOfBuckets(t *testing.T) {
	score := ComputeComplexity(12, schema.StructuralSummary{Functions: 30, Classes: 4, MaxNesting: 3})
	sum := score.FileScore + score.FunctionScore + score.ClassScore + score.NestingScore
	assert.InDelta(t, sum, score.Total, 1e-9)
	assert.GreaterOrEqual(t, score.Total, 0.0)
	assert.LessOrEqual(t, score.Total, 10.0)
}

func TestComputeComplexityBucketCaps(t *testing.T) {
	// Absurdly large counts must still respect each bucket's cap.
	score := ComputeComplexity(1_000_000, schema.StructuralSummary{
		Functions:  1_000_000,
		Classes:    1_000_000,
		MaxNesting: 1_000,
	})
	assert.Less(t, score.FileScore, 3.0)
	assert.Less(t, score.FunctionScore, 4.0)
	assert.Less(t, score.ClassScore, 2.0)
	assert.Less(t, score.NestingScore, 1.0)
	assert.LessOrEqual(t, score.Total, 10.0)
	assert.InDelta(t, 10.0, score.Total, 0.01)
}

func TestComputeComplexityMonotonic(t *testing.T) {
	base := schema.StructuralSummary{Functions: 10, Classes: 3, MaxNesting: 2}
	ref := ComputeComplexity(10, base)

	moreFiles := ComputeComplexity(20, base)
	assert.Greater(t, moreFiles.Total, ref.Total)

	moreFuncs := ComputeComplexity(10, schema.StructuralSummary{Functions: 20, Classes: 3, MaxNesting: 2})
	assert.Greater(t, moreFuncs.Total, ref.Total)

	moreClasses := ComputeComplexity(10, schema.StructuralSummary{Functions: 10, Classes: 6, MaxNesting: 2})
	assert.Greater(t, moreClasses.Total, ref.Total)

	deeper := ComputeComplexity(10, schema.StructuralSummary{Functions: 10, Classes: 3, MaxNesting: 4})
	assert.Greater(t, deeper.Total, ref.Total)
}

func TestComputeComplexitySmallRepoDeterministic(t *testing.T) {
	sum := schema.StructuralSummary{Functions: 10, Classes: 2, MaxNesting: 3}

	score := ComputeComplexity(4, sum)
	assert.Greater(t, score.Total, 0.0)
	assert.Less(t, score.Total, 10.0)
	assert.Less(t, score.FileScore, 3.0)

	// Same input always yields the same score.
	assert.Equal(t, score, ComputeComplexity(4, sum))
}

func TestComputeComplexityMidSizedRepo(t *testing.T) {
	// A small service: a handful of files, dozens of functions.
	score := ComputeComplexity(15, schema.StructuralSummary{Functions: 40, Classes: 10, MaxNesting: 5})
	assert.InDelta(t, 3.0*0.632, score.FileScore, 0.01)
	assert.InDelta(t, 4.0*0.632, score.FunctionScore, 0.01)
	assert.InDelta(t, 2.0*0.632, score.ClassScore, 0.01)
	assert.InDelta(t, 1.0*0.632, score.NestingScore, 0.01)
	assert.Greater(t, score.Total, 5.0)
	assert.Less(t, score.Total, 7.5)
}
