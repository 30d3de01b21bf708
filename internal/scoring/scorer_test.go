package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruitflow/internal/types"
)

func scorerUnderTest() *WeightedScorer {
	return NewWeightedScorer(
		map[string]Rubric{
			"job-backend": {RequiredSkills: []string{"go", "postgresql", "docker", "kubernetes"}},
		},
		Rubric{RequiredSkills: []string{"communication"}},
	)
}

func TestScorePerfectMatch(t *testing.T) {
	resume := &types.ParsedResume{Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes"}}
	analysis := &types.Analysis{
		Strengths:       []string{"a", "b"},
		MatchedKeywords: []string{"go", "postgresql", "docker", "kubernetes"},
	}

	score, err := scorerUnderTest().Score(context.Background(), resume, analysis, "job-backend")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScorePartialMatch(t *testing.T) {
	resume := &types.ParsedResume{Skills: []string{"go", "postgresql"}}
	analysis := &types.Analysis{
		Strengths:       []string{"solid sql"},
		Gaps:            []string{"no k8s", "no docker", "no on-call"},
		MatchedKeywords: []string{"go"},
	}

	// skills 2/4, keywords 1/4, balance 1/4
	score, err := scorerUnderTest().Score(context.Background(), resume, analysis, "job-backend")
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.5+0.3*0.25+0.2*0.25, score, 1e-9)
}

func TestScoreUnknownJobUsesDefaultRubric(t *testing.T) {
	resume := &types.ParsedResume{Skills: []string{"communication"}}
	analysis := &types.Analysis{MatchedKeywords: []string{"communication"}}

	score, err := scorerUnderTest().Score(context.Background(), resume, analysis, "job-unknown")
	require.NoError(t, err)
	// full skill and keyword coverage, neutral balance
	assert.InDelta(t, 0.5+0.3+0.2*0.5, score, 1e-9)
}

func TestScoreDeterministic(t *testing.T) {
	resume := &types.ParsedResume{Skills: []string{"go"}}
	analysis := &types.Analysis{Strengths: []string{"x"}, MatchedKeywords: []string{"go"}}
	scorer := scorerUnderTest()

	first, err := scorer.Score(context.Background(), resume, analysis, "job-backend")
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), resume, analysis, "job-backend")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreBounds(t *testing.T) {
	resume := &types.ParsedResume{}
	analysis := &types.Analysis{Gaps: []string{"everything"}}

	score, err := scorerUnderTest().Score(context.Background(), resume, analysis, "job-backend")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreMissingInputs(t *testing.T) {
	scorer := scorerUnderTest()

	_, err := scorer.Score(context.Background(), nil, &types.Analysis{}, "job-backend")
	require.Error(t, err)

	_, err = scorer.Score(context.Background(), &types.ParsedResume{}, nil, "job-backend")
	require.Error(t, err)
}
