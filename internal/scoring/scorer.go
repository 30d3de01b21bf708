// Package scoring computes a deterministic candidate fit score in [0, 1]
// from rubric skill coverage, analysis keyword matches, and the balance of
// strengths against gaps. No LLM call is involved, so identical inputs
// always produce identical scores.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/recruitflow/internal/types"
)

// Component weights; they sum to 1 so the result stays in [0, 1]
const (
	skillWeight   = 0.5
	keywordWeight = 0.3
	balanceWeight = 0.2
)

// Rubric describes what a job values when scoring candidates
type Rubric struct {
	RequiredSkills []string `json:"required_skills"`
}

// WeightedScorer scores candidates against per-job rubrics
type WeightedScorer struct {
	rubrics       map[string]Rubric
	defaultRubric Rubric
}

// NewWeightedScorer creates a scorer. Jobs without a rubric fall back to
// defaultRubric.
func NewWeightedScorer(rubrics map[string]Rubric, defaultRubric Rubric) *WeightedScorer {
	if rubrics == nil {
		rubrics = make(map[string]Rubric)
	}
	return &WeightedScorer{rubrics: rubrics, defaultRubric: defaultRubric}
}

// Score computes the weighted fit score for the candidate
func (s *WeightedScorer) Score(_ context.Context, resume *types.ParsedResume, analysis *types.Analysis, jobID string) (float64, error) {
	if resume == nil {
		return 0, fmt.Errorf("no parsed resume to score")
	}
	if analysis == nil {
		return 0, fmt.Errorf("no analysis to score")
	}

	rubric, ok := s.rubrics[jobID]
	if !ok {
		rubric = s.defaultRubric
	}

	score := skillWeight*skillCoverage(resume.Skills, rubric.RequiredSkills) +
		keywordWeight*keywordCoverage(analysis.MatchedKeywords, rubric.RequiredSkills) +
		balanceWeight*strengthBalance(analysis)

	return clamp(score), nil
}

// skillCoverage is the fraction of required skills present on the resume.
// With no requirements every candidate covers trivially.
func skillCoverage(skills, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = struct{}{}
	}
	matched := 0
	for _, r := range required {
		if _, ok := have[strings.ToLower(r)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// keywordCoverage is the analysis keyword count relative to the rubric,
// capped at 1.
func keywordCoverage(keywords, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	ratio := float64(len(keywords)) / float64(len(required))
	if ratio > 1 {
		return 1
	}
	return ratio
}

// strengthBalance weighs identified strengths against gaps; neutral when
// the analysis lists neither.
func strengthBalance(analysis *types.Analysis) float64 {
	total := len(analysis.Strengths) + len(analysis.Gaps)
	if total == 0 {
		return 0.5
	}
	return float64(len(analysis.Strengths)) / float64(total)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
