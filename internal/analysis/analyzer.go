// Package analysis produces the qualitative candidate assessment: a summary
// with strengths, gaps and recommendations, generated by an LLM and
// validated against a JSON schema before it enters the flow.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/recruitflow/internal/llm"
	"github.com/jonathan/recruitflow/internal/schemas"
	"github.com/jonathan/recruitflow/internal/types"
)

// analysisSchema constrains the model output before it is trusted
const analysisSchema = `{
	"type": "object",
	"required": ["summary", "strengths", "gaps", "recommendations"],
	"properties": {
		"summary": {"type": "string", "minLength": 1},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"gaps": {"type": "array", "items": {"type": "string"}},
		"recommendations": {"type": "array", "items": {"type": "string"}},
		"matched_keywords": {"type": "array", "items": {"type": "string"}}
	}
}`

// CandidateAnalyzer assesses candidates with an LLM
type CandidateAnalyzer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewCandidateAnalyzer creates an analyzer using the given client and tier
func NewCandidateAnalyzer(client llm.Client, tier llm.ModelTier) *CandidateAnalyzer {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &CandidateAnalyzer{client: client, tier: tier}
}

// Analyze generates and validates the candidate assessment
func (a *CandidateAnalyzer) Analyze(ctx context.Context, resume *types.ParsedResume, enriched *types.EnrichedProfile, jobID string) (*types.Analysis, error) {
	if resume == nil {
		return nil, fmt.Errorf("no parsed resume to analyze")
	}

	prompt := buildPrompt(resume, enriched, jobID)

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed: %w", err)
	}

	if err := schemas.ValidateJSONString(analysisSchema, raw); err != nil {
		return nil, fmt.Errorf("analysis response invalid: %w", err)
	}

	var result types.Analysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &result, nil
}

// buildPrompt assembles the assessment prompt from everything known about
// the candidate so far.
func buildPrompt(resume *types.ParsedResume, enriched *types.EnrichedProfile, jobID string) string {
	var sb strings.Builder

	sb.WriteString("You are a technical recruiter evaluating a candidate for job ")
	sb.WriteString(jobID)
	sb.WriteString(".\n\n")

	sb.WriteString("Candidate name: ")
	sb.WriteString(resume.Name)
	sb.WriteString("\n")
	if len(resume.Skills) > 0 {
		sb.WriteString("Resume skills: ")
		sb.WriteString(strings.Join(resume.Skills, ", "))
		sb.WriteString("\n")
	}
	if resume.Summary != "" {
		sb.WriteString("Resume summary: ")
		sb.WriteString(resume.Summary)
		sb.WriteString("\n")
	}

	if enriched != nil {
		if enriched.Headline != "" {
			sb.WriteString("Profile headline: ")
			sb.WriteString(enriched.Headline)
			sb.WriteString("\n")
		}
		if enriched.Company != "" {
			sb.WriteString("Current company: ")
			sb.WriteString(enriched.Company)
			sb.WriteString("\n")
		}
		if enriched.YearsExperience > 0 {
			sb.WriteString(fmt.Sprintf("Years of experience: %d\n", enriched.YearsExperience))
		}
	}

	sb.WriteString("\nResume text:\n")
	sb.WriteString(resume.RawText)
	sb.WriteString("\n\n")

	sb.WriteString(`Respond with JSON only, using this shape:
{
  "summary": "two or three sentence assessment",
  "strengths": ["..."],
  "gaps": ["..."],
  "recommendations": ["..."],
  "matched_keywords": ["..."]
}`)

	return sb.String()
}
