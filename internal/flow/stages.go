package flow

import (
	"context"
	"errors"

	"github.com/jonathan/recruitflow/internal/gates"
	"github.com/jonathan/recruitflow/internal/types"
)

// errPauseFlow tells the executor to stop iterating and leave the flow to a
// later ResumeFlow call. It never surfaces as a stage error.
var errPauseFlow = errors.New("flow paused for review")

// failurePolicy decides what a stage error does to the flow
type failurePolicy int

const (
	// policyRequired fails the flow immediately
	policyRequired failurePolicy = iota
	// policyBestEffort records the error and continues
	policyBestEffort
)

type stageStep struct {
	stage     Stage
	policy    failurePolicy
	errPrefix string
	run       func(*Orchestrator, context.Context, *Context) error
}

// stagePlan is the ordered pipeline a flow executes. Parse, analyze and
// score are required-data stages; enrichment and notification are best
// effort. Review never fails, it either continues or pauses the flow.
var stagePlan = []stageStep{
	{StageParse, policyRequired, "Parse error: ", (*Orchestrator).parseStage},
	{StageEnrich, policyBestEffort, "Enrichment error: ", (*Orchestrator).enrichStage},
	{StageAnalyze, policyRequired, "Analysis error: ", (*Orchestrator).analyzeStage},
	{StageScore, policyRequired, "Scoring error: ", (*Orchestrator).scoreStage},
	{StageReview, policyRequired, "Review error: ", (*Orchestrator).reviewStage},
	{StageNotify, policyBestEffort, "Notification error: ", (*Orchestrator).notifyStage},
}

// parseStage extracts structured resume data and derives the candidate id
func (o *Orchestrator) parseStage(ctx context.Context, fc *Context) error {
	parsed, err := o.parser.Parse(ctx, fc.ResumePath)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.Parsed = parsed
	fc.CandidateID = candidateIDFromEmail(parsed.ContactInfo.Email)
	fc.mu.Unlock()
	return nil
}

// enrichStage looks up the candidate's public profile. A missing LinkedIn
// URL, a nil enricher, or a lookup failure all leave an empty profile and
// never stop the flow.
func (o *Orchestrator) enrichStage(ctx context.Context, fc *Context) error {
	fc.mu.Lock()
	fc.Enriched = &types.EnrichedProfile{}
	fc.mu.Unlock()

	if o.enricher == nil || fc.Parsed == nil || fc.Parsed.ContactInfo.LinkedIn == "" {
		return nil
	}

	enriched, err := o.enricher.Enrich(ctx, fc.Parsed.ContactInfo.LinkedIn)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.Enriched = enriched
	fc.mu.Unlock()
	return nil
}

// analyzeStage produces the qualitative candidate assessment
func (o *Orchestrator) analyzeStage(ctx context.Context, fc *Context) error {
	analysis, err := o.analyzer.Analyze(ctx, fc.Parsed, fc.Enriched, fc.JobID)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.Analysis = analysis
	fc.mu.Unlock()
	return nil
}

// scoreStage computes the candidate's fit score
func (o *Orchestrator) scoreStage(ctx context.Context, fc *Context) error {
	score, err := o.scorer.Score(ctx, fc.Parsed, fc.Analysis, fc.JobID)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.Score = &score
	fc.mu.Unlock()
	return nil
}

// reviewStage evaluates the gate chain. A pending chain pauses the flow;
// any other outcome lets it continue.
func (o *Orchestrator) reviewStage(_ context.Context, fc *Context) error {
	result := o.chain.Evaluate(o.gateContext(fc))

	fc.mu.Lock()
	fc.Metadata["review_result"] = result
	if result.Pending {
		fc.Status = StatusPaused
	}
	fc.mu.Unlock()

	if result.Pending {
		return errPauseFlow
	}
	return nil
}

// notifyStage delivers the final candidate summary
func (o *Orchestrator) notifyStage(ctx context.Context, fc *Context) error {
	if o.notifier == nil {
		return nil
	}

	n := types.Notification{
		CandidateID: fc.CandidateID,
		JobID:       fc.JobID,
	}
	if fc.Score != nil {
		n.Score = *fc.Score
	}
	if fc.Analysis != nil {
		n.Summary = fc.Analysis.Summary
	}
	return o.notifier.Notify(ctx, n)
}

// gateContext builds the evaluation context for the review chain: flow and
// candidate identity, the score when set, plus any flow metadata.
func (o *Orchestrator) gateContext(fc *Context) gates.Context {
	ctx := gates.Context{
		"flow_id":      fc.FlowID,
		"candidate_id": fc.CandidateID,
		"job_id":       fc.JobID,
	}
	if fc.Score != nil {
		ctx["score"] = *fc.Score
	}
	for k, v := range fc.Metadata {
		if _, reserved := ctx[k]; !reserved {
			ctx[k] = v
		}
	}
	return ctx
}
