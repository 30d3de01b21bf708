package flow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/recruitflow/internal/gates"
	"github.com/jonathan/recruitflow/internal/types"
)

// DefaultScoreThreshold is the auto-approval cutoff used by the default
// review chain when no threshold is configured.
const DefaultScoreThreshold = 0.7

// Parser extracts structured candidate data from a resume file
type Parser interface {
	Parse(ctx context.Context, path string) (*types.ParsedResume, error)
}

// Enricher augments a candidate with public-profile data
type Enricher interface {
	Enrich(ctx context.Context, profileURL string) (*types.EnrichedProfile, error)
}

// Analyzer produces a qualitative assessment of a candidate against a job
type Analyzer interface {
	Analyze(ctx context.Context, resume *types.ParsedResume, enriched *types.EnrichedProfile, jobID string) (*types.Analysis, error)
}

// Scorer computes a fit score in [0, 1]
type Scorer interface {
	Score(ctx context.Context, resume *types.ParsedResume, analysis *types.Analysis, jobID string) (float64, error)
}

// Notifier delivers the final candidate notification
type Notifier interface {
	Notify(ctx context.Context, n types.Notification) error
}

// Store persists flow snapshots. Persistence is best effort: store failures
// are logged and never affect flow outcomes.
type Store interface {
	SaveSnapshot(ctx context.Context, fc *Context) error
}

// GateChain is the review-stage decision point
type GateChain interface {
	Evaluate(ctx gates.Context) gates.ChainResult
}

// Deps wires the orchestrator's collaborators. Parser, Analyzer, Scorer and
// Notifier are required; Enricher, Chain and Store are optional.
type Deps struct {
	Parser   Parser
	Enricher Enricher
	Analyzer Analyzer
	Scorer   Scorer
	Notifier Notifier

	// Chain overrides the default review chain. When nil the orchestrator
	// builds OR(score threshold, manual review) from Threshold and Reviewers.
	Chain GateChain
	Store Store

	Threshold float64
	Reviewers []string
}

// Orchestrator drives recruiting flows through the staged pipeline and owns
// the in-memory flow table. Map access is guarded by mu, per-flow state by
// each Context's own lock; stage execution runs outside both, so concurrent
// flows do not serialize.
type Orchestrator struct {
	parser   Parser
	enricher Enricher
	analyzer Analyzer
	scorer   Scorer
	notifier Notifier
	chain    GateChain
	manual   *gates.ManualReviewGate
	store    Store

	mu    sync.Mutex
	flows map[string]*Context
}

// NewOrchestrator creates an orchestrator from its dependencies
func NewOrchestrator(deps Deps) *Orchestrator {
	o := &Orchestrator{
		parser:   deps.Parser,
		enricher: deps.Enricher,
		analyzer: deps.Analyzer,
		scorer:   deps.Scorer,
		notifier: deps.Notifier,
		chain:    deps.Chain,
		store:    deps.Store,
		flows:    make(map[string]*Context),
	}

	if o.chain == nil {
		threshold := deps.Threshold
		if threshold <= 0 {
			threshold = DefaultScoreThreshold
		}
		o.manual = gates.NewManualReviewGate("manual_review", deps.Reviewers)
		o.chain = gates.NewChain("review_chain", false,
			gates.NewScoreThresholdGate("score_threshold", threshold),
			o.manual,
		)
	}

	return o
}

// ManualGate returns the default chain's manual review gate, or nil when a
// custom chain was supplied.
func (o *Orchestrator) ManualGate() *gates.ManualReviewGate { return o.manual }

// StartFlow registers a new flow and runs it to its first stopping point:
// success, failure, or a review pause. It fails with ErrDuplicateFlow when
// the id is already taken.
func (o *Orchestrator) StartFlow(ctx context.Context, flowID, resumePath, jobID string) (*Context, error) {
	fc := newContext(flowID, resumePath, jobID)

	o.mu.Lock()
	if _, exists := o.flows[flowID]; exists {
		o.mu.Unlock()
		return nil, &ErrDuplicateFlow{FlowID: flowID}
	}
	o.flows[flowID] = fc
	o.mu.Unlock()

	log.Printf("[flow] %s: started (job=%s resume=%s)", flowID, jobID, resumePath)
	return o.execute(ctx, fc).clone(), nil
}

// ResumeFlow applies a manual review decision to a paused flow. Approval
// runs the remaining stages to completion; rejection fails the flow without
// notifying. Resuming a flow that is not paused fails with ErrInvalidState,
// so a second resume on a finished flow cannot re-run anything.
func (o *Orchestrator) ResumeFlow(ctx context.Context, flowID string, approved bool) (*Context, error) {
	o.mu.Lock()
	fc, ok := o.flows[flowID]
	o.mu.Unlock()

	if !ok {
		return nil, &ErrFlowNotFound{FlowID: flowID}
	}

	// claim the flow under its lock so two concurrent resumes cannot both
	// pass the paused check
	fc.mu.Lock()
	if fc.Status != StatusPaused {
		status := fc.Status
		fc.mu.Unlock()
		return nil, &ErrInvalidState{FlowID: flowID, Status: status}
	}
	fc.Status = StatusInProgress
	fc.mu.Unlock()

	if !approved {
		fc.recordError("Rejected during manual review")
		o.finish(ctx, fc, StatusFailed)
		log.Printf("[flow] %s: rejected during manual review", flowID)
		return fc.clone(), nil
	}

	log.Printf("[flow] %s: approved, resuming", flowID)

	if err := o.runStage(ctx, fc, StageNotify, (*Orchestrator).notifyStage); err != nil {
		fc.recordError(fmt.Sprintf("Notification error: %v", err))
		log.Printf("[flow] %s: notify failed (non-critical): %v", flowID, err)
	}
	o.finish(ctx, fc, StatusSuccess)
	return fc.clone(), nil
}

// GetFlow returns a copy of the context for a flow id, safe to read while
// the flow is still executing
func (o *Orchestrator) GetFlow(flowID string) (*Context, error) {
	o.mu.Lock()
	fc, ok := o.flows[flowID]
	o.mu.Unlock()
	if !ok {
		return nil, &ErrFlowNotFound{FlowID: flowID}
	}
	return fc.clone(), nil
}

// ListFlows returns copies of all registered flow contexts
func (o *Orchestrator) ListFlows() []*Context {
	o.mu.Lock()
	live := make([]*Context, 0, len(o.flows))
	for _, fc := range o.flows {
		live = append(live, fc)
	}
	o.mu.Unlock()

	out := make([]*Context, 0, len(live))
	for _, fc := range live {
		out = append(out, fc.clone())
	}
	return out
}

// execute runs the stage plan until a terminal status or a review pause.
// Stage errors never escape: required-stage failures mark the flow FAILED,
// best-effort failures are recorded and skipped over.
func (o *Orchestrator) execute(ctx context.Context, fc *Context) *Context {
	for _, step := range stagePlan {
		err := o.runStage(ctx, fc, step.stage, step.run)

		// the pause signal hands the flow to whoever resumes it; from here
		// on only locked reads of fc are allowed
		if errors.Is(err, errPauseFlow) {
			log.Printf("[flow] %s: paused for manual review", fc.FlowID)
			return fc
		}

		switch {
		case err != nil && step.policy == policyRequired:
			fc.recordError(fmt.Sprintf("%s%v", step.errPrefix, err))
			o.finish(ctx, fc, StatusFailed)
			log.Printf("[flow] %s: failed at %s: %v", fc.FlowID, step.stage, err)
			return fc
		case err != nil:
			fc.recordError(fmt.Sprintf("%s%v", step.errPrefix, err))
			log.Printf("[flow] %s: %s failed (non-critical): %v", fc.FlowID, step.stage, err)
		}
	}

	o.finish(ctx, fc, StatusSuccess)
	log.Printf("[flow] %s: completed", fc.FlowID)
	return fc
}

// runStage advances the flow to the stage, runs it, and snapshots the result
func (o *Orchestrator) runStage(ctx context.Context, fc *Context, stage Stage, run func(*Orchestrator, context.Context, *Context) error) error {
	fc.mu.Lock()
	fc.Stage = stage
	fc.UpdatedAt = timeNow().UTC()
	fc.mu.Unlock()
	err := run(o, ctx, fc)
	o.snapshot(ctx, fc)
	return err
}

// finish moves the flow to a terminal status and snapshots it. Failed flows
// keep the stage they failed at so callers can see where things stopped.
func (o *Orchestrator) finish(ctx context.Context, fc *Context, status Status) {
	fc.mu.Lock()
	if status == StatusSuccess {
		fc.Stage = StageComplete
	}
	fc.Status = status
	fc.UpdatedAt = timeNow().UTC()
	fc.mu.Unlock()
	o.snapshot(ctx, fc)
}

// snapshot persists a frozen copy of the flow state, best effort. The copy
// keeps the store's serialization off the live context.
func (o *Orchestrator) snapshot(ctx context.Context, fc *Context) {
	if o.store == nil {
		return
	}
	if err := o.store.SaveSnapshot(ctx, fc.clone()); err != nil {
		log.Printf("[flow] %s: snapshot failed: %v", fc.FlowID, err)
	}
}

// candidateIDFromEmail derives a candidate id from the parsed contact email:
// the address local part when present, otherwise a timestamped synthetic id.
func candidateIDFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return fmt.Sprintf("candidate-%d", timeNow().UTC().Unix())
}
