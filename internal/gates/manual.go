package gates

import (
	"fmt"
	"sync"
)

// ErrUnauthorizedReviewer indicates the reviewer is not in the gate's reviewer set
type ErrUnauthorizedReviewer struct {
	Reviewer string
}

func (e *ErrUnauthorizedReviewer) Error() string {
	return fmt.Sprintf("reviewer %s not authorized", e.Reviewer)
}

// ErrNoPendingReview indicates no review is awaiting a decision for the flow
type ErrNoPendingReview struct {
	FlowID string
}

func (e *ErrNoPendingReview) Error() string {
	return fmt.Sprintf("no pending review for flow %s", e.FlowID)
}

// ManualReviewGate always defers to a human decision: Evaluate reports
// PENDING and records the flow in the gate's pending set until a configured
// reviewer submits a decision. A gate is single-shot per flow: once a
// decision lands, the pending entry is removed and a second submit fails.
type ManualReviewGate struct {
	gateID    string
	reviewers map[string]struct{}

	mu      sync.Mutex
	pending map[string]Result // flow_id -> pending result
}

// NewManualReviewGate creates a manual gate restricted to the given reviewers
func NewManualReviewGate(gateID string, reviewers []string) *ManualReviewGate {
	set := make(map[string]struct{}, len(reviewers))
	for _, r := range reviewers {
		set[r] = struct{}{}
	}
	return &ManualReviewGate{
		gateID:    gateID,
		reviewers: set,
		pending:   make(map[string]Result),
	}
}

// ID returns the gate identifier
func (g *ManualReviewGate) ID() string { return g.gateID }

// Reviewers returns the configured reviewer identities
func (g *ManualReviewGate) Reviewers() []string {
	out := make([]string, 0, len(g.reviewers))
	for r := range g.reviewers {
		out = append(out, r)
	}
	return out
}

// Evaluate marks the flow as awaiting manual review
func (g *ManualReviewGate) Evaluate(ctx Context) Result {
	flowID, _ := ctx["flow_id"].(string)
	if flowID == "" {
		flowID = "unknown"
	}

	result := Result{
		GateID:      g.gateID,
		Status:      StatusPending,
		Reason:      "Awaiting manual review",
		EvaluatedAt: timeNow(),
		Metadata: map[string]any{
			"reviewers": g.Reviewers(),
		},
	}

	g.mu.Lock()
	g.pending[flowID] = result
	g.mu.Unlock()

	return result
}

// HasPending reports whether a review is awaiting a decision for the flow
func (g *ManualReviewGate) HasPending(flowID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[flowID]
	return ok
}

// SubmitReview records a reviewer decision for a pending flow. It fails with
// ErrUnauthorizedReviewer for unknown reviewers and ErrNoPendingReview when
// the flow has no pending entry (including after a prior decision).
func (g *ManualReviewGate) SubmitReview(flowID, reviewer string, approved bool, comments string) (Result, error) {
	if _, ok := g.reviewers[reviewer]; !ok {
		return Result{}, &ErrUnauthorizedReviewer{Reviewer: reviewer}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.pending[flowID]; !ok {
		return Result{}, &ErrNoPendingReview{FlowID: flowID}
	}
	delete(g.pending, flowID)

	status := StatusRejected
	reason := comments
	if approved {
		status = StatusApproved
		if reason == "" {
			reason = "Approved by reviewer"
		}
	} else if reason == "" {
		reason = "Rejected by reviewer"
	}

	return Result{
		GateID:      g.gateID,
		Status:      status,
		Reason:      reason,
		EvaluatedAt: timeNow(),
		EvaluatedBy: reviewer,
	}, nil
}
