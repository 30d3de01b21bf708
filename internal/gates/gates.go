// Package gates implements approval gates that control whether a recruiting
// flow may proceed past its review stage. Gates evaluate a context map and
// report approved, rejected, or pending; chains combine gates with AND/OR
// logic and short-circuiting.
package gates

import (
	"fmt"
	"time"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// Status is the outcome of a single gate evaluation
type Status string

// Gate evaluation outcomes
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusEscalated Status = "escalated"
)

// Context carries the data a gate evaluates against, e.g. flow_id, score,
// and any metadata the orchestrator threads through.
type Context map[string]any

// Result is an immutable record of one gate evaluation
type Result struct {
	GateID      string         `json:"gate_id"`
	Status      Status         `json:"status"`
	Reason      string         `json:"reason"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
	EvaluatedBy string         `json:"evaluated_by,omitempty"` // "system" for automatic gates
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Gate is the capability shared by all gate variants
type Gate interface {
	ID() string
	Evaluate(ctx Context) Result
}

// ScoreThresholdGate approves when the context score meets a fixed threshold.
// A missing score is rejected rather than treated as an error; callers that
// want stricter behavior should guard with a ConditionalGate.
type ScoreThresholdGate struct {
	gateID    string
	Threshold float64
}

// NewScoreThresholdGate creates a threshold gate with the given id and threshold
func NewScoreThresholdGate(gateID string, threshold float64) *ScoreThresholdGate {
	return &ScoreThresholdGate{gateID: gateID, Threshold: threshold}
}

// ID returns the gate identifier
func (g *ScoreThresholdGate) ID() string { return g.gateID }

// Evaluate checks the context score against the threshold
func (g *ScoreThresholdGate) Evaluate(ctx Context) Result {
	score, ok := scoreFromContext(ctx)
	switch {
	case !ok:
		return Result{
			GateID:      g.gateID,
			Status:      StatusRejected,
			Reason:      "Score not available",
			EvaluatedAt: timeNow(),
			EvaluatedBy: "system",
		}
	case score >= g.Threshold:
		return Result{
			GateID:      g.gateID,
			Status:      StatusApproved,
			Reason:      fmt.Sprintf("Score %.2f meets threshold %.2f", score, g.Threshold),
			EvaluatedAt: timeNow(),
			EvaluatedBy: "system",
		}
	default:
		return Result{
			GateID:      g.gateID,
			Status:      StatusRejected,
			Reason:      fmt.Sprintf("Score %.2f below threshold %.2f", score, g.Threshold),
			EvaluatedAt: timeNow(),
			EvaluatedBy: "system",
		}
	}
}

// scoreFromContext extracts a numeric score from the context map
func scoreFromContext(ctx Context) (float64, bool) {
	raw, ok := ctx["score"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Predicate is an arbitrary boolean condition over a gate context.
// Returning an error rejects the gate without crashing the chain.
type Predicate func(ctx Context) (bool, error)

// ConditionalGate wraps a custom predicate
type ConditionalGate struct {
	gateID    string
	predicate Predicate
}

// NewConditionalGate creates a gate from a predicate function
func NewConditionalGate(gateID string, predicate Predicate) *ConditionalGate {
	return &ConditionalGate{gateID: gateID, predicate: predicate}
}

// ID returns the gate identifier
func (g *ConditionalGate) ID() string { return g.gateID }

// Evaluate runs the predicate. Predicate errors and panics are converted to
// REJECTED results; they must never propagate to the chain.
func (g *ConditionalGate) Evaluate(ctx Context) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				GateID:      g.gateID,
				Status:      StatusRejected,
				Reason:      fmt.Sprintf("Condition evaluation error: %v", r),
				EvaluatedAt: timeNow(),
				EvaluatedBy: "system",
			}
		}
	}()

	passed, err := g.predicate(ctx)
	if err != nil {
		return Result{
			GateID:      g.gateID,
			Status:      StatusRejected,
			Reason:      fmt.Sprintf("Condition evaluation error: %v", err),
			EvaluatedAt: timeNow(),
			EvaluatedBy: "system",
		}
	}

	status := StatusRejected
	reason := "Condition failed"
	if passed {
		status = StatusApproved
		reason = "Condition passed"
	}
	return Result{
		GateID:      g.gateID,
		Status:      status,
		Reason:      reason,
		EvaluatedAt: timeNow(),
		EvaluatedBy: "system",
	}
}
