package gates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreThresholdGate(t *testing.T) {
	gate := NewScoreThresholdGate("score_threshold", 0.7)

	tests := []struct {
		name       string
		ctx        Context
		wantStatus Status
		wantReason string
	}{
		{
			name:       "meets threshold",
			ctx:        Context{"score": 0.85},
			wantStatus: StatusApproved,
			wantReason: "Score 0.85 meets threshold 0.70",
		},
		{
			name:       "exactly at threshold",
			ctx:        Context{"score": 0.7},
			wantStatus: StatusApproved,
			wantReason: "Score 0.70 meets threshold 0.70",
		},
		{
			name:       "below threshold",
			ctx:        Context{"score": 0.4},
			wantStatus: StatusRejected,
			wantReason: "Score 0.40 below threshold 0.70",
		},
		{
			name:       "score absent",
			ctx:        Context{},
			wantStatus: StatusRejected,
			wantReason: "Score not available",
		},
		{
			name:       "score wrong type",
			ctx:        Context{"score": "high"},
			wantStatus: StatusRejected,
			wantReason: "Score not available",
		},
		{
			name:       "integer score",
			ctx:        Context{"score": 1},
			wantStatus: StatusApproved,
			wantReason: "Score 1.00 meets threshold 0.70",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gate.Evaluate(tt.ctx)
			assert.Equal(t, "score_threshold", result.GateID)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantReason, result.Reason)
			assert.Equal(t, "system", result.EvaluatedBy)
		})
	}
}

func TestConditionalGate(t *testing.T) {
	t.Run("condition passes", func(t *testing.T) {
		gate := NewConditionalGate("senior_only", func(ctx Context) (bool, error) {
			years, _ := ctx["years_experience"].(int)
			return years >= 5, nil
		})

		result := gate.Evaluate(Context{"years_experience": 8})
		assert.Equal(t, StatusApproved, result.Status)
		assert.Equal(t, "Condition passed", result.Reason)
	})

	t.Run("condition fails", func(t *testing.T) {
		gate := NewConditionalGate("senior_only", func(ctx Context) (bool, error) {
			return false, nil
		})

		result := gate.Evaluate(Context{})
		assert.Equal(t, StatusRejected, result.Status)
		assert.Equal(t, "Condition failed", result.Reason)
	})

	t.Run("predicate error rejects", func(t *testing.T) {
		gate := NewConditionalGate("flaky", func(ctx Context) (bool, error) {
			return false, errors.New("lookup failed")
		})

		result := gate.Evaluate(Context{})
		assert.Equal(t, StatusRejected, result.Status)
		assert.Equal(t, "Condition evaluation error: lookup failed", result.Reason)
	})

	t.Run("predicate panic rejects", func(t *testing.T) {
		gate := NewConditionalGate("panicky", func(ctx Context) (bool, error) {
			panic("boom")
		})

		result := gate.Evaluate(Context{})
		assert.Equal(t, StatusRejected, result.Status)
		assert.Equal(t, "Condition evaluation error: boom", result.Reason)
	})
}

func TestManualReviewGate(t *testing.T) {
	t.Run("evaluate reports pending", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice", "bob"})

		result := gate.Evaluate(Context{"flow_id": "flow-1"})
		assert.Equal(t, StatusPending, result.Status)
		assert.Equal(t, "Awaiting manual review", result.Reason)
		assert.True(t, gate.HasPending("flow-1"))
	})

	t.Run("approve clears pending", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice"})
		gate.Evaluate(Context{"flow_id": "flow-1"})

		result, err := gate.SubmitReview("flow-1", "alice", true, "")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, result.Status)
		assert.Equal(t, "Approved by reviewer", result.Reason)
		assert.Equal(t, "alice", result.EvaluatedBy)
		assert.False(t, gate.HasPending("flow-1"))
	})

	t.Run("reject with comments", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice"})
		gate.Evaluate(Context{"flow_id": "flow-1"})

		result, err := gate.SubmitReview("flow-1", "alice", false, "missing references")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, result.Status)
		assert.Equal(t, "missing references", result.Reason)
	})

	t.Run("unauthorized reviewer", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice"})
		gate.Evaluate(Context{"flow_id": "flow-1"})

		_, err := gate.SubmitReview("flow-1", "mallory", true, "")
		var unauthorized *ErrUnauthorizedReviewer
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "mallory", unauthorized.Reviewer)
		assert.True(t, gate.HasPending("flow-1"))
	})

	t.Run("single shot per flow", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice"})
		gate.Evaluate(Context{"flow_id": "flow-1"})

		_, err := gate.SubmitReview("flow-1", "alice", true, "")
		require.NoError(t, err)

		_, err = gate.SubmitReview("flow-1", "alice", true, "")
		var noPending *ErrNoPendingReview
		require.ErrorAs(t, err, &noPending)
		assert.Equal(t, "flow-1", noPending.FlowID)
	})

	t.Run("no pending review", func(t *testing.T) {
		gate := NewManualReviewGate("manual", []string{"alice"})

		_, err := gate.SubmitReview("never-started", "alice", true, "")
		var noPending *ErrNoPendingReview
		require.ErrorAs(t, err, &noPending)
	})
}

// fixedGate returns a canned status and counts evaluations
type fixedGate struct {
	id     string
	status Status
	calls  int
}

func (g *fixedGate) ID() string { return g.id }

func (g *fixedGate) Evaluate(_ Context) Result {
	g.calls++
	return Result{GateID: g.id, Status: g.status, EvaluatedAt: timeNow()}
}

func TestChainANDShortCircuit(t *testing.T) {
	t.Run("first rejected stops evaluation", func(t *testing.T) {
		first := &fixedGate{id: "g1", status: StatusRejected}
		second := &fixedGate{id: "g2", status: StatusApproved}
		chain := NewChain("c", true, first, second)

		result := chain.Evaluate(Context{})
		assert.False(t, result.Approved)
		assert.False(t, result.Pending)
		assert.Len(t, result.Results, 1)
		assert.Zero(t, second.calls)
		assert.Equal(t, "AND", result.Logic)
	})

	t.Run("approved then rejected evaluates both", func(t *testing.T) {
		first := &fixedGate{id: "g1", status: StatusApproved}
		second := &fixedGate{id: "g2", status: StatusRejected}
		chain := NewChain("c", true, first, second)

		result := chain.Evaluate(Context{})
		assert.False(t, result.Approved)
		assert.Len(t, result.Results, 2)
	})

	t.Run("all approved", func(t *testing.T) {
		chain := NewChain("c", true,
			&fixedGate{id: "g1", status: StatusApproved},
			&fixedGate{id: "g2", status: StatusApproved},
		)

		result := chain.Evaluate(Context{})
		assert.True(t, result.Approved)
		assert.Len(t, result.Results, 2)
	})

	t.Run("pending propagates", func(t *testing.T) {
		chain := NewChain("c", true,
			&fixedGate{id: "g1", status: StatusApproved},
			&fixedGate{id: "g2", status: StatusPending},
		)

		result := chain.Evaluate(Context{})
		assert.False(t, result.Approved)
		assert.True(t, result.Pending)
	})
}

func TestChainORShortCircuit(t *testing.T) {
	t.Run("first approved stops evaluation", func(t *testing.T) {
		first := &fixedGate{id: "g1", status: StatusApproved}
		second := &fixedGate{id: "g2", status: StatusPending}
		chain := NewChain("c", false, first, second)

		result := chain.Evaluate(Context{})
		assert.True(t, result.Approved)
		assert.False(t, result.Pending)
		assert.Len(t, result.Results, 1)
		assert.Zero(t, second.calls)
		assert.Equal(t, "OR", result.Logic)
	})

	t.Run("rejected then pending", func(t *testing.T) {
		chain := NewChain("c", false,
			&fixedGate{id: "g1", status: StatusRejected},
			&fixedGate{id: "g2", status: StatusPending},
		)

		result := chain.Evaluate(Context{})
		assert.False(t, result.Approved)
		assert.True(t, result.Pending)
		assert.Len(t, result.Results, 2)
	})

	t.Run("all rejected", func(t *testing.T) {
		chain := NewChain("c", false,
			&fixedGate{id: "g1", status: StatusRejected},
			&fixedGate{id: "g2", status: StatusRejected},
		)

		result := chain.Evaluate(Context{})
		assert.False(t, result.Approved)
		assert.False(t, result.Pending)
	})
}

func TestDefaultReviewChainBehavior(t *testing.T) {
	manual := NewManualReviewGate("manual_review", []string{"alice"})
	chain := NewChain("review_chain", false,
		NewScoreThresholdGate("score_threshold", 0.7),
		manual,
	)

	t.Run("high score auto approves", func(t *testing.T) {
		result := chain.Evaluate(Context{"flow_id": "flow-hi", "score": 0.9})
		assert.True(t, result.Approved)
		assert.False(t, result.Pending)
		assert.False(t, manual.HasPending("flow-hi"))
	})

	t.Run("low score defers to manual review", func(t *testing.T) {
		result := chain.Evaluate(Context{"flow_id": "flow-lo", "score": 0.4})
		assert.False(t, result.Approved)
		assert.True(t, result.Pending)
		assert.True(t, manual.HasPending("flow-lo"))
	})
}
