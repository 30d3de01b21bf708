// Package flow implements the recruiting flow orchestrator: an ordered
// stage pipeline (parse -> enrich -> analyze -> score -> review -> notify)
// driven over a per-candidate Context, with an approval-gate pause point at
// the review stage and resume semantics for manual decisions.
package flow

import (
	"sync"
	"time"

	"github.com/jonathan/recruitflow/internal/types"
)

// timeNow is swappable in tests; synthetic candidate ids derive from it.
var timeNow = time.Now

// Stage identifies one ordered phase of a recruiting flow
type Stage string

// Flow stages, in execution order
const (
	StageIntake   Stage = "intake"
	StageParse    Stage = "parse"
	StageEnrich   Stage = "enrich"
	StageAnalyze  Stage = "analyze"
	StageScore    Stage = "score"
	StageReview   Stage = "review"
	StageNotify   Stage = "notify"
	StageComplete Stage = "complete"
)

// Status is the lifecycle state of a flow execution
type Status string

// Flow statuses. Success and Failed are terminal.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status permits no further transitions
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Context is the mutable record threaded through every stage of one
// candidate-processing run. Inputs (FlowID, JobID, ResumePath) are set at
// creation and immutable thereafter; each derived field is populated by
// exactly one stage and never mutated by a later one. Once registered with
// an orchestrator all field writes happen under mu, so readers on other
// goroutines must go through clone.
type Context struct {
	mu sync.Mutex

	FlowID      string `json:"flow_id"`
	CandidateID string `json:"candidate_id,omitempty"`

	JobID      string `json:"job_id"`
	ResumePath string `json:"resume_path"`

	Parsed   *types.ParsedResume    `json:"parsed_resume,omitempty"`
	Enriched *types.EnrichedProfile `json:"enriched_data,omitempty"`
	Analysis *types.Analysis        `json:"analysis,omitempty"`
	Score    *float64               `json:"score,omitempty"`

	Stage    Stage          `json:"stage"`
	Status   Status         `json:"status"`
	Errors   []string       `json:"errors,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newContext creates a Context ready for execution
func newContext(flowID, resumePath, jobID string) *Context {
	now := timeNow().UTC()
	return &Context{
		FlowID:     flowID,
		JobID:      jobID,
		ResumePath: resumePath,
		Stage:      StageIntake,
		Status:     StatusInProgress,
		Metadata:   make(map[string]any),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// recordError appends to the flow's ordered, append-only error list
func (c *Context) recordError(msg string) {
	c.mu.Lock()
	c.Errors = append(c.Errors, msg)
	c.mu.Unlock()
}

// clone returns a consistent copy that is safe to read and serialize while
// the flow keeps executing. Errors and Metadata are copied; the stage result
// pointers are shared since each is written once and never mutated after.
func (c *Context) clone() *Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := &Context{
		FlowID:      c.FlowID,
		CandidateID: c.CandidateID,
		JobID:       c.JobID,
		ResumePath:  c.ResumePath,
		Parsed:      c.Parsed,
		Enriched:    c.Enriched,
		Analysis:    c.Analysis,
		Stage:       c.Stage,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Score != nil {
		score := *c.Score
		out.Score = &score
	}
	if len(c.Errors) > 0 {
		out.Errors = append([]string(nil), c.Errors...)
	}
	if c.Metadata != nil {
		out.Metadata = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
