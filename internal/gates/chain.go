package gates

// ChainResult summarizes one evaluation pass over a gate chain
type ChainResult struct {
	ChainID  string   `json:"chain_id"`
	Approved bool     `json:"approved"`
	Pending  bool     `json:"pending"`
	Logic    string   `json:"logic"` // "AND" or "OR"
	Results  []Result `json:"gate_results"`
}

// Chain evaluates multiple gates in order with AND/OR composition.
//
// In AND mode evaluation stops at the first non-approved result; in OR mode
// it stops at the first approval. Pending is true when any evaluated gate
// reported PENDING - the orchestrator pauses on Pending, not on !Approved.
type Chain struct {
	chainID    string
	gates      []Gate
	requireAll bool
}

// NewChain creates a gate chain. requireAll selects AND composition;
// otherwise any single approval passes the chain (OR).
func NewChain(chainID string, requireAll bool, gates ...Gate) *Chain {
	return &Chain{chainID: chainID, gates: gates, requireAll: requireAll}
}

// ID returns the chain identifier
func (c *Chain) ID() string { return c.chainID }

// Evaluate runs the chain against the context
func (c *Chain) Evaluate(ctx Context) ChainResult {
	results := make([]Result, 0, len(c.gates))

	for _, gate := range c.gates {
		result := gate.Evaluate(ctx)
		results = append(results, result)

		if c.requireAll && result.Status != StatusApproved {
			break
		}
		if !c.requireAll && result.Status == StatusApproved {
			break
		}
	}

	approved := false
	if c.requireAll {
		approved = len(results) == len(c.gates)
		for _, r := range results {
			if r.Status != StatusApproved {
				approved = false
				break
			}
		}
	} else {
		for _, r := range results {
			if r.Status == StatusApproved {
				approved = true
				break
			}
		}
	}

	pending := false
	for _, r := range results {
		if r.Status == StatusPending {
			pending = true
			break
		}
	}

	logic := "OR"
	if c.requireAll {
		logic = "AND"
	}

	return ChainResult{
		ChainID:  c.chainID,
		Approved: approved,
		Pending:  pending,
		Logic:    logic,
		Results:  results,
	}
}
