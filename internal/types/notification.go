package types

// Notification is the summary payload sent to stakeholders when a flow finishes
type Notification struct {
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Score       float64 `json:"score"`
	Summary     string  `json:"summary"`
}
