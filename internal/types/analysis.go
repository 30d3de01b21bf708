package types

// Analysis represents the structured evaluation of a resume against a job posting
type Analysis struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}
