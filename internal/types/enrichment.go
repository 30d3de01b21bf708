package types

// EnrichedProfile represents candidate data pulled from an external profile source
type EnrichedProfile struct {
	Headline        string   `json:"headline,omitempty"`
	Company         string   `json:"company,omitempty"`
	Location        string   `json:"location,omitempty"`
	YearsExperience int      `json:"years_experience,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Source          string   `json:"source,omitempty"` // URL the profile was fetched from
}
