// Package types provides type definitions for structured data used throughout the recruitflow system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContactInfo holds contact details extracted from a resume
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ParsedResume represents structured resume data extracted from a candidate file
type ParsedResume struct {
	RawText     string      `json:"raw_text"`
	Name        string      `json:"name,omitempty"`
	ContactInfo ContactInfo `json:"contact_info"`
	Skills      []string    `json:"skills,omitempty"`
	Summary     string      `json:"summary,omitempty"`
}
