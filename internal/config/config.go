// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReviewerCredential identifies one reviewer allowed to decide paused flows
type ReviewerCredential struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"` // bcrypt hash, only needed for API login
}

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	IntakeDir    string `json:"intake_dir,omitempty"`    // Directory watched for dropped resumes
	SnapshotPath string `json:"snapshot_path,omitempty"` // JSONL snapshot file path

	// Flow behavior
	JobID          string               `json:"job_id,omitempty"`          // Default job id for new flows
	ScoreThreshold float64              `json:"score_threshold,omitempty"` // Review auto-approval cutoff
	Reviewers      []ReviewerCredential `json:"reviewers,omitempty"`       // Who may decide paused flows

	// Integrations
	APIKey           string   `json:"api_key,omitempty"`           // Gemini API key
	DatabaseURL      string   `json:"database_url,omitempty"`      // PostgreSQL connection URL
	CredentialsPath  string   `json:"credentials_path,omitempty"`  // Google OAuth client credentials file
	TokenPath        string   `json:"token_path,omitempty"`        // Cached Google OAuth token file
	NotifyRecipients []string `json:"notify_recipients,omitempty"` // Hiring-team notification emails

	// Server
	ServerAddr string `json:"server_addr,omitempty"` // HTTP listen address
	JWTSecret  string `json:"jwt_secret,omitempty"`  // Signing secret for reviewer tokens

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA profile pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SnapshotPath != "" {
		return fmt.Errorf("config error: 'database_url' and 'snapshot_path' are mutually exclusive")
	}

	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("config error: 'score_threshold' must be between 0 and 1")
	}

	if c.IntakeDir != "" {
		if _, err := os.Stat(c.IntakeDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: intake directory not found: %s", c.IntakeDir)
		}
	}

	for _, r := range c.Reviewers {
		if r.Name == "" {
			return fmt.Errorf("config error: reviewer with empty name")
		}
	}

	return nil
}

// ReviewerNames returns the configured reviewer identities in order
func (c *Config) ReviewerNames() []string {
	names := make([]string, 0, len(c.Reviewers))
	for _, r := range c.Reviewers {
		names = append(names, r.Name)
	}
	return names
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.IntakeDir == "" {
		result.IntakeDir = defaults.IntakeDir
	}
	if result.SnapshotPath == "" {
		result.SnapshotPath = defaults.SnapshotPath
	}
	if result.JobID == "" {
		result.JobID = defaults.JobID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CredentialsPath == "" {
		result.CredentialsPath = defaults.CredentialsPath
	}
	if result.TokenPath == "" {
		result.TokenPath = defaults.TokenPath
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if len(result.Reviewers) == 0 {
		result.Reviewers = defaults.Reviewers
	}
	if len(result.NotifyRecipients) == 0 {
		result.NotifyRecipients = defaults.NotifyRecipients
	}

	if result.ScoreThreshold == 0 {
		if defaults.ScoreThreshold > 0 {
			result.ScoreThreshold = defaults.ScoreThreshold
		} else {
			result.ScoreThreshold = 0.7 // Default auto-approval cutoff
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
