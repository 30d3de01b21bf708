package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/recruitflow/internal/analysis"
	"github.com/jonathan/recruitflow/internal/config"
	"github.com/jonathan/recruitflow/internal/enrichment"
	"github.com/jonathan/recruitflow/internal/flow"
	"github.com/jonathan/recruitflow/internal/llm"
	"github.com/jonathan/recruitflow/internal/notify"
	"github.com/jonathan/recruitflow/internal/parsing"
	"github.com/jonathan/recruitflow/internal/scoring"
	"github.com/jonathan/recruitflow/internal/store"
)

// buildOrchestrator assembles flow dependencies from the merged config.
// The returned cleanup func closes the LLM client and the snapshot store.
func buildOrchestrator(ctx context.Context, cfg config.Config) (*flow.Orchestrator, func(), error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var snapshots store.Store
	switch {
	case cfg.DatabaseURL != "":
		snapshots, err = store.ConnectPostgres(ctx, cfg.DatabaseURL)
	case cfg.SnapshotPath != "":
		snapshots, err = store.NewJSONLStore(cfg.SnapshotPath)
	}
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	deps := flow.Deps{
		Parser:    parsing.NewResumeParser(),
		Enricher:  enrichment.NewProfileEnricher(cfg.UseBrowser),
		Analyzer:  analysis.NewCandidateAnalyzer(client, llm.TierStandard),
		Scorer:    scoring.NewWeightedScorer(nil, scoring.Rubric{}),
		Notifier:  buildNotifier(ctx, cfg),
		Threshold: cfg.ScoreThreshold,
		Reviewers: cfg.ReviewerNames(),
	}
	if snapshots != nil {
		deps.Store = snapshots
	}

	cleanup := func() {
		_ = client.Close()
		if snapshots != nil {
			_ = snapshots.Close()
		}
	}

	return flow.NewOrchestrator(deps), cleanup, nil
}

// buildNotifier prefers Gmail when OAuth credentials and recipients are
// configured, otherwise falls back to log output.
func buildNotifier(ctx context.Context, cfg config.Config) flow.Notifier {
	if cfg.CredentialsPath != "" && cfg.TokenPath != "" && len(cfg.NotifyRecipients) > 0 {
		n, err := notify.NewGmailNotifier(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.NotifyRecipients)
		if err == nil {
			return n
		}
		log.Printf("[NOTIFY] gmail notifier unavailable, using log output: %v", err)
	}
	return notify.NewLogNotifier()
}

// loadAndMergeConfig loads an optional config file and applies defaults.
func loadAndMergeConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg, nil
}
