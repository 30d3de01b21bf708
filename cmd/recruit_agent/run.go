package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/config"
	"github.com/jonathan/recruitflow/internal/flow"
	"github.com/jonathan/recruitflow/internal/observability"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one resume through the recruiting flow",
	Long: `Runs a single resume file through the full flow: parse -> enrich -> analyze -> score -> review -> notify.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runFlowCmd,
}

var (
	runConfigPath   string
	runResume       string
	runJobID        string
	runFlowID       string
	runThreshold    float64
	runAPIKey       string
	runSnapshotPath string
	runDatabaseURL  string
	runUseBrowser   bool
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to candidate resume file (.txt, .md, .html)")
	runCommand.Flags().StringVarP(&runJobID, "job", "j", "", "Job posting identifier to evaluate against")
	runCommand.Flags().StringVar(&runFlowID, "flow-id", "", "Flow identifier (generated when omitted)")
	runCommand.Flags().Float64Var(&runThreshold, "threshold", 0, "Review auto-approval score cutoff (0-1)")
	runCommand.Flags().StringVar(&runSnapshotPath, "snapshot", "", "JSONL snapshot file path")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA profile pages (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for snapshot persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, alternative to --snapshot)")

	rootCmd.AddCommand(runCommand)
}

func runFlowCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAndMergeConfig(runConfigPath)
	if err != nil {
		return err
	}
	if runConfigPath != "" && runVerbose {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
	}

	// Apply CLI overrides; only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.JobID = runJobID
	}
	if cmd.Flags().Changed("threshold") {
		cfg.ScoreThreshold = runThreshold
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.SnapshotPath = runSnapshotPath
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	if runResume == "" {
		return fmt.Errorf("--resume is required")
	}
	if cfg.JobID == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	orch, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	flowID := runFlowID
	if flowID == "" {
		flowID = "flow-" + uuid.NewString()
	}

	fc, err := orch.StartFlow(ctx, flowID, runResume, cfg.JobID)
	if err != nil {
		return fmt.Errorf("failed to start flow: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintParsedResume(fc.Parsed)
		printer.PrintAnalysis(fc.Analysis)
		printer.PrintFlowSummary(fc)
	} else {
		printFlowOutcome(fc)
	}

	if fc.Status == flow.StatusPaused {
		fmt.Printf("Flow %s is paused for manual review. Decide it through the API: POST /flows/%s/review\n", fc.FlowID, fc.FlowID)
	}
	return nil
}

func printFlowOutcome(fc *flow.Context) {
	fmt.Printf("Flow:   %s\n", fc.FlowID)
	fmt.Printf("Status: %s (stage %s)\n", fc.Status, fc.Stage)
	if fc.Score != nil {
		fmt.Printf("Score:  %.2f\n", *fc.Score)
	}
	for _, e := range fc.Errors {
		fmt.Printf("Error:  %s\n", e)
	}
}
