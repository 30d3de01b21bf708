package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/intake"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory and start a flow for every new resume",
	Long:  `Polls the intake directory and starts a recruiting flow for each new resume file. Runs until interrupted.`,
	RunE:  runWatch,
}

var (
	watchConfigPath string
	watchDir        string
	watchJobID      string
	watchInterval   time.Duration
)

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "", "Path to config.json file")
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "Directory to watch for dropped resumes")
	watchCmd.Flags().StringVarP(&watchJobID, "job", "j", "", "Job posting identifier for new flows")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Poll interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAndMergeConfig(watchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		cfg.IntakeDir = watchDir
	}
	if cmd.Flags().Changed("job") {
		cfg.JobID = watchJobID
	}

	if cfg.IntakeDir == "" {
		return fmt.Errorf("--dir is required (via flag or config)")
	}
	if cfg.JobID == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	watcher := intake.NewDirectoryWatcher(cfg.IntakeDir, cfg.JobID, orch, watchInterval)
	log.Printf("[intake] watching %s for job %s", cfg.IntakeDir, cfg.JobID)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("[intake] watcher stopped")
	return nil
}
