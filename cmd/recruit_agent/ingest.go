package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/intake"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest-email",
	Short: "Fetch resume attachments from Gmail into the intake directory",
	Long:  `Searches the authorized Gmail account for messages matching the subject filter and saves resume attachments into the intake directory, where the watcher picks them up.`,
	RunE:  runIngest,
}

var (
	ingestConfigPath string
	ingestSubject    string
	ingestDir        string
)

func init() {
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file")
	ingestCmd.Flags().StringVarP(&ingestSubject, "subject", "s", "", "Subject filter for candidate emails")
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory to save attachments into")
	_ = ingestCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAndMergeConfig(ingestConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		cfg.IntakeDir = ingestDir
	}

	if cfg.IntakeDir == "" {
		return fmt.Errorf("--dir is required (via flag or config)")
	}
	if cfg.CredentialsPath == "" || cfg.TokenPath == "" {
		return fmt.Errorf("credentials_path and token_path must be configured (run the auth command first)")
	}

	gmailIntake, err := intake.NewGmailIntake(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.IntakeDir)
	if err != nil {
		return fmt.Errorf("failed to create gmail intake: %w", err)
	}

	saved, err := gmailIntake.FetchAttachments(ctx, ingestSubject)
	if err != nil {
		return err
	}

	for _, path := range saved {
		fmt.Printf("Saved %s\n", path)
	}
	fmt.Printf("Fetched %d attachments\n", len(saved))
	return nil
}
