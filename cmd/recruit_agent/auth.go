package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"

	"github.com/jonathan/recruitflow/internal/googleauth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize Gmail and Calendar access",
	Long:  `Runs the OAuth authorization flow for the Google integrations. Prints an authorization URL, reads the code from stdin, and caches the token for later commands.`,
	RunE:  runAuth,
}

var (
	authConfigPath      string
	authCredentialsPath string
	authTokenPath       string
)

func init() {
	authCmd.Flags().StringVar(&authConfigPath, "config", "", "Path to config.json file")
	authCmd.Flags().StringVar(&authCredentialsPath, "credentials", "", "Google OAuth client credentials file")
	authCmd.Flags().StringVar(&authTokenPath, "token", "", "Path to cache the OAuth token at")
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAndMergeConfig(authConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("credentials") {
		cfg.CredentialsPath = authCredentialsPath
	}
	if cmd.Flags().Changed("token") {
		cfg.TokenPath = authTokenPath
	}

	if cfg.CredentialsPath == "" || cfg.TokenPath == "" {
		return fmt.Errorf("--credentials and --token are required (via flags or config)")
	}

	oauthConfig, err := googleauth.LoadConfig(cfg.CredentialsPath,
		gmail.GmailSendScope,
		gmail.GmailReadonlyScope,
		calendar.CalendarEventsScope,
		calendar.CalendarReadonlyScope,
	)
	if err != nil {
		return err
	}

	fmt.Printf("Open the following URL in your browser and authorize access:\n\n%s\n\n", googleauth.AuthCodeURL(oauthConfig))
	fmt.Print("Enter the authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("authorization code is empty")
	}

	if _, err := googleauth.Exchange(ctx, oauthConfig, code, cfg.TokenPath); err != nil {
		return err
	}

	fmt.Printf("Token cached at %s\n", cfg.TokenPath)
	return nil
}
