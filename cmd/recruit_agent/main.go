// Package main provides the entry point for the recruiting flow agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recruit_agent",
	Short: "Recruiting flow orchestrator",
	Long:  "Recruit Agent runs candidate resumes through a staged recruiting flow: parsing, enrichment, LLM analysis, scoring, approval gates, and hiring-team notification.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
