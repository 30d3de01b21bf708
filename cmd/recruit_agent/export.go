package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/export"
	"github.com/jonathan/recruitflow/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export flow snapshots to an Excel report",
	Long:  `Reads persisted flow snapshots from the JSONL file or PostgreSQL and writes a hiring-team report workbook.`,
	RunE:  runExport,
}

var (
	exportConfigPath   string
	exportSnapshotPath string
	exportDatabaseURL  string
	exportOutput       string
)

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file")
	exportCmd.Flags().StringVar(&exportSnapshotPath, "snapshot", "", "JSONL snapshot file to read")
	exportCmd.Flags().StringVar(&exportDatabaseURL, "db-url", "", "PostgreSQL connection URL to read from")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "flows.xlsx", "Output workbook path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAndMergeConfig(exportConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.SnapshotPath = exportSnapshotPath
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = exportDatabaseURL
	}

	var snapshots store.Store
	switch {
	case cfg.DatabaseURL != "":
		snapshots, err = store.ConnectPostgres(ctx, cfg.DatabaseURL)
	case cfg.SnapshotPath != "":
		snapshots, err = store.NewJSONLStore(cfg.SnapshotPath)
	default:
		return fmt.Errorf("either --snapshot or --db-url is required (via flag or config)")
	}
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer snapshots.Close()

	flows, err := snapshots.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	if err := export.FlowsToExcel(flows, exportOutput); err != nil {
		return err
	}

	fmt.Printf("Exported %d flows to %s\n", len(flows), exportOutput)
	return nil
}
