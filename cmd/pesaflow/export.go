package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/njorogek/pesaflow/internal/cli"
	"github.com/njorogek/pesaflow/internal/export"
	"github.com/njorogek/pesaflow/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored transactions to CSV files",
		Long: `Export all stored transactions as CSV, one file per flow direction
(incoming, outgoing, internal, unknown).`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", ".", "Output directory for CSV files (created if not exists)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputDir, _ := cmd.Flags().GetString("output")

	dbPath, err := defaultDBPath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecords(ctx, storage.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println(cli.FormatWarning("nothing to export"))
		return nil
	}

	files, err := export.NewWriter(outputDir).Write(records)
	if err != nil {
		return fmt.Errorf("failed to write CSV files: %w", err)
	}

	for _, f := range files {
		slog.Info("Created export file", "path", f)
	}
	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d records to %d files", len(records), len(files))))

	return nil
}
