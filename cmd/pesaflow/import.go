package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njorogek/pesaflow/internal/cli"
	"github.com/njorogek/pesaflow/internal/common"
	"github.com/njorogek/pesaflow/internal/model"
	"github.com/njorogek/pesaflow/internal/parser"
	"github.com/njorogek/pesaflow/internal/sms"
	"github.com/njorogek/pesaflow/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <backup.xml>",
		Short: "Import transactions from an SMS backup file",
		Long: `Import M-Pesa messages from an SMS backup XML file.

Each message body is parsed into a transaction record and stored in the
local database. Failed-transaction notifications are dropped, and records
already present from a previous import are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("sender", "s", sms.DefaultSender, "Only read messages from this sender address")
	cmd.Flags().IntP("max", "m", 0, "Maximum number of messages to read (0 = all)")
	cmd.Flags().Bool("dry-run", false, "Parse and summarize without saving")

	_ = viper.BindPFlag("import.sender", cmd.Flags().Lookup("sender"))
	_ = viper.BindPFlag("import.max", cmd.Flags().Lookup("max"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts := sms.Options{
		Sender:   viper.GetString("import.sender"),
		MaxCount: viper.GetInt("import.max"),
	}
	common.LogDebug("import options", common.Fields{
		"file":    args[0],
		"sender":  opts.Sender,
		"max":     opts.MaxCount,
		"dry_run": viper.GetBool("import.dry_run"),
	})

	messages, err := sms.ReadFile(args[0], opts)
	if err != nil {
		return common.NewUserError("could not read SMS backup", err)
	}
	if len(messages) == 0 {
		return common.NewUserError("no matching messages in backup", common.ErrNoMessages)
	}

	slog.Info(cli.FormatTitle("Importing M-Pesa messages"))
	common.LogInfo("read backup", common.Fields{"file": args[0], "messages": len(messages)})

	bar := progressbar.Default(int64(len(messages)), "parsing")

	records, err := parser.ParseBatch(ctx, sms.Bodies(messages), func() { _ = bar.Add(1) })
	if err != nil {
		return fmt.Errorf("import cancelled: %w", err)
	}
	dropped := len(messages) - len(records)

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Parsed %d records (%d failure messages dropped)", len(records), dropped)))

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		displaySummary(records)
		return nil
	}

	dbPath, err := defaultDBPath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			common.LogError(cerr, "closing database", common.Fields{"path": dbPath})
		}
	}()

	saved, err := store.SaveRecords(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Saved %d new records (%d duplicates skipped)", saved, len(records)-saved)))
	return nil
}

func displaySummary(records []*model.Transaction) {
	counts := make(map[model.Category]int)
	for _, r := range records {
		counts[r.Category]++
	}
	for _, c := range []model.Category{
		model.CategoryReceived,
		model.CategorySent,
		model.CategoryInternal,
		model.CategorySavings,
		model.CategoryOther,
	} {
		if counts[c] > 0 {
			slog.Info("Would import", "category", string(c), "count", counts[c])
		}
	}
}
