package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njorogek/pesaflow/internal/cli"
	"github.com/njorogek/pesaflow/internal/model"
	"github.com/njorogek/pesaflow/internal/storage"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		RunE:  runList,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category (received, sent, internal, savings, other)")
	cmd.Flags().IntP("limit", "n", 50, "Maximum number of records to show (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	dbPath, err := defaultDBPath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecords(ctx, storage.ListOptions{
		Category: model.Category(category),
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println(cli.FormatWarning("no records found - run 'pesaflow import' first"))
		return nil
	}

	counts, err := store.CountByCategory(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	cmd.Println(cli.FormatTitle(fmt.Sprintf("%d of %d transactions", len(records), total)))
	cmd.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-9s %12s  %-22s %-22s %s", "TX ID", "DIR", "AMOUNT", "FROM", "TO", "WHEN")))
	for _, r := range records {
		when := r.Date
		if r.Time != "" {
			when += " " + r.Time
		}
		cmd.Printf("%-10s %-9s %12s  %-22s %-22s %s\n",
			truncate(r.TxID, 10),
			cli.FormatDirection(r.Direction),
			cli.FormatAmount(r.Amount, r.Direction),
			truncate(r.From, 22),
			truncate(r.To, 22),
			cli.SubtleStyle.Render(when),
		)
	}

	parts := make([]string, 0, len(counts))
	for _, c := range []model.Category{
		model.CategoryReceived,
		model.CategorySent,
		model.CategoryInternal,
		model.CategorySavings,
		model.CategoryOther,
	} {
		if counts[c] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", c, counts[c]))
		}
	}
	cmd.Println(cli.SubtleStyle.Render(strings.Join(parts, "  ")))

	return nil
}

// truncate shortens a display string to n characters, counting runes so
// multibyte counterparty names are never cut mid-character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
