package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njorogek/pesaflow/internal/cli"
	"github.com/njorogek/pesaflow/internal/model"
	"github.com/njorogek/pesaflow/internal/parser"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [message]",
		Short: "Parse a single M-Pesa message",
		Long: `Parse one notification message body given as an argument (or piped on
stdin) and print the extracted transaction record.

Messages describing failed operations are ignored; anything else produces a
record, falling back to category "other" for unrecognized text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("json", false, "Print the record as JSON")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	var body string
	if len(args) == 1 {
		body = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read message from stdin: %w", err)
		}
		body = string(data)
	}

	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("no message given: pass it as an argument or pipe it on stdin")
	}

	tx := parser.Parse(body)
	if tx == nil {
		cmd.Println(cli.FormatWarning("ignored: message describes a failed transaction"))
		return nil
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		out, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	printRecord(cmd, tx)
	return nil
}

func printRecord(cmd *cobra.Command, tx *model.Transaction) {
	cmd.Println(cli.FormatTitle("Transaction " + tx.TxID))
	cmd.Printf("  %-12s %s\n", "category:", string(tx.Category))
	cmd.Printf("  %-12s %s\n", "direction:", cli.FormatDirection(tx.Direction))
	cmd.Printf("  %-12s %s\n", "amount:", cli.FormatAmount(tx.Amount, tx.Direction))
	if tx.From != "" {
		cmd.Printf("  %-12s %s\n", "from:", tx.From)
	}
	if tx.To != "" {
		cmd.Printf("  %-12s %s\n", "to:", tx.To)
	}
	if tx.Phone != "" {
		cmd.Printf("  %-12s %s\n", "phone:", tx.Phone)
	}
	if tx.AccountRef != "" {
		cmd.Printf("  %-12s %s\n", "account:", tx.AccountRef)
	}
	if tx.Date != "" {
		cmd.Printf("  %-12s %s %s\n", "when:", tx.Date, tx.Time)
	}
	cmd.Printf("  %-12s Ksh %.2f\n", "cost:", tx.Cost)
	for _, kind := range []model.AccountKind{model.AccountMpesa, model.AccountPochi, model.AccountMshwari} {
		if v, ok := tx.Balance(kind); ok {
			cmd.Printf("  %-12s Ksh %.2f\n", string(kind)+" bal:", v)
		}
	}
}
