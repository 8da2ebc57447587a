// Package export writes parsed records to CSV files for spreadsheet use.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/njorogek/pesaflow/internal/model"
)

// Writer handles CSV file writing.
type Writer struct {
	outputDir string
}

// NewWriter creates a Writer that places files under outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
	}
}

var header = []string{
	"tx_id", "category", "direction", "action", "amount",
	"from", "to", "phone", "account_ref", "date", "time",
	"cost", "balance_mpesa", "balance_pochi", "balance_mshwari",
}

// Write groups records by flow direction and writes one CSV file per group.
// It returns the paths of the files it created.
func (w *Writer) Write(records []*model.Transaction) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	groups := make(map[model.Direction][]*model.Transaction)
	for _, r := range records {
		groups[r.Direction] = append(groups[r.Direction], r)
	}

	// Fixed order so repeated exports produce files deterministically.
	order := []model.Direction{
		model.DirectionIn,
		model.DirectionOut,
		model.DirectionInternal,
		model.DirectionUnknown,
	}

	var written []string
	for _, direction := range order {
		group := groups[direction]
		if len(group) == 0 {
			continue
		}

		filename := filepath.Join(w.outputDir, fmt.Sprintf("mpesa_%s.csv", direction))
		if err := w.writeFile(filename, group); err != nil {
			return written, err
		}
		written = append(written, filename)
	}

	return written, nil
}

func (w *Writer) writeFile(filename string, records []*model.Transaction) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing header to %s: %w", filename, err)
	}

	for _, r := range records {
		row := []string{
			r.TxID,
			string(r.Category),
			string(r.Direction),
			r.Action,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.From,
			r.To,
			r.Phone,
			r.AccountRef,
			r.Date,
			r.Time,
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
			formatBalance(r, model.AccountMpesa),
			formatBalance(r, model.AccountPochi),
			formatBalance(r, model.AccountMshwari),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing record to %s: %w", filename, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing writer for %s: %w", filename, err)
	}

	return nil
}

// formatBalance renders a balance cell, leaving it empty when the source
// message never mentioned that account.
func formatBalance(r *model.Transaction, kind model.AccountKind) string {
	if v, ok := r.Balance(kind); ok {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return ""
}
