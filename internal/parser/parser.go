package parser

import (
	"context"
	"fmt"

	"github.com/njorogek/pesaflow/internal/model"
)

// Parse turns one raw notification body into a transaction record.
//
// It returns nil only for messages matching a known failure pattern; those
// describe operations that never happened and must not be recorded. Any
// other input, however malformed, yields a record: unrecognized templates
// come back as CategoryOther with default fields. Parse never returns an
// error and is safe to call from any number of goroutines.
func Parse(raw string) *model.Transaction {
	text := Normalize(raw)

	if IsFailed(text) {
		return nil
	}

	tx := &model.Transaction{
		TxID:    extractTxID(text),
		Amount:  extractAmount(text),
		Cost:    extractCost(text),
		RawText: raw,
	}
	tx.Date, tx.Time = extractDateTime(text)

	if m := classify(text); m != nil {
		tx.Category = m.category
		m.handler(text, tx)
	} else {
		tx.Category = model.CategoryOther
		tx.Action = "other"
	}

	tx.Direction = model.DirectionFor(tx.Category)
	return tx
}

// ParseBatch parses a slice of message bodies, dropping failure messages.
// Messages are independent; the only coupling is the context check between
// iterations so a cancelled import stops promptly. A non-nil progress
// function is called once per message, whether or not it yielded a record.
func ParseBatch(ctx context.Context, messages []string, progress func()) ([]*model.Transaction, error) {
	records := make([]*model.Transaction, 0, len(messages))

	for i, msg := range messages {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("parse cancelled at message %d: %w", i, ctx.Err())
		default:
			if tx := Parse(msg); tx != nil {
				records = append(records, tx)
			}
			if progress != nil {
				progress()
			}
		}
	}

	return records, nil
}
