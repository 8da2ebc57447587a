package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/njorogek/pesaflow/internal/common"
	"github.com/njorogek/pesaflow/internal/model"
)

// ListOptions narrow a ListRecords query.
type ListOptions struct {
	// Category keeps only records of one category. Empty keeps all.
	Category model.Category
	// Limit caps the number of returned records. Zero means no cap.
	Limit int
}

// SaveRecords persists records, skipping ones already present (the content
// hash is the primary key, so re-importing a backup is idempotent).
// It returns the number of newly inserted records.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []*model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records (
			hash, tx_id, category, direction, action, amount,
			from_party, to_party, phone, account_ref, tx_date, tx_time,
			cost, balance_mpesa, balance_pochi, balance_mshwari, raw_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, r := range records {
		if r == nil {
			return inserted, ErrNilRecord
		}

		res, err := stmt.ExecContext(ctx,
			r.Hash(),
			r.TxID,
			string(r.Category),
			string(r.Direction),
			r.Action,
			r.Amount,
			nullString(r.From),
			nullString(r.To),
			nullString(r.Phone),
			nullString(r.AccountRef),
			nullString(r.Date),
			nullString(r.Time),
			r.Cost,
			nullBalance(r, model.AccountMpesa),
			nullBalance(r, model.AccountPochi),
			nullBalance(r, model.AccountMshwari),
			r.RawText,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert record %s: %w", r.TxID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to count affected rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit records: %w", err)
	}

	return inserted, nil
}

// ListRecords returns stored records, newest first.
func (s *SQLiteStorage) ListRecords(ctx context.Context, opts ListOptions) ([]*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT tx_id, category, direction, action, amount,
		       from_party, to_party, phone, account_ref, tx_date, tx_time,
		       cost, balance_mpesa, balance_pochi, balance_mshwari, raw_text
		FROM records`
	args := make([]any, 0, 2)

	if opts.Category != "" {
		query += " WHERE category = ?"
		args = append(args, string(opts.Category))
	}
	query += " ORDER BY created_at DESC, hash"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*model.Transaction
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// GetRecord fetches a single record by content hash.
func (s *SQLiteStorage) GetRecord(ctx context.Context, hash string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT tx_id, category, direction, action, amount,
		       from_party, to_party, phone, account_ref, tx_date, tx_time,
		       cost, balance_mpesa, balance_pochi, balance_mshwari, raw_text
		FROM records WHERE hash = ?`, hash)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", hash, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CountByCategory returns the number of stored records per category.
func (s *SQLiteStorage) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM records GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.Category(category)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return counts, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.Transaction, error) {
	var (
		r                                          model.Transaction
		action, from, to, phone, ref, date, clock  sql.NullString
		balanceMpesa, balancePochi, balanceMshwari sql.NullFloat64
		category, direction                        string
	)

	err := row.Scan(
		&r.TxID, &category, &direction, &action, &r.Amount,
		&from, &to, &phone, &ref, &date, &clock,
		&r.Cost, &balanceMpesa, &balancePochi, &balanceMshwari, &r.RawText,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	r.Category = model.Category(category)
	r.Direction = model.Direction(direction)
	r.Action = action.String
	r.From = from.String
	r.To = to.String
	r.Phone = phone.String
	r.AccountRef = ref.String
	r.Date = date.String
	r.Time = clock.String

	setBalance(&r, model.AccountMpesa, balanceMpesa)
	setBalance(&r, model.AccountPochi, balancePochi)
	setBalance(&r, model.AccountMshwari, balanceMshwari)

	return &r, nil
}

func setBalance(r *model.Transaction, kind model.AccountKind, v sql.NullFloat64) {
	if !v.Valid {
		return
	}
	if r.Balances == nil {
		r.Balances = make(map[model.AccountKind]float64, 3)
	}
	r.Balances[kind] = v.Float64
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBalance(r *model.Transaction, kind model.AccountKind) any {
	if v, ok := r.Balance(kind); ok {
		return v
	}
	return nil
}
