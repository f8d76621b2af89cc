package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

const transactionColumns = "id, type, from_key, to_key, timestamp, amount, note, scheduled"

// InsertTransaction appends a new row to the ledger.
func (s *Store) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO transactions (id, type, from_key, to_key, timestamp, amount, note, scheduled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.From, tx.To, tx.Timestamp.UnixMilli(),
		tx.Amount.String(), tx.Note, boolToInt(tx.Scheduled))
	if err != nil {
		return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
	}
	return nil
}

// UpdateTransaction replaces all fields of an existing row by ID.
func (s *Store) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, from_key = ?, to_key = ?, timestamp = ?, amount = ?, note = ?, scheduled = ?
		 WHERE id = ?`,
		string(tx.Type), tx.From, tx.To, tx.Timestamp.UnixMilli(),
		tx.Amount.String(), tx.Note, boolToInt(tx.Scheduled), tx.ID)
	if err != nil {
		return fmt.Errorf("updating transaction %s: %w", tx.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction %s: %w", tx.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("updating transaction %s: %w", tx.ID, ledger.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes a row by ID.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("deleting transaction %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

// TransactionByID loads one row, returning ledger.ErrNotFound if absent.
func (s *Store) TransactionByID(ctx context.Context, id string) (model.Transaction, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("loading transaction %s: %w", id, err)
	}
	return tx, nil
}

// DueScheduled returns scheduled transactions whose timestamp is at or
// before now, ordered by timestamp then ID.
func (s *Store) DueScheduled(ctx context.Context, now time.Time) ([]model.Transaction, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE scheduled = 1 AND timestamp <= ?
		 ORDER BY timestamp ASC, id ASC`, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("querying due transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// RecentTransactions returns up to limit rows, newest first. A limit of
// zero or less returns everything.
func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY timestamp DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// TransactionsInRange returns rows with from <= timestamp <= to, newest
// first.
func (s *Store) TransactionsInRange(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE timestamp >= ? AND timestamp <= ?
		 ORDER BY timestamp DESC, id DESC`,
		from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("querying transactions in range: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		tx        model.Transaction
		typ       string
		millis    int64
		amount    string
		scheduled int
	)
	if err := row.Scan(&tx.ID, &typ, &tx.From, &tx.To, &millis, &amount, &tx.Note, &scheduled); err != nil {
		return model.Transaction{}, err
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	tx.Type = model.Type(typ)
	tx.Timestamp = time.UnixMilli(millis)
	tx.Amount = dec
	tx.Scheduled = scheduled != 0
	return tx, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var txns []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return txns, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
