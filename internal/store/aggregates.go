package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Aggregate sums are folded with decimal arithmetic in Go rather than
// SQL-side REAL casts, so stored amounts never round-trip through
// floating point.

// SumByType totals all amounts of one transaction type with
// from <= timestamp <= to.
func (s *Store) SumByType(ctx context.Context, typ model.Type, from, to time.Time) (decimal.Decimal, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT amount FROM transactions
		 WHERE type = ? AND timestamp >= ? AND timestamp <= ?`,
		string(typ), from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying %s sum: %w", typ, err)
	}
	defer rows.Close()
	return sumAmounts(rows)
}

// CategoryExpenseSum totals expenses against one category over a date
// range.
func (s *Store) CategoryExpenseSum(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT amount FROM transactions
		 WHERE type = ? AND to_key = ? AND timestamp >= ? AND timestamp <= ?`,
		string(model.TypeExpense), categoryKey, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying expense sum for %s: %w", categoryKey, err)
	}
	defer rows.Close()
	return sumAmounts(rows)
}

// CategoryIncomeSum totals income from one category over a date range.
func (s *Store) CategoryIncomeSum(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT amount FROM transactions
		 WHERE type = ? AND from_key = ? AND timestamp >= ? AND timestamp <= ?`,
		string(model.TypeIncome), categoryKey, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying income sum for %s: %w", categoryKey, err)
	}
	defer rows.Close()
	return sumAmounts(rows)
}

func sumAmounts(rows *sql.Rows) (decimal.Decimal, error) {
	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("scanning amount: %w", err)
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		total = total.Add(dec)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterating amounts: %w", err)
	}
	return total, nil
}
