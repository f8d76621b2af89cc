package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// ErrSnapshotExists is returned by InitSnapshot when onboarding has
// already run.
var ErrSnapshotExists = errors.New("balance snapshot already initialized")

// ErrNoSnapshot is returned when the singleton snapshot row is missing,
// i.e. onboarding never ran.
var ErrNoSnapshot = errors.New("balance snapshot not initialized, run 'pocketfin init' first")

// InitSnapshot writes the singleton snapshot during onboarding. It fails
// if a snapshot already exists.
func (s *Store) InitSnapshot(ctx context.Context, snap model.Snapshot) error {
	err := s.WithTx(ctx, func(ts ledger.Store) error {
		t := ts.(*Store)
		res, err := t.q.ExecContext(ctx,
			`INSERT OR IGNORE INTO balance_snapshot (id, currency_symbol, has_credit_card, version)
			 VALUES (0, ?, ?, 1)`,
			snap.CurrencySymbol, boolToInt(snap.HasCreditCard))
		if err != nil {
			return fmt.Errorf("inserting snapshot: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("inserting snapshot: %w", err)
		}
		if n == 0 {
			return ErrSnapshotExists
		}
		return t.writeBalances(ctx, snap.Balances)
	})
	return err
}

// Snapshot reads the singleton balance snapshot.
func (s *Store) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var (
		snap      model.Snapshot
		hasCredit int
	)
	row := s.q.QueryRowContext(ctx,
		`SELECT currency_symbol, has_credit_card, version FROM balance_snapshot WHERE id = 0`)
	if err := row.Scan(&snap.CurrencySymbol, &hasCredit, &snap.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Snapshot{}, ErrNoSnapshot
		}
		return model.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snap.HasCreditCard = hasCredit != 0

	rows, err := s.q.QueryContext(ctx, `SELECT account_key, balance FROM account_balances`)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading balances: %w", err)
	}
	defer rows.Close()

	snap.Balances = make(map[string]decimal.Decimal)
	for rows.Next() {
		var key, balance string
		if err := rows.Scan(&key, &balance); err != nil {
			return model.Snapshot{}, fmt.Errorf("scanning balance: %w", err)
		}
		dec, err := decimal.NewFromString(balance)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("parsing balance %q for %s: %w", balance, key, err)
		}
		snap.Balances[key] = dec
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, fmt.Errorf("iterating balances: %w", err)
	}
	return snap, nil
}

// UpdateSnapshot writes the snapshot with a version check: the write only
// lands if the stored version still matches snap.Version, otherwise
// ledger.ErrConflict is returned so the caller can re-read and recompute.
func (s *Store) UpdateSnapshot(ctx context.Context, snap model.Snapshot) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE balance_snapshot
		 SET currency_symbol = ?, has_credit_card = ?, version = version + 1
		 WHERE id = 0 AND version = ?`,
		snap.CurrencySymbol, boolToInt(snap.HasCreditCard), snap.Version)
	if err != nil {
		return fmt.Errorf("updating snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating snapshot: %w", err)
	}
	if n == 0 {
		// Either missing (never onboarded) or a stale version.
		var exists int
		row := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM balance_snapshot WHERE id = 0`)
		if scanErr := row.Scan(&exists); scanErr == nil && exists == 0 {
			return ErrNoSnapshot
		}
		return ledger.ErrConflict
	}
	return s.writeBalances(ctx, snap.Balances)
}

func (s *Store) writeBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	for key, balance := range balances {
		_, err := s.q.ExecContext(ctx,
			`INSERT INTO account_balances (account_key, balance) VALUES (?, ?)
			 ON CONFLICT (account_key) DO UPDATE SET balance = excluded.balance`,
			key, balance.String())
		if err != nil {
			return fmt.Errorf("writing balance for %s: %w", key, err)
		}
	}
	return nil
}
