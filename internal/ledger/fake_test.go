package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// fakeStore is an in-memory Store. WithTx snapshots all state up front
// and restores it when fn fails, mimicking a rolled-back transaction.
type fakeStore struct {
	txns map[string]model.Transaction
	snap model.Snapshot

	// forceConflicts makes the next n snapshot writes fail with
	// ErrConflict.
	forceConflicts int
	insertErr      error
	updateErr      error
	snapWrites     int
}

func newFakeStore(balances map[string]decimal.Decimal) *fakeStore {
	b := make(map[string]decimal.Decimal, len(balances))
	for k, v := range balances {
		b[k] = v
	}
	return &fakeStore{
		txns: make(map[string]model.Transaction),
		snap: model.Snapshot{CurrencySymbol: "$", Balances: b, Version: 1},
	}
}

func (f *fakeStore) InsertTransaction(_ context.Context, tx model.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.txns[tx.ID]; ok {
		return fmt.Errorf("duplicate transaction %s", tx.ID)
	}
	f.txns[tx.ID] = tx
	return nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, tx model.Transaction) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.txns[tx.ID]; !ok {
		return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
	}
	f.txns[tx.ID] = tx
	return nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, id string) error {
	if _, ok := f.txns[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	delete(f.txns, id)
	return nil
}

func (f *fakeStore) TransactionByID(_ context.Context, id string) (model.Transaction, error) {
	tx, ok := f.txns[id]
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return tx, nil
}

func (f *fakeStore) DueScheduled(_ context.Context, now time.Time) ([]model.Transaction, error) {
	var due []model.Transaction
	for _, tx := range f.txns {
		if tx.Scheduled && !tx.Timestamp.After(now) {
			due = append(due, tx)
		}
	}
	// Map iteration order is random on purpose; the sweeper must sort.
	return due, nil
}

func (f *fakeStore) Snapshot(_ context.Context) (model.Snapshot, error) {
	return f.snap.Clone(), nil
}

func (f *fakeStore) UpdateSnapshot(_ context.Context, snap model.Snapshot) error {
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return ErrConflict
	}
	if snap.Version != f.snap.Version {
		return ErrConflict
	}
	snap.Version++
	f.snap = snap.Clone()
	f.snapWrites++
	return nil
}

func (f *fakeStore) WithTx(_ context.Context, fn func(Store) error) error {
	txnsBackup := make(map[string]model.Transaction, len(f.txns))
	for k, v := range f.txns {
		txnsBackup[k] = v
	}
	snapBackup := f.snap.Clone()
	writesBackup := f.snapWrites

	if err := fn(f); err != nil {
		f.txns = txnsBackup
		f.snap = snapBackup
		f.snapWrites = writesBackup
		return err
	}
	return nil
}

func (f *fakeStore) all() []model.Transaction {
	var out []model.Transaction
	for _, tx := range f.txns {
		out = append(out, tx)
	}
	return out
}
