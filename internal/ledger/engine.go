package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/id"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// conflictRetries bounds how often an operation recomputes after losing a
// snapshot version race to an out-of-band writer.
const conflictRetries = 3

// Engine keeps the balance snapshot consistent with the transaction
// ledger. All mutating operations are serialized behind one mutex and
// executed inside a single store transaction, so the snapshot write and
// the ledger write land together or not at all.
type Engine struct {
	store      Store
	catalog    Catalog
	disallowed []DisallowedPair
	log        zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewEngine creates a reconciliation engine.
func NewEngine(store Store, catalog Catalog, disallowed []DisallowedPair, log zerolog.Logger) *Engine {
	return &Engine{
		store:      store,
		catalog:    catalog,
		disallowed: disallowed,
		log:        log,
		now:        time.Now,
	}
}

// SetClock replaces the engine's time source, used by tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// TransactionParams holds user-entered transaction fields, before an ID
// is assigned and before the scheduled state is decided.
type TransactionParams struct {
	Type      model.Type
	From      string
	To        string
	Timestamp time.Time
	Amount    decimal.Decimal
	Note      string
}

// Create validates the params, decides whether the transaction is
// scheduled (timestamp after now) or settles immediately, applies the
// balance delta for settled transactions, and inserts the row.
func (e *Engine) Create(ctx context.Context, p TransactionParams) (model.Transaction, error) {
	if verr := validate(p, e.catalog, e.disallowed); verr != nil {
		return model.Transaction{}, verr
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx := model.Transaction{
		ID:        id.New(),
		Type:      p.Type,
		From:      p.From,
		To:        p.To,
		Timestamp: p.Timestamp,
		Amount:    p.Amount,
		Note:      p.Note,
		Scheduled: p.Timestamp.After(e.now()),
	}

	err := e.withConflictRetry(ctx, func() error {
		return e.store.WithTx(ctx, func(s Store) error {
			if !tx.Scheduled {
				snap, err := s.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("reading snapshot: %w", err)
				}
				snap = TransactionDelta(tx).ApplyTo(snap)
				if err := s.UpdateSnapshot(ctx, snap); err != nil {
					return fmt.Errorf("writing snapshot: %w", err)
				}
			}
			if err := s.InsertTransaction(ctx, tx); err != nil {
				return fmt.Errorf("inserting transaction: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return model.Transaction{}, err
	}

	e.log.Debug().Str("id", tx.ID).Str("type", string(tx.Type)).
		Bool("scheduled", tx.Scheduled).Msg("transaction created")
	return tx, nil
}

// Edit replaces an existing transaction's fields. The stored delta is
// reversed first (if the old row was settled), then the new delta is
// applied (if the new timestamp is not in the future). This
// reverse-then-reapply runs even when type and accounts are unchanged,
// since amount or date may have moved, and it tolerates the row crossing
// between scheduled and settled in either direction.
func (e *Engine) Edit(ctx context.Context, txID string, p TransactionParams) (model.Transaction, error) {
	if verr := validate(p, e.catalog, e.disallowed); verr != nil {
		return model.Transaction{}, verr
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var updated model.Transaction
	err := e.withConflictRetry(ctx, func() error {
		return e.store.WithTx(ctx, func(s Store) error {
			old, err := s.TransactionByID(ctx, txID)
			if err != nil {
				return fmt.Errorf("loading transaction %s: %w", txID, err)
			}

			updated = model.Transaction{
				ID:        old.ID,
				Type:      p.Type,
				From:      p.From,
				To:        p.To,
				Timestamp: p.Timestamp,
				Amount:    p.Amount,
				Note:      p.Note,
				Scheduled: p.Timestamp.After(e.now()),
			}

			oldApplied := !old.Scheduled
			newApplies := !updated.Scheduled
			if oldApplied || newApplies {
				snap, err := s.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("reading snapshot: %w", err)
				}
				if oldApplied {
					snap = ReversalDelta(old).ApplyTo(snap)
				}
				if newApplies {
					snap = TransactionDelta(updated).ApplyTo(snap)
				}
				if err := s.UpdateSnapshot(ctx, snap); err != nil {
					return fmt.Errorf("writing snapshot: %w", err)
				}
			}

			if err := s.UpdateTransaction(ctx, updated); err != nil {
				return fmt.Errorf("updating transaction: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return model.Transaction{}, err
	}

	e.log.Debug().Str("id", txID).Bool("scheduled", updated.Scheduled).Msg("transaction edited")
	return updated, nil
}

// Delete removes a transaction, reversing its balance delta if it had
// been applied. Deleting a still-scheduled transaction touches only the
// ledger.
func (e *Engine) Delete(ctx context.Context, txID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.withConflictRetry(ctx, func() error {
		return e.store.WithTx(ctx, func(s Store) error {
			tx, err := s.TransactionByID(ctx, txID)
			if err != nil {
				return fmt.Errorf("loading transaction %s: %w", txID, err)
			}

			if !tx.Scheduled {
				snap, err := s.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("reading snapshot: %w", err)
				}
				snap = ReversalDelta(tx).ApplyTo(snap)
				if err := s.UpdateSnapshot(ctx, snap); err != nil {
					return fmt.Errorf("writing snapshot: %w", err)
				}
			}

			if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
				return fmt.Errorf("deleting transaction: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	e.log.Debug().Str("id", txID).Msg("transaction deleted")
	return nil
}

// withConflictRetry reruns fn while it fails with ErrConflict, up to
// conflictRetries attempts. Each rerun re-reads the snapshot inside a
// fresh store transaction, so the delta is recomputed against current
// state.
func (e *Engine) withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
		e.log.Warn().Int("attempt", attempt+1).Msg("snapshot conflict, recomputing")
	}
	return err
}
