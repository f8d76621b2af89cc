package ledger

import (
	"context"
	"fmt"
	"sort"
)

// Sweep settles every scheduled transaction whose timestamp has passed:
// each due row's delta is folded into one in-memory snapshot, the rows
// are flipped to settled, and the snapshot is written once. The whole
// batch runs in a single store transaction, so a failure leaves every
// row scheduled and the next sweep retries naturally.
//
// Re-running a sweep is a no-op for already-settled rows because the due
// query only selects rows still marked scheduled.
//
// Returns the number of transactions settled.
func (e *Engine) Sweep(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	settled := 0
	err := e.withConflictRetry(ctx, func() error {
		settled = 0
		return e.store.WithTx(ctx, func(s Store) error {
			due, err := s.DueScheduled(ctx, e.now())
			if err != nil {
				return fmt.Errorf("querying due transactions: %w", err)
			}
			if len(due) == 0 {
				return nil
			}

			// Deterministic settle order: timestamp ascending, ID tie-break.
			sort.Slice(due, func(i, j int) bool {
				if !due[i].Timestamp.Equal(due[j].Timestamp) {
					return due[i].Timestamp.Before(due[j].Timestamp)
				}
				return due[i].ID < due[j].ID
			})

			snap, err := s.Snapshot(ctx)
			if err != nil {
				return fmt.Errorf("reading snapshot: %w", err)
			}

			for _, tx := range due {
				snap = TransactionDelta(tx).ApplyTo(snap)
				tx.Scheduled = false
				if err := s.UpdateTransaction(ctx, tx); err != nil {
					return fmt.Errorf("settling transaction %s: %w", tx.ID, err)
				}
			}

			if err := s.UpdateSnapshot(ctx, snap); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
			settled = len(due)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	if settled > 0 {
		e.log.Info().Int("count", settled).Msg("scheduled transactions settled")
	}
	return settled, nil
}
