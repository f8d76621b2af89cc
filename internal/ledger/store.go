package ledger

import (
	"context"
	"time"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Store is the persistence contract the engine and sweeper depend on.
// Implementations must return ErrNotFound for missing transactions and
// ErrConflict for stale snapshot writes.
type Store interface {
	InsertTransaction(ctx context.Context, tx model.Transaction) error
	UpdateTransaction(ctx context.Context, tx model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	TransactionByID(ctx context.Context, id string) (model.Transaction, error)

	// DueScheduled returns scheduled transactions with timestamp <= now.
	DueScheduled(ctx context.Context, now time.Time) ([]model.Transaction, error)

	// Snapshot reads the singleton balance snapshot.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	// UpdateSnapshot writes the snapshot, rejecting stale versions with
	// ErrConflict.
	UpdateSnapshot(ctx context.Context, snap model.Snapshot) error

	// WithTx runs fn against a Store whose writes all land atomically or
	// not at all.
	WithTx(ctx context.Context, fn func(Store) error) error
}
