package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketfin-dev/pocketfin/internal/id"
	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pocketfin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func initTestSnapshot(t *testing.T, s *Store, balances map[string]decimal.Decimal) {
	t.Helper()
	err := s.InitSnapshot(context.Background(), model.Snapshot{
		CurrencySymbol: "$",
		HasCreditCard:  true,
		Balances:       balances,
	})
	require.NoError(t, err)
}

func testTransaction(when time.Time) model.Transaction {
	return model.Transaction{
		ID:        id.New(),
		Type:      model.TypeExpense,
		From:      model.AccountBank,
		To:        "groceries",
		Timestamp: when,
		Amount:    dec("12.50"),
		Note:      "weekly shop",
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	when := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)
	tx := testTransaction(when)
	require.NoError(t, s.InsertTransaction(ctx, tx))

	got, err := s.TransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, tx.Type, got.Type)
	assert.Equal(t, tx.From, got.From)
	assert.Equal(t, tx.To, got.To)
	assert.Equal(t, when.UnixMilli(), got.Timestamp.UnixMilli())
	assert.True(t, got.Amount.Equal(tx.Amount))
	assert.Equal(t, tx.Note, got.Note)
	assert.False(t, got.Scheduled)
}

func TestTransactionUpdateAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx := testTransaction(time.Now())
	require.NoError(t, s.InsertTransaction(ctx, tx))

	tx.Amount = dec("99.99")
	tx.Note = "corrected"
	tx.Scheduled = true
	require.NoError(t, s.UpdateTransaction(ctx, tx))

	got, err := s.TransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("99.99")))
	assert.Equal(t, "corrected", got.Note)
	assert.True(t, got.Scheduled)

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	_, err = s.TransactionByID(ctx, tx.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestTransactionMissingRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.TransactionByID(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	err = s.UpdateTransaction(ctx, testTransaction(time.Now()))
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	err = s.DeleteTransaction(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestDueScheduledSelectsAndOrders(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	later := testTransaction(now.Add(2 * time.Hour))
	later.Scheduled = true
	earlier := testTransaction(now.Add(-3 * time.Hour))
	earlier.Scheduled = true
	future := testTransaction(now.Add(24 * time.Hour))
	future.Scheduled = true
	settled := testTransaction(now.Add(-5 * time.Hour))

	for _, tx := range []model.Transaction{later, earlier, future, settled} {
		require.NoError(t, s.InsertTransaction(ctx, tx))
	}

	due, err := s.DueScheduled(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1, "only scheduled rows at or before now are due")
	assert.Equal(t, earlier.ID, due[0].ID)

	due, err = s.DueScheduled(ctx, now.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, earlier.ID, due[0].ID, "due rows come back oldest first")
	assert.Equal(t, later.ID, due[1].ID)
}

func TestRecentTransactionsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	var txns []model.Transaction
	for i := 0; i < 5; i++ {
		tx := testTransaction(base.AddDate(0, 0, i))
		require.NoError(t, s.InsertTransaction(ctx, tx))
		txns = append(txns, tx)
	}

	got, err := s.RecentTransactions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, txns[4].ID, got[0].ID, "newest first")
	assert.Equal(t, txns[2].ID, got[2].ID)

	got, err = s.RecentTransactions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestTransactionsInRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	inside := testTransaction(base.AddDate(0, 0, 10))
	before := testTransaction(base.AddDate(0, 0, -1))
	after := testTransaction(base.AddDate(0, 1, 1))
	for _, tx := range []model.Transaction{inside, before, after} {
		require.NoError(t, s.InsertTransaction(ctx, tx))
	}

	got, err := s.TransactionsInRange(ctx, base, base.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestInitSnapshotRunsOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	initTestSnapshot(t, s, map[string]decimal.Decimal{
		model.AccountBank:    dec("1000"),
		model.AccountSavings: dec("250.75"),
	})

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$", snap.CurrencySymbol)
	assert.True(t, snap.HasCreditCard)
	assert.Equal(t, int64(1), snap.Version)
	assert.True(t, snap.Balance(model.AccountBank).Equal(dec("1000")))
	assert.True(t, snap.Balance(model.AccountSavings).Equal(dec("250.75")))

	err = s.InitSnapshot(ctx, model.Snapshot{CurrencySymbol: "€"})
	assert.ErrorIs(t, err, ErrSnapshotExists)
}

func TestSnapshotBeforeInit(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)

	err = s.UpdateSnapshot(context.Background(), model.Snapshot{Version: 1})
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestUpdateSnapshotVersionCheck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	initTestSnapshot(t, s, map[string]decimal.Decimal{model.AccountBank: dec("1000")})

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)

	snap = snap.SetBalance(model.AccountBank, dec("900"))
	require.NoError(t, s.UpdateSnapshot(ctx, snap))

	// The first writer bumped the version; a write based on the old read
	// must be rejected.
	err = s.UpdateSnapshot(ctx, snap)
	assert.ErrorIs(t, err, ledger.ErrConflict)

	fresh, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Version)
	assert.True(t, fresh.Balance(model.AccountBank).Equal(dec("900")))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx := testTransaction(time.Now())
	err := s.WithTx(ctx, func(ts ledger.Store) error {
		require.NoError(t, ts.InsertTransaction(ctx, tx))
		return ledger.ErrConflict
	})
	require.ErrorIs(t, err, ledger.ErrConflict)

	_, err = s.TransactionByID(ctx, tx.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound, "rolled-back insert must not be visible")
}

func TestSubscribeNotifiedAfterCommit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	notified := 0
	s.Subscribe(func() { notified++ })

	err := s.WithTx(ctx, func(ts ledger.Store) error {
		return ts.InsertTransaction(ctx, testTransaction(time.Now()))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	// A failed transaction must not notify.
	_ = s.WithTx(ctx, func(ledger.Store) error { return ledger.ErrConflict })
	assert.Equal(t, 1, notified)
}

func TestNestedWithTxSharesTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx := testTransaction(time.Now())
	err := s.WithTx(ctx, func(outer ledger.Store) error {
		return outer.WithTx(ctx, func(inner ledger.Store) error {
			return inner.InsertTransaction(ctx, tx)
		})
	})
	require.NoError(t, err)

	_, err = s.TransactionByID(ctx, tx.ID)
	assert.NoError(t, err)
}

func TestOpenReappliesNoMigrationsOnSecondOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pocketfin.db")

	s, err := Open(path)
	require.NoError(t, err)
	initTestSnapshot(t, s, map[string]decimal.Decimal{model.AccountBank: dec("42")})
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	snap, err := s2.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Balance(model.AccountBank).Equal(dec("42")))
}

func TestAggregateSums(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := base.AddDate(0, 1, 0)

	insert := func(typ model.Type, from, to, amount string, when time.Time) {
		t.Helper()
		require.NoError(t, s.InsertTransaction(ctx, model.Transaction{
			ID: id.New(), Type: typ, From: from, To: to,
			Timestamp: when, Amount: dec(amount),
		}))
	}

	insert(model.TypeExpense, model.AccountBank, "groceries", "10.10", base.AddDate(0, 0, 1))
	insert(model.TypeExpense, model.AccountBank, "groceries", "20.20", base.AddDate(0, 0, 2))
	insert(model.TypeExpense, model.AccountCash, "transport", "5", base.AddDate(0, 0, 3))
	insert(model.TypeIncome, "salary", model.AccountBank, "3000", base.AddDate(0, 0, 5))
	// Outside the range.
	insert(model.TypeExpense, model.AccountBank, "groceries", "500", base.AddDate(0, 2, 0))

	expenses, err := s.SumByType(ctx, model.TypeExpense, base, end)
	require.NoError(t, err)
	assert.True(t, expenses.Equal(dec("35.30")), "got %s", expenses)

	income, err := s.SumByType(ctx, model.TypeIncome, base, end)
	require.NoError(t, err)
	assert.True(t, income.Equal(dec("3000")))

	groceries, err := s.CategoryExpenseSum(ctx, "groceries", base, end)
	require.NoError(t, err)
	assert.True(t, groceries.Equal(dec("30.30")), "got %s", groceries)

	salary, err := s.CategoryIncomeSum(ctx, "salary", base, end)
	require.NoError(t, err)
	assert.True(t, salary.Equal(dec("3000")))

	nothing, err := s.CategoryExpenseSum(ctx, "rent", base, end)
	require.NoError(t, err)
	assert.True(t, nothing.IsZero())
}
