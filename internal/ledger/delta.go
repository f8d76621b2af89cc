package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Delta is a set of signed per-account balance changes produced by one
// transaction. Folding a delta into a snapshot adds each entry to the
// matching account balance.
type Delta map[string]decimal.Decimal

// TransactionDelta computes the balance impact of settling tx.
//
// The sign rule:
//
//	expense:  -amount to account From
//	income:   +amount to account To
//	transfer: -amount to From and +amount to To
func TransactionDelta(tx model.Transaction) Delta {
	d := make(Delta, 2)
	switch tx.Type {
	case model.TypeExpense:
		d.add(tx.From, tx.Amount.Neg())
	case model.TypeIncome:
		d.add(tx.To, tx.Amount)
	case model.TypeTransfer:
		d.add(tx.From, tx.Amount.Neg())
		d.add(tx.To, tx.Amount)
	}
	return d
}

// ReversalDelta computes the exact negation of tx's balance impact, used
// when a settled transaction is edited or deleted.
func ReversalDelta(tx model.Transaction) Delta {
	return TransactionDelta(tx).Negate()
}

func (d Delta) add(key string, amount decimal.Decimal) {
	d[key] = d[key].Add(amount)
}

// Negate returns a delta with every entry sign-flipped.
func (d Delta) Negate() Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		out[k] = v.Neg()
	}
	return out
}

// ApplyTo folds the delta into a copy of snap and returns it.
func (d Delta) ApplyTo(snap model.Snapshot) model.Snapshot {
	out := snap.Clone()
	for k, v := range d {
		out.Balances[k] = out.Balance(k).Add(v)
	}
	return out
}

// IsZero reports whether every entry is zero.
func (d Delta) IsZero() bool {
	for _, v := range d {
		if !v.IsZero() {
			return false
		}
	}
	return true
}
