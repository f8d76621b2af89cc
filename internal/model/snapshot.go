package model

import "github.com/shopspring/decimal"

// Snapshot is the singleton denormalized balance record: one signed
// balance per account, reconciled against the settled rows of the ledger.
//
// Invariant: each balance equals the onboarding balance plus the signed
// delta of every Scheduled=false transaction touching that account.
type Snapshot struct {
	CurrencySymbol string
	HasCreditCard  bool
	Balances       map[string]decimal.Decimal

	// Version is bumped on every write; stale writes are rejected by the
	// store.
	Version int64
}

// Balance returns the balance for an account key, zero if absent.
func (s Snapshot) Balance(key string) decimal.Decimal {
	if b, ok := s.Balances[key]; ok {
		return b
	}
	return decimal.Zero
}

// SetBalance returns a copy of s with the account's balance replaced.
func (s Snapshot) SetBalance(key string, amount decimal.Decimal) Snapshot {
	out := s.Clone()
	out.Balances[key] = amount
	return out
}

// Clone deep-copies the snapshot so callers can fold deltas without
// mutating shared state.
func (s Snapshot) Clone() Snapshot {
	balances := make(map[string]decimal.Decimal, len(s.Balances))
	for k, v := range s.Balances {
		balances[k] = v
	}
	out := s
	out.Balances = balances
	return out
}

// TotalBalance sums all account balances. The credit card account only
// participates when HasCreditCard is set.
func (s Snapshot) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for key, b := range s.Balances {
		if key == AccountCreditCard && !s.HasCreditCard {
			continue
		}
		total = total.Add(b)
	}
	return total
}
