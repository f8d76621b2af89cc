package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a transaction's direction of money movement.
type Type string

const (
	TypeExpense  Type = "expense"
	TypeIncome   Type = "income"
	TypeTransfer Type = "transfer"
)

// Valid reports whether t is one of the three known types.
func (t Type) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// Transaction is a single row in the ledger. The meaning of From and To
// depends on Type:
//
//	expense:  From = account key, To = expense category key
//	income:   From = income category key, To = account key
//	transfer: From = account key, To = account key
//
// Amount is always a non-negative magnitude; the sign applied to account
// balances is implied by Type.
type Transaction struct {
	ID        string
	Type      Type
	From      string
	To        string
	Timestamp time.Time
	Amount    decimal.Decimal
	Note      string

	// Scheduled is true while the transaction's balance delta has NOT
	// been applied to the snapshot. A settled (Scheduled=false) row has
	// had its delta applied exactly once.
	Scheduled bool
}
