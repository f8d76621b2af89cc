package ledger

import (
	"fmt"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Catalog resolves account and category keys during validation.
type Catalog interface {
	AccountExists(key string) bool
	CategoryExists(key string, kind model.CategoryKind) bool
}

// DisallowedPair is a named policy rule rejecting a specific
// (account, category) combination for expenses.
type DisallowedPair struct {
	Name     string
	Account  string
	Category string
}

// validate runs the full rule table against proposed transaction fields.
// It returns a *ValidationError describing the first violated rule, or
// nil. Nothing may be mutated before validate passes.
func validate(p TransactionParams, catalog Catalog, disallowed []DisallowedPair) *ValidationError {
	if !p.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown transaction type %q", p.Type)}
	}
	if !p.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "please enter a valid amount greater than 0"}
	}

	switch p.Type {
	case model.TypeExpense:
		if p.To == "" {
			return &ValidationError{Field: "to", Message: "please select category"}
		}
		if !catalog.AccountExists(p.From) {
			return &ValidationError{Field: "from", Message: fmt.Sprintf("unknown account %q", p.From)}
		}
		if !catalog.CategoryExists(p.To, model.CategoryExpense) {
			return &ValidationError{Field: "to", Message: fmt.Sprintf("unknown category %q", p.To)}
		}
		for _, rule := range disallowed {
			if rule.Account == p.From && rule.Category == p.To {
				return &ValidationError{Field: "to", Message: "please select a different category or account"}
			}
		}

	case model.TypeIncome:
		if p.From == "" {
			return &ValidationError{Field: "from", Message: "please select category"}
		}
		if !catalog.CategoryExists(p.From, model.CategoryIncome) {
			return &ValidationError{Field: "from", Message: fmt.Sprintf("unknown category %q", p.From)}
		}
		if !catalog.AccountExists(p.To) {
			return &ValidationError{Field: "to", Message: fmt.Sprintf("unknown account %q", p.To)}
		}

	case model.TypeTransfer:
		if p.From == "" || p.To == "" {
			return &ValidationError{Field: "from", Message: "please select both 'from' and 'to' accounts"}
		}
		if p.From == p.To {
			return &ValidationError{Field: "to", Message: "'from' and 'to' accounts cannot be the same"}
		}
		if !catalog.AccountExists(p.From) {
			return &ValidationError{Field: "from", Message: fmt.Sprintf("unknown account %q", p.From)}
		}
		if !catalog.AccountExists(p.To) {
			return &ValidationError{Field: "to", Message: fmt.Sprintf("unknown account %q", p.To)}
		}
	}
	return nil
}
