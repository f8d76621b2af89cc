package model

// Account keys for the built-in closed set of balance-carrying accounts.
// Accounts are identified by stable keys, never by list position.
const (
	AccountBank       = "bank"
	AccountSavings    = "savings"
	AccountCash       = "cash"
	AccountCreditCard = "credit_card"
)

// Account is a balance-carrying account in the registry.
type Account struct {
	Key  string
	Name string
}

// CategoryKind separates expense categories from income categories.
type CategoryKind string

const (
	CategoryExpense CategoryKind = "expense"
	CategoryIncome  CategoryKind = "income"
)

// Category classifies a transaction for reporting. Categories carry no
// balance.
type Category struct {
	Key  string
	Name string
	Kind CategoryKind
}
