package accounts

import "github.com/pocketfin-dev/pocketfin/internal/model"

func defaultAccounts() []model.Account {
	return []model.Account{
		{Key: model.AccountBank, Name: "Bank"},
		{Key: model.AccountSavings, Name: "Savings"},
		{Key: model.AccountCash, Name: "Cash"},
		{Key: model.AccountCreditCard, Name: "Card"},
	}
}

func defaultCategories() []model.Category {
	return []model.Category{
		{Key: "groceries", Name: "Groceries", Kind: model.CategoryExpense},
		{Key: "shopping", Name: "Shopping", Kind: model.CategoryExpense},
		{Key: "bills", Name: "Bills", Kind: model.CategoryExpense},
		{Key: "fuel", Name: "Fuel", Kind: model.CategoryExpense},
		{Key: "pets", Name: "Pets", Kind: model.CategoryExpense},
		{Key: "restaurant", Name: "Restaurant", Kind: model.CategoryExpense},
		{Key: "alcohol", Name: "Alcohol", Kind: model.CategoryExpense},
		{Key: "travel", Name: "Travel", Kind: model.CategoryExpense},
		{Key: "child_care", Name: "Child Care", Kind: model.CategoryExpense},
		{Key: "insurance", Name: "Insurance", Kind: model.CategoryExpense},
		{Key: "subscription", Name: "Subscription", Kind: model.CategoryExpense},
		{Key: "education", Name: "Education", Kind: model.CategoryExpense},
		{Key: "electronics", Name: "Electronics", Kind: model.CategoryExpense},
		{Key: "healthcare", Name: "Healthcare", Kind: model.CategoryExpense},
		{Key: "investments", Name: "Investments", Kind: model.CategoryExpense},
		{Key: "gifts", Name: "Gifts", Kind: model.CategoryExpense},
		{Key: "loan", Name: "Loan", Kind: model.CategoryExpense},
		{Key: "rent", Name: "Rent", Kind: model.CategoryExpense},
		{Key: "savings", Name: "Savings", Kind: model.CategoryExpense},
		{Key: "taxes", Name: "Taxes", Kind: model.CategoryExpense},

		{Key: "salary", Name: "Salary", Kind: model.CategoryIncome},
		{Key: "business", Name: "Business", Kind: model.CategoryIncome},
		{Key: "rental", Name: "Rental", Kind: model.CategoryIncome},
		{Key: "interest", Name: "Interest", Kind: model.CategoryIncome},
		{Key: "dividend", Name: "Dividend", Kind: model.CategoryIncome},
		{Key: "capital", Name: "Capital", Kind: model.CategoryIncome},
		{Key: "gifts_received", Name: "Gifts", Kind: model.CategoryIncome},
	}
}
