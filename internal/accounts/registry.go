package accounts

import "github.com/pocketfin-dev/pocketfin/internal/model"

// Registry provides in-memory lookup over accounts and categories.
type Registry struct {
	accounts   []model.Account
	categories []model.Category
	byAccount  map[string]model.Account
	byCategory map[string]model.Category
}

// NewRegistry creates a Registry from explicit account and category lists.
func NewRegistry(accounts []model.Account, categories []model.Category) *Registry {
	byAccount := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byAccount[a.Key] = a
	}
	byCategory := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byCategory[c.Key] = c
	}
	return &Registry{
		accounts:   accounts,
		categories: categories,
		byAccount:  byAccount,
		byCategory: byCategory,
	}
}

// Default returns a Registry with the built-in accounts and categories.
func Default() *Registry {
	return NewRegistry(defaultAccounts(), defaultCategories())
}

// Accounts returns all accounts.
func (r *Registry) Accounts() []model.Account {
	return r.accounts
}

// Account returns an account by key.
func (r *Registry) Account(key string) (model.Account, bool) {
	a, ok := r.byAccount[key]
	return a, ok
}

// AccountExists reports whether an account key exists.
func (r *Registry) AccountExists(key string) bool {
	_, ok := r.byAccount[key]
	return ok
}

// Category returns a category by key.
func (r *Registry) Category(key string) (model.Category, bool) {
	c, ok := r.byCategory[key]
	return c, ok
}

// CategoryExists reports whether a category key exists with the given
// kind.
func (r *Registry) CategoryExists(key string, kind model.CategoryKind) bool {
	c, ok := r.byCategory[key]
	return ok && c.Kind == kind
}

// CategoriesByKind returns all categories of the given kind.
func (r *Registry) CategoriesByKind(kind model.CategoryKind) []model.Category {
	var result []model.Category
	for _, c := range r.categories {
		if c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}
