package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// Querier is the slice of the store the analytics layer reads from.
type Querier interface {
	SumByType(ctx context.Context, typ model.Type, from, to time.Time) (decimal.Decimal, error)
	CategoryExpenseSum(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error)
	CategoryIncomeSum(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error)
}

// Subscriber delivers change notifications from the store.
type Subscriber interface {
	Subscribe(fn func())
}

// Service answers aggregate questions for reporting. Sums are cached and
// the cache is flushed whenever the store reports a change.
type Service struct {
	store Querier
	cache *cache.Cache
}

// NewService creates an analytics service over the given store slice.
func NewService(store Querier) *Service {
	return &Service{
		store: store,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// InvalidateOn flushes the cache on every store change notification.
func (s *Service) InvalidateOn(sub Subscriber) {
	sub.Subscribe(s.cache.Flush)
}

// MonthTotals returns income and expense totals from the start of now's
// month up to now.
func (s *Service) MonthTotals(ctx context.Context, now time.Time) (income, expense decimal.Decimal, err error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	income, err = s.TotalByType(ctx, model.TypeIncome, start, now)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expense, err = s.TotalByType(ctx, model.TypeExpense, start, now)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return income, expense, nil
}

// TotalByType returns the cached sum of one transaction type over a date
// range.
func (s *Service) TotalByType(ctx context.Context, typ model.Type, from, to time.Time) (decimal.Decimal, error) {
	key := fmt.Sprintf("type:%s:%d:%d", typ, from.UnixMilli(), to.UnixMilli())
	return s.cached(key, func() (decimal.Decimal, error) {
		return s.store.SumByType(ctx, typ, from, to)
	})
}

// CategorySpending returns the cached expense total for one category
// over a date range.
func (s *Service) CategorySpending(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error) {
	key := fmt.Sprintf("spend:%s:%d:%d", categoryKey, from.UnixMilli(), to.UnixMilli())
	return s.cached(key, func() (decimal.Decimal, error) {
		return s.store.CategoryExpenseSum(ctx, categoryKey, from, to)
	})
}

// CategoryIncome returns the cached income total for one category over a
// date range.
func (s *Service) CategoryIncome(ctx context.Context, categoryKey string, from, to time.Time) (decimal.Decimal, error) {
	key := fmt.Sprintf("income:%s:%d:%d", categoryKey, from.UnixMilli(), to.UnixMilli())
	return s.cached(key, func() (decimal.Decimal, error) {
		return s.store.CategoryIncomeSum(ctx, categoryKey, from, to)
	})
}

func (s *Service) cached(key string, compute func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(decimal.Decimal), nil
	}
	sum, err := compute()
	if err != nil {
		return decimal.Zero, err
	}
	s.cache.Set(key, sum, cache.DefaultExpiration)
	return sum, nil
}
