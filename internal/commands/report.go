package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/analytics"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func newReportCommand() *cobra.Command {
	var (
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show income/expense totals and per-category spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			a.sweepOnStart(ctx)

			now := time.Now()
			from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			to := now
			if fromFlag != "" {
				if from, err = parseWhen(fromFlag, now); err != nil {
					return err
				}
			}
			if toFlag != "" {
				if to, err = parseWhen(toFlag, now); err != nil {
					return err
				}
			}

			svc := analytics.NewService(a.store)
			svc.InvalidateOn(a.store)

			income, err := svc.TotalByType(ctx, model.TypeIncome, from, to)
			if err != nil {
				return err
			}
			expense, err := svc.TotalByType(ctx, model.TypeExpense, from, to)
			if err != nil {
				return err
			}

			symbol := a.cfg.Currency.Symbol
			fmt.Printf("%s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
			fmt.Printf("Income   %s%s\n", symbol, income.StringFixed(2))
			fmt.Printf("Expense  %s%s\n", symbol, expense.StringFixed(2))

			fmt.Println("\nSpending by category:")
			for _, cat := range a.registry.CategoriesByKind(model.CategoryExpense) {
				sum, err := svc.CategorySpending(ctx, cat.Key, from, to)
				if err != nil {
					return err
				}
				if sum.IsZero() {
					continue
				}
				fmt.Printf("  %-14s %s%s\n", cat.Name, symbol, sum.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "range start (YYYY-MM-DD, defaults to month start)")
	cmd.Flags().StringVar(&toFlag, "to", "", "range end (YYYY-MM-DD, defaults to now)")

	return cmd
}
