package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func newHistoryCommand() *cobra.Command {
	var (
		all   bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			a.sweepOnStart(ctx)

			var txns []model.Transaction
			if all {
				txns, err = a.store.RecentTransactions(ctx, limit)
			} else {
				now := time.Now()
				start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
				txns, err = a.store.TransactionsInRange(ctx, start, now)
			}
			if err != nil {
				return err
			}

			if len(txns) == 0 {
				fmt.Println("No transactions")
				return nil
			}
			for _, tx := range txns {
				status := ""
				if tx.Scheduled {
					status = " [scheduled]"
				}
				fmt.Printf("%s  %s  %-8s  %s -> %s  %s%s\n",
					tx.ID, tx.Timestamp.Format("2006-01-02"), tx.Type,
					tx.From, tx.To, tx.Amount.StringFixed(2), status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list all transactions instead of this month")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows with --all (0 = unlimited)")

	return cmd
}
