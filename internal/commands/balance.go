package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func newBalanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show per-account balances and the total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			a.sweepOnStart(ctx)

			snap, err := a.store.Snapshot(ctx)
			if err != nil {
				return err
			}

			for _, account := range a.registry.Accounts() {
				if account.Key == model.AccountCreditCard && !snap.HasCreditCard {
					continue
				}
				fmt.Printf("%-10s %s%s\n", account.Name, snap.CurrencySymbol, snap.Balance(account.Key).StringFixed(2))
			}
			fmt.Printf("%-10s %s%s\n", "Total", snap.CurrencySymbol, snap.TotalBalance().StringFixed(2))
			return nil
		},
	}
	return cmd
}
