package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/config"
	"github.com/pocketfin-dev/pocketfin/internal/model"
	"github.com/pocketfin-dev/pocketfin/internal/store"
)

func newInitCommand() *cobra.Command {
	var (
		dbPath        string
		currency      string
		bank          string
		savings       string
		cash          string
		creditCard    string
		hasCreditCard bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and record starting balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("reading config flag: %w", err)
			}

			balances := map[string]decimal.Decimal{}
			for key, raw := range map[string]string{
				model.AccountBank:       bank,
				model.AccountSavings:    savings,
				model.AccountCash:       cash,
				model.AccountCreditCard: creditCard,
			} {
				dec, err := decimal.NewFromString(raw)
				if err != nil {
					return fmt.Errorf("invalid balance for %s: %w", key, err)
				}
				balances[key] = dec
			}

			return runInit(configPath, dbPath, currency, hasCreditCard, balances)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "pocketfin.db", "database file path")
	cmd.Flags().StringVar(&currency, "currency", "$", "preferred currency symbol")
	cmd.Flags().StringVar(&bank, "bank", "0", "starting bank balance")
	cmd.Flags().StringVar(&savings, "savings", "0", "starting savings balance")
	cmd.Flags().StringVar(&cash, "cash", "0", "starting cash balance")
	cmd.Flags().StringVar(&creditCard, "credit-card", "0", "starting credit card balance")
	cmd.Flags().BoolVar(&hasCreditCard, "has-credit-card", false, "include the credit card in totals")

	return cmd
}

func runInit(configPath, dbPath, currency string, hasCreditCard bool, balances map[string]decimal.Decimal) error {
	cfg := config.Default(dbPath, currency)
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	snap := model.Snapshot{
		CurrencySymbol: currency,
		HasCreditCard:  hasCreditCard,
		Balances:       balances,
	}
	if err := st.InitSnapshot(context.Background(), snap); err != nil {
		return err
	}

	fmt.Printf("Initialized pocketfin ledger at %s\n", dbPath)
	return nil
}
