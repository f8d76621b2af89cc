package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func newAddCommand() *cobra.Command {
	var (
		txType string
		from   string
		to     string
		amount string
		note   string
		when   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			a.sweepOnStart(ctx)

			dec, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			timestamp, err := parseWhen(when, time.Now())
			if err != nil {
				return err
			}

			tx, err := a.engine.Create(ctx, ledger.TransactionParams{
				Type:      model.Type(txType),
				From:      from,
				To:        to,
				Timestamp: timestamp,
				Amount:    dec,
				Note:      note,
			})
			if err != nil {
				return err
			}

			if tx.Scheduled {
				fmt.Printf("Scheduled %s %s for %s (%s)\n", txType, amount, timestamp.Format("02 Jan 2006"), tx.ID)
			} else {
				fmt.Printf("Added %s %s (%s)\n", txType, amount, tx.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "transaction type: expense, income or transfer (required)")
	cmd.Flags().StringVar(&from, "from", "", "source account or income category key")
	cmd.Flags().StringVar(&to, "to", "", "destination category or account key")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 42.50 (required)")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	cmd.Flags().StringVar(&when, "date", "", "effective date (YYYY-MM-DD, defaults to now)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
