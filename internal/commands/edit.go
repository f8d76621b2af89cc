package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

func newEditCommand() *cobra.Command {
	var (
		txType string
		from   string
		to     string
		amount string
		note   string
		when   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace an existing transaction's fields",
		Args:  cobra.ExactArgs(1),
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

			tx, err := a.engine.Edit(ctx, args[0], ledger.TransactionParams{
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
				fmt.Printf("Updated %s, now scheduled for %s\n", tx.ID, timestamp.Format("02 Jan 2006"))
			} else {
				fmt.Printf("Updated %s\n", tx.ID)
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
