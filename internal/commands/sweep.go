package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Settle scheduled transactions that have come due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			settled, err := a.engine.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			if settled == 0 {
				fmt.Println("Nothing due")
			} else {
				fmt.Printf("Settled %d scheduled transaction(s)\n", settled)
			}
			return nil
		},
	}
	return cmd
}
