package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/importer"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			a.sweepOnStart(ctx)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			res, err := importer.Import(ctx, importer.DefaultRegistry(), format, f, a.engine)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d transaction(s)\n", res.Created)
			for _, skip := range res.Skipped {
				fmt.Printf("  row %d skipped: %v\n", skip.Row, skip.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "import file format")

	return cmd
}
