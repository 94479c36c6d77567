package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// backfillCmd resolves remote identities for rows missing a product_id.
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Resolve remote product ids for rows that only have a SKU",
	Long: `Looks up every product row with a SKU but no product_id against the
remote catalog and writes the resolved product and combination ids back.
Unknown SKUs stay unresolved and can be retried on a later pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.service.BackfillIdentities(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("backfilled: resolved=%d\n", report.Resolved)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(backfillCmd)
}
