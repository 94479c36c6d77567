package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// catalogCmd is the parent command for catalog merge operations.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Merge the remote catalog into the product table",
}

// catalogRefreshCmd rebuilds the product table from the full remote catalog.
var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the product table from the full remote catalog",
	Long: `Fetches the entire remote catalog and replaces the product table with
it. Catalog-owned columns are overwritten; locally-added columns keep their
values for rows whose SKU is still in the catalog. Rows whose SKU left the
catalog are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.service.RefreshCatalog(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("refreshed: rows=%d\n", report.RowsWritten)
		return nil
	},
}

// catalogImportCmd merges a single remote product into the product table.
var catalogImportCmd = &cobra.Command{
	Use:   "import <product-id>",
	Short: "Merge one remote product (and its variants) into the product table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || productID <= 0 {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.service.ImportProduct(context.Background(), productID)
		if err != nil {
			return err
		}
		fmt.Printf("imported: updated=%d added=%d\n", report.Updated, report.Added)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	RootCmd.AddCommand(catalogCmd)
}
