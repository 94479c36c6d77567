package cmd

import (
	"context"
	"fmt"

	"stock-sync/feature/inventory/models"

	"github.com/spf13/cobra"
)

var (
	txUser     string
	txLocation string
	txQty      float64
	txReason   string
	txNote     string
)

// txCmd records one stock movement from the command line.
var txCmd = &cobra.Command{
	Use:   "tx <sku>",
	Short: "Record a stock movement and enqueue its sync record",
	Long: `Appends a transaction to the ledger, applies the quantity change to
the product's local stock, and enqueues a sync record. Positive changes allow
the later drain to raise the remote level; negative changes may only lower it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		result, err := rt.service.CreateTransaction(context.Background(), models.TxRequest{
			User:      txUser,
			SKU:       args[0],
			Location:  txLocation,
			QtyChange: txQty,
			Reason:    txReason,
			Note:      txNote,
		}, "cli")
		if err != nil {
			return err
		}

		fmt.Printf("recorded: sku=%s new_stock=%v\n", result.SKU, result.NewStock)
		if result.Warning != "" {
			fmt.Println("warning:", result.Warning)
		}
		return nil
	},
}

func init() {
	txCmd.Flags().StringVar(&txUser, "user", "", "User recorded on the ledger entry")
	txCmd.Flags().StringVar(&txLocation, "location", "", "Stock location (defaults to MAIN)")
	txCmd.Flags().Float64Var(&txQty, "qty", 0, "Quantity change, negative for outgoing stock")
	txCmd.Flags().StringVar(&txReason, "reason", "", "Reason for the movement")
	txCmd.Flags().StringVar(&txNote, "note", "", "Free-form note")
	_ = txCmd.MarkFlagRequired("qty")

	RootCmd.AddCommand(txCmd)
}
