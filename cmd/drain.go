package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// drainCmd runs one drain pass over the sync queue.
var drainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Push queued stock changes to the remote store",
	Long: `Processes every queued sync record once: reads the remote quantity,
clamps the recorded target by the record's raise policy, and pushes the
difference as a relative adjustment. Each record is marked done or error and
persisted before the next one starts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.service.DrainQueue(context.Background())
		if err != nil {
			return err
		}

		rt.logger.Info("Drain finished",
			zap.Int("ok", report.OK),
			zap.Int("skipped", report.Skipped),
			zap.Int("errors", report.Errors),
		)
		fmt.Printf("drained: ok=%d skipped=%d errors=%d\n", report.OK, report.Skipped, report.Errors)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(drainCmd)
}
