package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bookingwizard/cron"
	"bookingwizard/utils"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run only the booking notification worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.GetLogger()
		defer logger.Sync()

		notifier, err := newEmailNotifier(logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cron.RunNotificationWorker(ctx, notifier, logger)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
