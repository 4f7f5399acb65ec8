package cmd

import (
	"bookingwizard/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookingwizard",
	Short: "Guided booking request service",
	Long: `Serves the multi-step booking wizard API, accepts finished booking
requests and delivers booking notifications by email.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
