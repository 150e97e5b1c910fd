package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motel",
	Short: "Motel booking backend",
	Long:  "Backend for the motel booking website: room catalogue, reservations, invoicing, Stripe webhooks, and guest notification jobs.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
