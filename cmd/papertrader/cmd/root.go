package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrader",
	Short: "A deterministic paper-trading simulation engine",
	Long: `Papertrader maintains a virtual cash account and security positions,
accepts market and limit orders, executes them against an externally
supplied stream of price ticks, and reports consistent valuation and
profit/loss figures.

It provides tools for:
  - Running scripted demos of the order lifecycle
  - Replaying recorded price ticks against a configured account
  - Journaling transactions and orders to CSV, JSON, or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
