package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"titan/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "titanctl",
	Short: "Titan - topic selection and dynamic pricing",
	Long: `titanctl drives the content pipeline's topic ledger and pricing engine
from the command line, using the same configuration as the server.

Commands:
  topics next        Select and record the next topic(s)
  topics stats       Show ledger statistics
  topics reset       Forget used keywords of a category
  topics plan        Show the curated daily plan
  price quote        Price a product for a visitor

Examples:
  titanctl topics next -n 3
  titanctl topics plan --date 2026-12-01 --count 5
  titanctl price quote single_card --ua "iPhone 15 Pro" --postcode "SW1A 1AA"`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(commands.TopicsCmd)
	rootCmd.AddCommand(commands.PriceCmd)
}

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
