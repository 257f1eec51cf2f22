// Package cli provides the statement-extractor commands.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paisaledger/statement-extractor/internal/config"
	"github.com/paisaledger/statement-extractor/internal/logger"
)

var (
	envFile string
	debug   bool

	log zerolog.Logger
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "statement-extractor",
	Short: "Extract draft transactions from bank statements and screenshots",
	Long: `statement-extractor converts unstructured bank-statement input
(PDF statements, bank CSV exports, and payment-app screenshots) into
normalized draft transactions for review.

Example:
  statement-extractor extract statement.pdf
  statement-extractor extract --format csv --output drafts.csv export.csv
  statement-extractor serve`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(debug)
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default: .env if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}
