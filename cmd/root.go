package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethpandaops/robots-tester/internal/harness"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	rootCmd = &cobra.Command{
		Use:   "robots-tester",
		Short: "Robots Tester - batch test a robots.txt policy",
		Long: `Robots Tester evaluates a table of expected crawl decisions against a
robots.txt policy and reports how many cases passed.

Each row of the test case file is: user agent, URL, expected allowed (true/false).

Example:
  robots-tester -r robots.txt -t cases.csv
  robots-tester -r robots.txt -t cases.csv -g --report-dir reports`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHarness,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Failed cases were already reported in the summary
		if !errors.Is(err, harness.ErrTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()

	InitLogger()
	registerRunFlags(rootCmd)
}

// InitLogger (re)creates the shared logger from LOG_LEVEL.
func InitLogger() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stderr)

	// Set log level from environment variable
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // Default to info
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		// Can't use Logger here since it might not be set up yet
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL '%s', defaulting to 'info'\n", logLevel)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}
