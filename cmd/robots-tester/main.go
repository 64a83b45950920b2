// Package main is the entry point for the robots-tester application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethpandaops/robots-tester/cmd"
	"github.com/joho/godotenv"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
)

func main() {
	envFile, err := parseEnvFlag(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Values from the env file must be visible before config is resolved
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(1)
	}

	// LOG_LEVEL may come from the env file
	cmd.InitLogger()
	cmd.Execute()
}

// parseEnvFlag extracts the --env value; cobra parses the flag again and ignores it
func parseEnvFlag(args []string) (string, error) {
	for i, arg := range args {
		if arg == envFlag {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s flag requires a value", envFlag)
			}
			return args[i+1], nil
		}
		if strings.HasPrefix(arg, envFlagEqual) {
			return arg[len(envFlagEqual):], nil
		}
	}

	return "", nil
}

// loadEnvFile loads the specified environment file
func loadEnvFile(file string) error {
	if file == "" {
		file = ".env"
	}

	// Try to load the specified env file
	if err := godotenv.Load(file); err != nil {
		// If it's the default .env file and it doesn't exist, that's okay
		if file == ".env" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}
