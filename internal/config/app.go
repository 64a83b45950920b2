// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	errRobotsFileRequired   = errors.New("robots file path is required")
	errTestCaseFileRequired = errors.New("test case file path is required")
	errInvalidConcurrency   = errors.New("concurrency must not be negative")
	errInvalidReportFailure = errors.New("report failure policy must be 'abort' or 'warn'")
)

// AppConfig holds the harness configuration loaded from environment variables,
// an optional YAML file and command line flags.
type AppConfig struct {
	RobotsFile     string `yaml:"robots_file"`
	TestCaseFile   string `yaml:"test_case_file"`
	GenerateReport bool   `yaml:"generate_report"`
	UserAgent      string `yaml:"user_agent"`
	Concurrency    int    `yaml:"concurrency"`
	SkipHeader     bool   `yaml:"skip_header"`
	ReportDir      string `yaml:"report_dir"`
	ReportFailure  string `yaml:"report_failure"`
}

// Load reads configuration from environment variables and .env file.
func Load() (*AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &AppConfig{
		RobotsFile:    getEnv("ROBOTS_FILE", ""),
		TestCaseFile:  getEnv("TEST_CASE_FILE", ""),
		UserAgent:     getEnv("USER_AGENT", DefaultUserAgent),
		ReportDir:     getEnv("REPORT_DIR", DefaultReportDir),
		ReportFailure: getEnv("REPORT_FAILURE", ReportFailureAbort),
	}

	generateReport, err := strconv.ParseBool(getEnv("GENERATE_REPORT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATE_REPORT: %w", err)
	}
	cfg.GenerateReport = generateReport

	skipHeader, err := strconv.ParseBool(getEnv("SKIP_HEADER", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SKIP_HEADER: %w", err)
	}
	cfg.SkipHeader = skipHeader

	// 0 lets the engine pick one worker per CPU
	concurrency, err := strconv.Atoi(getEnv("CONCURRENCY", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONCURRENCY: %w", err)
	}
	cfg.Concurrency = concurrency

	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *AppConfig) Validate() error {
	if c.RobotsFile == "" {
		return errRobotsFileRequired
	}

	if c.TestCaseFile == "" {
		return errTestCaseFileRequired
	}

	if c.Concurrency < 0 {
		return errInvalidConcurrency
	}

	if c.ReportFailure != ReportFailureAbort && c.ReportFailure != ReportFailureWarn {
		return fmt.Errorf("%w: got %q", errInvalidReportFailure, c.ReportFailure)
	}

	return nil
}

func (c *AppConfig) String() string {
	concurrencyDisplay := strconv.Itoa(c.Concurrency)
	if c.Concurrency == 0 {
		concurrencyDisplay = "(one per CPU)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
Robots File:       %s
Test Case File:    %s
Generate Report:   %t
Report Directory:  %s
Report Failure:    %s
User Agent:        %s
Concurrency:       %s
Skip Header:       %t`,
		displayOrUnset(c.RobotsFile),
		displayOrUnset(c.TestCaseFile),
		c.GenerateReport,
		c.ReportDir,
		c.ReportFailure,
		c.UserAgent,
		concurrencyDisplay,
		c.SkipHeader,
	)
}

func displayOrUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
