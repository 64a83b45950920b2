package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethpandaops/robots-tester/internal/config"
	"github.com/ethpandaops/robots-tester/internal/harness"
	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/output"
	"github.com/ethpandaops/robots-tester/internal/harness/policy"
	"github.com/ethpandaops/robots-tester/internal/harness/report"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	flagRobotsFile     = "robots-text-file-path"
	flagTestCaseFile   = "test-case-file-path"
	flagGenerateReport = "generate-test-report"
	flagConcurrency    = "concurrency"
	flagUserAgent      = "user-agent"
	flagSkipHeader     = "skip-header"
	flagReportDir      = "report-dir"
	flagReportFailure  = "report-failure"
)

var (
	// Run flags, shared by every subcommand
	runRobotsFile     string
	runTestCaseFile   string
	runGenerateReport bool
	runConcurrency    int
	runUserAgent      string
	runSkipHeader     bool
	runReportDir      string
	runReportFailure  string
	runConfigFile     string
	runEnvFile        string
	runVerbose        bool
	runDetails        bool
)

func registerRunFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&runRobotsFile, flagRobotsFile, "r", "", "Path to the robots.txt file")
	flags.StringVarP(&runTestCaseFile, flagTestCaseFile, "t", "", "Path to the test case CSV file")
	flags.BoolVarP(&runGenerateReport, flagGenerateReport, "g", false, "Write a JUnit XML report")
	flags.IntVar(&runConcurrency, flagConcurrency, 0, "Number of evaluation workers (0 = one per CPU)")
	flags.StringVar(&runUserAgent, flagUserAgent, config.DefaultUserAgent, "Agent used when a case leaves the user agent empty")
	flags.BoolVar(&runSkipHeader, flagSkipHeader, false, "Treat the first CSV row as a header")
	flags.StringVar(&runReportDir, flagReportDir, config.DefaultReportDir, "Directory the report is written to")
	flags.StringVar(&runReportFailure, flagReportFailure, config.ReportFailureAbort, "Report write failure policy (abort or warn)")
	flags.StringVar(&runConfigFile, "config", "", "YAML config file (default "+config.DefaultConfigFile+" when present)")
	flags.StringVar(&runEnvFile, "env", "", "Env file loaded before configuration (default .env)")
	flags.BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&runDetails, "details", false, "Print a table of failed cases after the summary")
}

// resolveConfig builds the effective configuration. Flags set on the command
// line win over the YAML file, which wins over the environment.
func resolveConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if runConfigFile != "" {
		if err := cfg.MergeFile(runConfigFile); err != nil {
			return nil, err
		}
	} else if _, err := cfg.MergeDefaultFile(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed(flagRobotsFile) {
		cfg.RobotsFile = runRobotsFile
	}
	if flags.Changed(flagTestCaseFile) {
		cfg.TestCaseFile = runTestCaseFile
	}
	if flags.Changed(flagGenerateReport) {
		cfg.GenerateReport = runGenerateReport
	}
	if flags.Changed(flagConcurrency) {
		cfg.Concurrency = runConcurrency
	}
	if flags.Changed(flagUserAgent) {
		cfg.UserAgent = runUserAgent
	}
	if flags.Changed(flagSkipHeader) {
		cfg.SkipHeader = runSkipHeader
	}
	if flags.Changed(flagReportDir) {
		cfg.ReportDir = runReportDir
	}
	if flags.Changed(flagReportFailure) {
		cfg.ReportFailure = runReportFailure
	}

	return cfg, nil
}

func runHarness(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runOnce(ctx, newLogger(runVerbose), cfg, cmd.OutOrStdout(), runDetails)
}

// runOnce performs a single pass: build the policy, evaluate every case and
// print the summary. It returns harness.ErrTestsFailed when the run did not
// succeed so the caller can pick the exit status.
func runOnce(ctx context.Context, log logrus.FieldLogger, cfg *config.AppConfig, out io.Writer, details bool) error {
	start := time.Now()

	decider, err := policy.LoadRobotsPolicy(log, cfg.RobotsFile, cfg.UserAgent)
	if err != nil {
		return fmt.Errorf("building policy: %w", err)
	}

	orchestrator := harness.NewOrchestrator(&harness.OrchestratorConfig{
		Logger:        log,
		Loader:        testdef.NewLoader(log, testdef.WithSkipHeader(cfg.SkipHeader)),
		Engine:        engine.NewEngine(log, cfg.Concurrency),
		Emitter:       report.NewEmitter(log, cfg.ReportDir),
		ReportFailure: cfg.ReportFailure,
	})

	result, err := orchestrator.Run(ctx, &harness.Request{
		TestCaseFile:   cfg.TestCaseFile,
		PolicyFile:     cfg.RobotsFile,
		Decider:        decider,
		GenerateReport: cfg.GenerateReport,
		Start:          start,
	})
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(log, out)
	formatter.PrintSummary(result.Summary)

	if details {
		formatter.PrintDetails(result.Summary, result.Outcomes)
	}

	if !result.Success() {
		return harness.ErrTestsFailed
	}

	return nil
}
