// Package harness runs robots policy test suites end to end.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethpandaops/robots-tester/internal/config"
	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/metrics"
	"github.com/ethpandaops/robots-tester/internal/harness/policy"
	"github.com/ethpandaops/robots-tester/internal/harness/report"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrTestsFailed is returned by callers when a run finished with failed cases.
	ErrTestsFailed = errors.New("test cases failed")

	errNoDecider  = errors.New("no policy decider configured")
	errNoEmitter  = errors.New("report requested but no emitter configured")
	errNoTestFile = errors.New("test case file is required")
)

// Request describes a single run.
type Request struct {
	TestCaseFile   string
	PolicyFile     string
	Decider        policy.Decider
	GenerateReport bool
	// Start is when the run began; zero means when Run is called.
	Start time.Time
}

// Result contains everything a run produced.
type Result struct {
	RunID      string
	ReportID   string
	Outcomes   []*engine.Outcome
	Summary    metrics.Summary
	ReportPath string
	// ReportErr is set when the report failed under the warn policy.
	ReportErr error
}

// Success reports whether every case passed and any requested report was written.
func (r *Result) Success() bool {
	return r.Summary.Success() && r.ReportErr == nil
}

// OrchestratorConfig contains the components a run is built from.
type OrchestratorConfig struct {
	Logger        logrus.FieldLogger
	Loader        testdef.Loader
	Engine        engine.Engine
	Emitter       report.Emitter
	ReportFailure string
}

// Orchestrator coordinates loading, evaluation, aggregation and reporting.
// It holds no per-run state, so one instance can serve repeated runs.
type Orchestrator struct {
	loader        testdef.Loader
	engine        engine.Engine
	emitter       report.Emitter
	reportFailure string
	log           logrus.FieldLogger
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(cfg *OrchestratorConfig) *Orchestrator {
	reportFailure := cfg.ReportFailure
	if reportFailure == "" {
		reportFailure = config.ReportFailureAbort
	}

	return &Orchestrator{
		loader:        cfg.Loader,
		engine:        cfg.Engine,
		emitter:       cfg.Emitter,
		reportFailure: reportFailure,
		log:           cfg.Logger.WithField("component", "orchestrator"),
	}
}

// Run loads the test cases, evaluates them and, in parallel, summarises the
// outcomes and writes the report. Failed cases are not an error; check
// Result.Success.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*Result, error) {
	start := req.Start
	if start.IsZero() {
		start = time.Now()
	}

	if req.TestCaseFile == "" {
		return nil, errNoTestFile
	}

	if req.Decider == nil {
		return nil, errNoDecider
	}

	if req.GenerateReport && o.emitter == nil {
		return nil, errNoEmitter
	}

	result := &Result{
		RunID:    uuid.NewString(),
		ReportID: report.Identifier(req.TestCaseFile),
	}

	log := o.log.WithFields(logrus.Fields{
		"run_id":    result.RunID,
		"test_file": req.TestCaseFile,
	})

	definitions, err := o.loader.Load(req.TestCaseFile)
	if err != nil {
		return nil, fmt.Errorf("loading test cases: %w", err)
	}

	log.WithField("cases", len(definitions)).Debug("evaluating test cases")

	outcomes, err := o.engine.Evaluate(ctx, definitions, req.Decider)
	if err != nil {
		return nil, fmt.Errorf("evaluating test cases: %w", err)
	}
	result.Outcomes = outcomes

	// Both branches only read outcomes.
	var g errgroup.Group

	g.Go(func() error {
		result.Summary = metrics.Summarize(outcomes, time.Since(start))
		return nil
	})

	if req.GenerateReport {
		g.Go(func() error {
			path, err := o.emitter.Emit(result.ReportID, outcomes,
				report.Property{Name: "run_id", Value: result.RunID},
				report.Property{Name: "policy_file", Value: req.PolicyFile},
			)
			if err == nil {
				result.ReportPath = path
				return nil
			}

			if o.reportFailure == config.ReportFailureWarn {
				log.WithError(err).Warn("failed to write test report")
				result.ReportErr = err
				return nil
			}

			return fmt.Errorf("generating test report: %w", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"total":   result.Summary.Total,
		"passed":  result.Summary.Passed,
		"failed":  result.Summary.Failed,
		"elapsed": result.Summary.Elapsed,
	}).Info("run complete")

	return result, nil
}
