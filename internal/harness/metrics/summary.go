// Package metrics reduces evaluation outcomes into run statistics.
package metrics

import (
	"time"

	"github.com/ethpandaops/robots-tester/internal/harness/engine"
)

// Summary provides aggregate statistics for one run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// Summarize counts passed and failed outcomes. An empty slice is a vacuous success.
func Summarize(outcomes []*engine.Outcome, elapsed time.Duration) Summary {
	summary := Summary{
		Total:   len(outcomes),
		Elapsed: elapsed,
	}

	for _, outcome := range outcomes {
		if outcome.Passed {
			summary.Passed++
		}
	}
	summary.Failed = summary.Total - summary.Passed

	return summary
}

// Success reports whether no case failed.
func (s Summary) Success() bool {
	return s.Failed == 0
}

// PassRate is the percentage of passed cases, 100 for an empty run.
func (s Summary) PassRate() float64 {
	if s.Total == 0 {
		return 100.0
	}

	return float64(s.Passed) / float64(s.Total) * 100.0
}
