// Package output renders run results on the console.
package output

import (
	"fmt"
	"io"

	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/format"
	"github.com/ethpandaops/robots-tester/internal/harness/metrics"
	"github.com/ethpandaops/robots-tester/internal/harness/table"
	"github.com/sirupsen/logrus"
)

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintSummary(summary metrics.Summary)
	PrintDetails(summary metrics.Summary, outcomes []*engine.Outcome)
}

type formatter struct {
	writer io.Writer

	// Table formatting components
	resultsFormatter *table.ResultsFormatter
	summaryFormatter *table.SummaryFormatter
}

// NewFormatter creates a new output formatter
func NewFormatter(log logrus.FieldLogger, writer io.Writer) Formatter {
	renderer := table.NewRenderer(log)

	return &formatter{
		writer:           writer,
		resultsFormatter: table.NewResultsFormatter(log, renderer),
		summaryFormatter: table.NewSummaryFormatter(log, renderer),
	}
}

// PrintSummary prints the four summary lines
func (f *formatter) PrintSummary(summary metrics.Summary) {
	fmt.Fprintf(f.writer, "Test cases run: %d\n", summary.Total)
	fmt.Fprintf(f.writer, "Passed tests: %d\n", summary.Passed)
	fmt.Fprintf(f.writer, "Failed tests: %d\n", summary.Failed)
	fmt.Fprintf(f.writer, "Elapsed time %s\n", format.Milliseconds(summary.Elapsed))
}

// PrintDetails prints the failed case table followed by the summary table
func (f *formatter) PrintDetails(summary metrics.Summary, outcomes []*engine.Outcome) {
	fmt.Fprintln(f.writer, f.resultsFormatter.Format(outcomes))
	fmt.Fprintln(f.writer, f.summaryFormatter.Format(summary))
}
