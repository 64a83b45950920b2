package table

import (
	"fmt"

	"github.com/ethpandaops/robots-tester/internal/harness/format"
	"github.com/ethpandaops/robots-tester/internal/harness/metrics"
	"github.com/sirupsen/logrus"
)

// SummaryFormatter formats summary statistics as a table.
type SummaryFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewSummaryFormatter creates a new summary table formatter.
func NewSummaryFormatter(log logrus.FieldLogger, renderer Renderer) *SummaryFormatter {
	return &SummaryFormatter{
		log:      log.WithField("component", "table.summary_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts a run summary into a formatted table string.
func (f *SummaryFormatter) Format(summary metrics.Summary) string {
	passRate := summary.PassRate()

	passedValue := fmt.Sprintf("%d (%s)", summary.Passed, f.colors.FormatPercentage(passRate))
	if summary.Passed == summary.Total {
		passedValue = f.colors.Success(fmt.Sprintf("%d (%.1f%%)", summary.Passed, passRate))
	}

	failedValue := fmt.Sprintf("%d (%.1f%%)", summary.Failed, 100.0-passRate)
	if summary.Failed > 0 {
		failedValue = f.colors.Failure(failedValue)
	} else {
		failedValue = f.colors.Success(failedValue)
	}

	var (
		headers = []string{"Metric", "Value"}
		rows    = [][]string{
			{"Total Cases", f.colors.Bold(fmt.Sprintf("%d", summary.Total))},
			{"Passed", passedValue},
			{"Failed", failedValue},
			{"Elapsed", format.Duration(summary.Elapsed)},
		}
	)

	return "\n" + f.colors.Header("▸ Summary") + "\n\n" + f.renderer.RenderToString(headers, rows)
}
