package table

import (
	"strconv"

	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/format"
	"github.com/sirupsen/logrus"
)

// maxURLWidth caps the URL column so long query strings do not wrap the table.
const maxURLWidth = 60

// ResultsFormatter formats failed test cases as a table.
type ResultsFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewResultsFormatter creates a new results table formatter.
func NewResultsFormatter(log logrus.FieldLogger, renderer Renderer) *ResultsFormatter {
	return &ResultsFormatter{
		log:      log.WithField("component", "table.results_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format lists every failed outcome with its source line, expected and actual decision.
func (f *ResultsFormatter) Format(outcomes []*engine.Outcome) string {
	var (
		headers = []string{"Line", "User Agent", "URL", "Expected", "Actual", "Status"}
		rows    = make([][]string, 0)
	)

	for _, outcome := range outcomes {
		if outcome.Passed {
			continue
		}

		definition := outcome.Definition
		rows = append(rows, []string{
			strconv.Itoa(definition.Line),
			definition.UserAgent,
			format.Truncate(definition.URL, maxURLWidth),
			f.colors.FormatDecision(definition.Expected),
			f.colors.FormatDecision(outcome.Actual),
			f.colors.FormatStatus(outcome.Passed),
		})
	}

	if len(rows) == 0 {
		return "\n" + f.colors.Success("No failed test cases")
	}

	f.log.WithField("failed", len(rows)).Debug("formatting failed cases")

	return "\n" + f.colors.Header("▸ Failed Test Cases") + "\n\n" + f.renderer.RenderToString(headers, rows)
}
