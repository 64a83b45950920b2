package table

import (
	"strings"
	"testing"
	"time"

	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/metrics"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestResultsFormatter_FailedCasesOnly(t *testing.T) {
	// Disable colors for consistent testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := logrus.New()
	formatter := NewResultsFormatter(log, NewRenderer(log))

	outcomes := []*engine.Outcome{
		{
			Index:      0,
			Definition: &testdef.Definition{UserAgent: "bot", URL: "/public", Expected: true, Line: 1},
			Actual:     true,
			Passed:     true,
		},
		{
			Index:      1,
			Definition: &testdef.Definition{UserAgent: "bingbot", URL: "/private", Expected: true, Line: 7},
			Actual:     false,
			Passed:     false,
		},
	}

	output := formatter.Format(outcomes)

	assert.Contains(t, output, "Failed Test Cases")
	assert.Contains(t, output, "bingbot")
	assert.Contains(t, output, "/private")
	assert.Contains(t, output, "7")
	assert.Contains(t, output, "allowed")
	assert.Contains(t, output, "denied")
	assert.Contains(t, output, "✗ FAIL")
	assert.NotContains(t, output, "/public")
}

func TestResultsFormatter_NoFailures(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := logrus.New()
	formatter := NewResultsFormatter(log, NewRenderer(log))

	assert.Equal(t, "\nNo failed test cases", formatter.Format(nil))
}

func TestResultsFormatter_TruncatesLongURLs(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := logrus.New()
	formatter := NewResultsFormatter(log, NewRenderer(log))

	longURL := "/" + strings.Repeat("a", 200)
	output := formatter.Format([]*engine.Outcome{{
		Definition: &testdef.Definition{UserAgent: "bot", URL: longURL, Expected: false, Line: 1},
		Actual:     true,
	}})

	assert.NotContains(t, output, longURL)
	assert.Contains(t, output, "...")
}

func TestSummaryFormatter_Format(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := logrus.New()
	formatter := NewSummaryFormatter(log, NewRenderer(log))

	output := formatter.Format(metrics.Summary{Total: 4, Passed: 3, Failed: 1, Elapsed: 20 * time.Millisecond})

	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "3 (75.0%)")
	assert.Contains(t, output, "1 (25.0%)")
	assert.Contains(t, output, "20ms")
}
