package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/metrics"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_PrintSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFormatter(logrus.New(), buf)

	f.PrintSummary(metrics.Summary{Total: 5, Passed: 4, Failed: 1, Elapsed: 1234 * time.Microsecond})

	expected := "Test cases run: 5\n" +
		"Passed tests: 4\n" +
		"Failed tests: 1\n" +
		"Elapsed time 1.23ms\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatter_PrintSummaryEmptyRun(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFormatter(logrus.New(), buf)

	f.PrintSummary(metrics.Summary{})

	assert.Equal(t, "Test cases run: 0\nPassed tests: 0\nFailed tests: 0\nElapsed time 0.00ms\n", buf.String())
}

func TestFormatter_PrintDetails(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	f := NewFormatter(logrus.New(), buf)

	outcomes := []*engine.Outcome{{
		Definition: &testdef.Definition{UserAgent: "bot", URL: "/private", Expected: true, Line: 3},
		Actual:     false,
		Passed:     false,
	}}
	f.PrintDetails(metrics.Summary{Total: 1, Failed: 1}, outcomes)

	assert.Contains(t, buf.String(), "Failed Test Cases")
	assert.Contains(t, buf.String(), "/private")
	assert.Contains(t, buf.String(), "Summary")
}
