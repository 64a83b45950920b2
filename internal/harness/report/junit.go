// Package report writes evaluation outcomes as a JUnit XML test report.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethpandaops/robots-tester/internal/config"
	"github.com/ethpandaops/robots-tester/internal/harness/engine"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/sirupsen/logrus"
)

const (
	failureType    = "assert_eq"
	failureMessage = "not equal"
)

// Error is returned when the report file cannot be created or written.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("writing report %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Property is a name/value pair attached to the report's test suite.
type Property struct {
	Name  string
	Value string
}

// Emitter renders outcomes into a report file.
type Emitter interface {
	Emit(id string, outcomes []*engine.Outcome, properties ...Property) (string, error)
}

type emitter struct {
	dir string
	log logrus.FieldLogger
}

// NewEmitter creates a JUnit emitter writing into dir. An empty dir means the
// working directory.
func NewEmitter(log logrus.FieldLogger, dir string) Emitter {
	if dir == "" {
		dir = config.DefaultReportDir
	}

	return &emitter{
		dir: dir,
		log: log.WithField("component", "junit_emitter"),
	}
}

// Emit writes one test suite named id holding one test case per outcome, and
// returns the path of the written file. The file is synced before returning.
func (e *emitter) Emit(id string, outcomes []*engine.Outcome, properties ...Property) (string, error) {
	path := filepath.Join(e.dir, FileName(id))

	suites := Build(id, outcomes, properties...)

	f, err := os.Create(path) //nolint:gosec // G304: Report path derived from configured directory
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}

	if err := suites.WriteXML(f); err != nil {
		_ = f.Close()
		return "", &Error{Path: path, Err: err}
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", &Error{Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return "", &Error{Path: path, Err: err}
	}

	e.log.WithFields(logrus.Fields{
		"path":  path,
		"cases": len(outcomes),
	}).Info("wrote test report")

	return path, nil
}

// Build assembles the JUnit document for outcomes without writing it.
func Build(id string, outcomes []*engine.Outcome, properties ...Property) *junit.Testsuites {
	suite := junit.Testsuite{
		Name: id,
		Time: seconds(0),
	}

	for _, property := range properties {
		suite.AddProperty(property.Name, property.Value)
	}

	for _, outcome := range outcomes {
		// Per-case timing is not tracked.
		testcase := junit.Testcase{
			Name:      CaseName(outcome.Definition),
			Classname: id,
			Time:      seconds(0),
		}

		if !outcome.Passed {
			testcase.Failure = &junit.Result{
				Message: failureMessage,
				Type:    failureType,
			}
		}

		suite.AddTestcase(testcase)
	}

	suites := &junit.Testsuites{}
	suites.AddSuite(suite)

	return suites
}

// seconds formats d the way JUnit time attributes expect.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// CaseName names a test case after what it asserts.
func CaseName(definition *testdef.Definition) string {
	label := "denied"
	if definition.Expected {
		label = "allowed"
	}

	return fmt.Sprintf("Accessing URL: %s as %s should be %s", definition.URL, definition.UserAgent, label)
}

// FileName returns the report file name for a report identifier.
func FileName(id string) string {
	return id + config.ReportFileSuffix
}

// Identifier derives a report identifier from the test case file path: its
// base name without extension.
func Identifier(testCasePath string) string {
	base := filepath.Base(testCasePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
