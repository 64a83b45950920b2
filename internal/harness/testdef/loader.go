// Package testdef provides test case definition loading.
// A definition says what access a user agent should have to a URL;
// evaluating it against a policy is the engine's job.
package testdef

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// fieldsPerRow is the fixed column count: user agent, URL, expected result.
const fieldsPerRow = 3

// Definition is a single expected access decision.
type Definition struct {
	UserAgent string
	URL       string
	Expected  bool
	Line      int
}

// Loader loads test case definitions from comma separated input.
type Loader interface {
	Load(path string) ([]*Definition, error)
	Parse(r io.Reader) ([]*Definition, error)
}

// Option configures a Loader.
type Option func(*loader)

// WithSkipHeader drops the first row of the input instead of parsing it as a test case.
func WithSkipHeader(skip bool) Option {
	return func(l *loader) {
		l.skipHeader = skip
	}
}

type loader struct {
	skipHeader bool
	log        logrus.FieldLogger
}

// NewLoader creates a new test case loader.
func NewLoader(log logrus.FieldLogger, opts ...Option) Loader {
	l := &loader{
		log: log.WithField("component", "testdef_loader"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads all definitions from the file at path.
func (l *loader) Load(path string) ([]*Definition, error) {
	l.log.WithFields(logrus.Fields{
		"path":        path,
		"skip_header": l.skipHeader,
	}).Debug("loading test cases")

	f, err := os.Open(path) //nolint:gosec // G304: Reading test cases from user supplied path
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorIO, Path: path, Err: err}
	}
	defer f.Close()

	definitions, err := l.Parse(f)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Path == "" {
			loadErr.Path = path
		}
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"path":  path,
		"cases": len(definitions),
	}).Debug("loaded test cases")

	return definitions, nil
}

// Parse reads all definitions from r. Rows are returned in input order.
func (l *loader) Parse(r io.Reader) ([]*Definition, error) {
	reader := csv.NewReader(r)
	// Field count is checked per row so the error names the row.
	reader.FieldsPerRecord = -1

	var (
		definitions = make([]*Definition, 0)
		first       = true
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, l.readError(err)
		}

		line, _ := reader.FieldPos(0)

		if first && l.skipHeader {
			first = false
			l.log.WithField("line", line).Debug("skipping header row")
			continue
		}
		first = false

		definition, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}

		definitions = append(definitions, definition)
	}

	return definitions, nil
}

func (l *loader) readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &LoadError{Kind: LoadErrorMalformedRow, Line: parseErr.Line, Err: parseErr.Err}
	}

	return &LoadError{Kind: LoadErrorIO, Err: err}
}

func parseRecord(record []string, line int) (*Definition, error) {
	if len(record) != fieldsPerRow {
		return nil, &LoadError{
			Kind: LoadErrorMalformedRow,
			Line: line,
			Err:  fmt.Errorf("expected %d fields, got %d", fieldsPerRow, len(record)),
		}
	}

	expected, err := ParseLenientBool(record[2])
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorInvalidBoolean, Line: line, Err: err}
	}

	return &Definition{
		UserAgent: record[0],
		URL:       record[1],
		Expected:  expected,
		Line:      line,
	}, nil
}
