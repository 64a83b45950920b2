package testdef

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches a LoadError raised because the source could not be read.
	ErrIO = errors.New("test case file unreadable")
	// ErrMalformedRow matches a LoadError raised for a row without exactly three fields.
	ErrMalformedRow = errors.New("malformed test case row")
	// ErrInvalidBoolean matches a LoadError raised when the expected result is not a boolean.
	ErrInvalidBoolean = errors.New("invalid expected result")

	errNotBoolean = errors.New("not a recognised boolean")
)

// LoadErrorKind classifies a LoadError.
type LoadErrorKind int

const (
	// LoadErrorIO is returned when the file cannot be read.
	LoadErrorIO LoadErrorKind = iota
	// LoadErrorMalformedRow is returned when a row has the wrong field count or bad CSV syntax.
	LoadErrorMalformedRow
	// LoadErrorInvalidBoolean is returned when the third field is not a lenient boolean.
	LoadErrorInvalidBoolean
)

func (k LoadErrorKind) sentinel() error {
	switch k {
	case LoadErrorMalformedRow:
		return ErrMalformedRow
	case LoadErrorInvalidBoolean:
		return ErrInvalidBoolean
	default:
		return ErrIO
	}
}

// LoadError reports why a test case file could not be turned into definitions.
// Line is 1-based and zero for errors not tied to a row.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}

	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Is lets errors.Is match a LoadError against ErrIO, ErrMalformedRow and ErrInvalidBoolean.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
