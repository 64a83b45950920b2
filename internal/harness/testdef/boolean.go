package testdef

import (
	"fmt"
	"strings"
)

var lenientBools = map[string]bool{
	"true":  true,
	"t":     true,
	"yes":   true,
	"y":     true,
	"1":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"no":    false,
	"n":     false,
	"0":     false,
	"off":   false,
}

// ParseLenientBool parses common boolean spellings, ignoring case and surrounding whitespace.
func ParseLenientBool(s string) (bool, error) {
	value, ok := lenientBools[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, fmt.Errorf("%w: %q", errNotBoolean, s)
	}

	return value, nil
}
