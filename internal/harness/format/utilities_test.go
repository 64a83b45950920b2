package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "microseconds", input: 250 * time.Microsecond, expected: "250µs"},
		{name: "milliseconds", input: 42 * time.Millisecond, expected: "42ms"},
		{name: "seconds", input: 1500 * time.Millisecond, expected: "1.5s"},
		{name: "minutes", input: 90 * time.Second, expected: "1.5m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.input))
		})
	}
}

func TestMilliseconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00ms", Milliseconds(0))
	assert.Equal(t, "1.50ms", Milliseconds(1500*time.Microsecond))
	assert.Equal(t, "1.23ms", Milliseconds(1234567*time.Nanosecond))
	assert.Equal(t, "2000.00ms", Milliseconds(2*time.Second))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", Truncate("abc", 2))
}
