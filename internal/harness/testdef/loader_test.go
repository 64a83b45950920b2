package testdef

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCases(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeCases(t, "googlebot,/,true\nbingbot,/private,no\n*,https://example.com/a?b=c,0\n")

	definitions, err := NewLoader(logrus.New()).Load(path)
	require.NoError(t, err)
	require.Len(t, definitions, 3)

	assert.Equal(t, &Definition{UserAgent: "googlebot", URL: "/", Expected: true, Line: 1}, definitions[0])
	assert.Equal(t, &Definition{UserAgent: "bingbot", URL: "/private", Expected: false, Line: 2}, definitions[1])
	assert.Equal(t, &Definition{UserAgent: "*", URL: "https://example.com/a?b=c", Expected: false, Line: 3}, definitions[2])
}

func TestLoader_EmptyFile(t *testing.T) {
	t.Parallel()

	definitions, err := NewLoader(logrus.New()).Load(writeCases(t, ""))
	require.NoError(t, err)
	assert.Empty(t, definitions)
}

func TestLoader_QuotedFields(t *testing.T) {
	t.Parallel()

	definitions, err := NewLoader(logrus.New()).Parse(strings.NewReader(`"Mozilla/5.0 (compatible, bot)","/a,b",YES` + "\n"))
	require.NoError(t, err)
	require.Len(t, definitions, 1)

	assert.Equal(t, "Mozilla/5.0 (compatible, bot)", definitions[0].UserAgent)
	assert.Equal(t, "/a,b", definitions[0].URL)
	assert.True(t, definitions[0].Expected)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantErr  error
		wantLine int
	}{
		{
			name:     "two columns",
			content:  "googlebot,/\n",
			wantErr:  ErrMalformedRow,
			wantLine: 1,
		},
		{
			name:     "four columns on second row",
			content:  "googlebot,/,true\ngooglebot,/,true,extra\n",
			wantErr:  ErrMalformedRow,
			wantLine: 2,
		},
		{
			name:     "bare quote",
			content:  "googlebot,/a\"b,true\n",
			wantErr:  ErrMalformedRow,
			wantLine: 1,
		},
		{
			name:     "header row parsed as data",
			content:  "user_agent,url,expected_result\ngooglebot,/,true\n",
			wantErr:  ErrInvalidBoolean,
			wantLine: 1,
		},
		{
			name:     "unknown boolean",
			content:  "googlebot,/,true\ngooglebot,/x,maybe\n",
			wantErr:  ErrInvalidBoolean,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLoader(logrus.New()).Load(writeCases(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.wantLine, loadErr.Line)
			assert.NotEmpty(t, loadErr.Path)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(logrus.New()).Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrMalformedRow)
}

func TestLoader_SkipHeader(t *testing.T) {
	t.Parallel()

	path := writeCases(t, "user_agent,url,expected_result\ngooglebot,/,true\n")

	definitions, err := NewLoader(logrus.New(), WithSkipHeader(true)).Load(path)
	require.NoError(t, err)
	require.Len(t, definitions, 1)
	assert.Equal(t, 2, definitions[0].Line)
}

func TestLoader_SkipHeaderOnly(t *testing.T) {
	t.Parallel()

	definitions, err := NewLoader(logrus.New(), WithSkipHeader(true)).Parse(strings.NewReader("a,b,c\n"))
	require.NoError(t, err)
	assert.Empty(t, definitions)
}

func TestLoadError_Message(t *testing.T) {
	t.Parallel()

	err := &LoadError{Kind: LoadErrorMalformedRow, Path: "cases.csv", Line: 4, Err: errors.New("expected 3 fields, got 2")}
	assert.Equal(t, "malformed test case row cases.csv (line 4): expected 3 fields, got 2", err.Error())
}
