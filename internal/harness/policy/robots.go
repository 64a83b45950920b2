package policy

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// ConstructionError is returned when a policy document cannot be turned into a Decider.
type ConstructionError struct {
	Source string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing policy from %s: %v", e.Source, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// RobotsPolicy decides access using robots exclusion rules.
type RobotsPolicy struct {
	data         *robotstxt.RobotsData
	defaultAgent string
}

// NewRobotsPolicy parses a robots.txt document once. defaultAgent is used for
// decisions made on behalf of an empty user agent.
func NewRobotsPolicy(log logrus.FieldLogger, content []byte, defaultAgent string) (*RobotsPolicy, error) {
	data, err := robotstxt.FromBytes(content)
	if err != nil {
		return nil, &ConstructionError{Source: "robots.txt content", Err: err}
	}

	log.WithFields(logrus.Fields{
		"component":     "robots_policy",
		"bytes":         len(content),
		"default_agent": defaultAgent,
	}).Debug("parsed robots policy")

	return &RobotsPolicy{
		data:         data,
		defaultAgent: defaultAgent,
	}, nil
}

// LoadRobotsPolicy reads and parses the robots.txt file at path. Read and parse
// failures are both reported as *ConstructionError.
func LoadRobotsPolicy(log logrus.FieldLogger, path, defaultAgent string) (*RobotsPolicy, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: Reading policy from user supplied path
	if err != nil {
		return nil, &ConstructionError{Source: path, Err: fmt.Errorf("reading robots file: %w", err)}
	}

	p, err := NewRobotsPolicy(log, content, defaultAgent)
	if err != nil {
		var constructionErr *ConstructionError
		if errors.As(err, &constructionErr) {
			constructionErr.Source = path
		}
		return nil, err
	}

	return p, nil
}

// Decide reports whether userAgent may fetch rawURL. Absolute URLs are matched
// on their path and query only.
func (p *RobotsPolicy) Decide(userAgent, rawURL string) bool {
	agent := userAgent
	if agent == "" {
		agent = p.defaultAgent
	}

	return p.data.TestAgent(requestPath(rawURL), agent)
}

// requestPath reduces a URL to the path and query a robots rule is matched against.
func requestPath(rawURL string) string {
	path := rawURL

	if u, err := url.Parse(rawURL); err == nil && (u.IsAbs() || u.Host != "") {
		path = u.EscapedPath()
		if u.RawQuery != "" {
			path += "?" + u.RawQuery
		}
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return path
}

// Compile-time interface compliance check
var _ Decider = (*RobotsPolicy)(nil)
