// Package policy provides the access decision port consumed by the evaluation
// engine, and a robots.txt backed implementation of it.
package policy

// Decider answers whether userAgent may fetch url.
// Implementations must be safe for concurrent use and must not mutate
// state after construction.
type Decider interface {
	Decide(userAgent, url string) bool
}

// DeciderFunc adapts a plain function to the Decider interface.
type DeciderFunc func(userAgent, url string) bool

// Decide calls f(userAgent, url).
func (f DeciderFunc) Decide(userAgent, url string) bool {
	return f(userAgent, url)
}

// AllowAll permits every request.
var AllowAll Decider = DeciderFunc(func(_, _ string) bool { return true })
