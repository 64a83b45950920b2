// Package engine evaluates test case definitions against an access policy.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ethpandaops/robots-tester/internal/harness/policy"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Outcome compares the actual policy decision for a definition with the expected one.
type Outcome struct {
	Index      int
	Definition *testdef.Definition
	Actual     bool
	Passed     bool
}

// DecisionFailedError is returned when the decider could not produce a decision
// for the case at Index.
type DecisionFailedError struct {
	Index int
	Line  int
	Cause any
}

func (e *DecisionFailedError) Error() string {
	return fmt.Sprintf("decision failed for test case %d (line %d): %v", e.Index, e.Line, e.Cause)
}

// Engine evaluates definitions in parallel.
type Engine interface {
	Evaluate(ctx context.Context, definitions []*testdef.Definition, decider policy.Decider) ([]*Outcome, error)
}

type engine struct {
	workers int
	log     logrus.FieldLogger
}

// NewEngine creates an evaluation engine with the given worker limit.
// A non-positive limit uses one worker per CPU.
func NewEngine(log logrus.FieldLogger, workers int) Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &engine{
		workers: workers,
		log:     log.WithField("component", "evaluation_engine"),
	}
}

// Evaluate returns one outcome per definition, in input order.
func (e *engine) Evaluate(ctx context.Context, definitions []*testdef.Definition, decider policy.Decider) ([]*Outcome, error) {
	start := time.Now()

	outcomes := make([]*Outcome, len(definitions))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, definition := range definitions {
		i, definition := i, definition
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			outcome, err := evaluate(i, definition, decider)
			if err != nil {
				return err
			}

			// No mutex needed - each worker writes to unique index
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"cases":    len(outcomes),
		"workers":  e.workers,
		"duration": time.Since(start),
	}).Debug("evaluation complete")

	return outcomes, nil
}

// evaluate runs a single decision, turning a panicking decider into a DecisionFailedError.
func evaluate(index int, definition *testdef.Definition, decider policy.Decider) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = &DecisionFailedError{Index: index, Line: definition.Line, Cause: r}
		}
	}()

	actual := decider.Decide(definition.UserAgent, definition.URL)

	return &Outcome{
		Index:      index,
		Definition: definition,
		Actual:     actual,
		Passed:     actual == definition.Expected,
	}, nil
}
