package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ethpandaops/robots-tester/internal/harness/policy"
	"github.com/ethpandaops/robots-tester/internal/harness/testdef"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var denyPrivate = policy.DeciderFunc(func(_, url string) bool {
	return !strings.HasPrefix(url, "/private")
})

func makeDefinitions(n int) []*testdef.Definition {
	definitions := make([]*testdef.Definition, n)
	for i := range definitions {
		url := fmt.Sprintf("/public/%d", i)
		if i%3 == 0 {
			url = fmt.Sprintf("/private/%d", i)
		}

		definitions[i] = &testdef.Definition{
			UserAgent: "bot",
			URL:       url,
			Expected:  i%2 == 0,
			Line:      i + 1,
		}
	}

	return definitions
}

func TestEngine_AllowEverything(t *testing.T) {
	t.Parallel()

	definitions := []*testdef.Definition{{UserAgent: "bot", URL: "/x", Expected: true, Line: 1}}

	outcomes, err := NewEngine(logrus.New(), 1).Evaluate(context.Background(), definitions, policy.AllowAll)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Actual)
	assert.True(t, outcomes[0].Passed)
}

func TestEngine_DisallowedPath(t *testing.T) {
	t.Parallel()

	definitions := []*testdef.Definition{
		{UserAgent: "bot", URL: "/private", Expected: false, Line: 1},
		{UserAgent: "bot", URL: "/private", Expected: true, Line: 2},
	}

	outcomes, err := NewEngine(logrus.New(), 2).Evaluate(context.Background(), definitions, denyPrivate)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.True(t, outcomes[0].Passed)
	assert.False(t, outcomes[1].Passed)
	assert.False(t, outcomes[1].Actual)
}

func TestEngine_PreservesOrderAndSource(t *testing.T) {
	t.Parallel()

	definitions := makeDefinitions(500)

	outcomes, err := NewEngine(logrus.New(), 16).Evaluate(context.Background(), definitions, denyPrivate)
	require.NoError(t, err)
	require.Len(t, outcomes, len(definitions))

	for i, outcome := range outcomes {
		require.NotNil(t, outcome)
		assert.Equal(t, i, outcome.Index)
		assert.Same(t, definitions[i], outcome.Definition)
		assert.Equal(t, outcome.Actual == definitions[i].Expected, outcome.Passed)
	}
}

func TestEngine_DeterministicAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	definitions := makeDefinitions(200)

	baseline, err := NewEngine(logrus.New(), 1).Evaluate(context.Background(), definitions, denyPrivate)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 7, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			outcomes, err := NewEngine(logrus.New(), workers).Evaluate(context.Background(), definitions, denyPrivate)
			require.NoError(t, err)
			assert.Equal(t, baseline, outcomes)
		})
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	t.Parallel()

	outcomes, err := NewEngine(logrus.New(), 4).Evaluate(context.Background(), nil, policy.AllowAll)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestEngine_CallsDeciderOncePerCase(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	counting := policy.DeciderFunc(func(_, _ string) bool {
		calls.Add(1)
		return true
	})

	_, err := NewEngine(logrus.New(), 8).Evaluate(context.Background(), makeDefinitions(100), counting)
	require.NoError(t, err)
	assert.Equal(t, int64(100), calls.Load())
}

func TestEngine_DecisionFailure(t *testing.T) {
	t.Parallel()

	definitions := makeDefinitions(10)
	failing := policy.DeciderFunc(func(_, url string) bool {
		if url == definitions[4].URL {
			panic("matcher exploded")
		}
		return true
	})

	outcomes, err := NewEngine(logrus.New(), 1).Evaluate(context.Background(), definitions, failing)
	require.Error(t, err)
	assert.Nil(t, outcomes)

	var decisionErr *DecisionFailedError
	require.True(t, errors.As(err, &decisionErr))
	assert.Equal(t, 4, decisionErr.Index)
	assert.Equal(t, 5, decisionErr.Line)
	assert.Contains(t, err.Error(), "matcher exploded")
}

func TestEngine_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(logrus.New(), 2).Evaluate(ctx, makeDefinitions(10), policy.AllowAll)
	require.ErrorIs(t, err, context.Canceled)
}
