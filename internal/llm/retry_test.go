package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	out, err := Retry(context.Background(), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), func(context.Context) (string, error) {
		calls++
		return "", errors.New("always fails")
	})
	assert.Error(t, err)
	assert.Equal(t, MaxAttempts, calls)
}

func TestRetryAbortsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			cancel()
		}
		return "", errors.New("fails")
	})
	assert.Error(t, err)
	assert.Less(t, calls, MaxAttempts)
}
