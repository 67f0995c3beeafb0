package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	ctx := context.Background()

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond}
	for i, w := range want {
		req.Equal(w, b.NextDuration, "step %d", i)
		req.NoError(b.Backoff(ctx))
	}
	req.Equal(4, b.Count())

	b.Reset()
	req.Equal(time.Millisecond, b.NextDuration)
	req.Zero(b.LastDuration)
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
}

func TestBackoffCancelled(t *testing.T) {
	b := NewExponential(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, b.Backoff(ctx), context.Canceled)
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	errTemp := errors.New("temporary")
	errFatal := errors.New("fatal")

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 3, func() error {
			calls++
			if calls < 3 {
				return errTemp
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 2, func() error {
			calls++
			return errTemp
		})
		require.ErrorIs(t, err, errTemp)
		require.Equal(t, 2, calls)
	})

	t.Run("permanent stops", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 5, func() error {
			calls++
			return Permanent(errFatal)
		})
		require.Equal(t, errFatal, err)
		require.Equal(t, 1, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := Retry(ctx, NewLinear(time.Hour, 0), 5, func() error {
			calls++
			return errTemp
		})
		require.ErrorIs(t, err, errTemp)
		require.Equal(t, 1, calls)
	})
}
