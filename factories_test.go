package reactive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	ctx := context.Background()
	it := Empty[int]()
	_, ok, err := it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
	// repeated pulls stay exhausted
	_, ok, err = it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}

func TestJust(t *testing.T) {
	ctx := context.Background()
	it := Just(42)

	v, ok, err := it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	_, ok, err = it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}

func TestFail(t *testing.T) {
	ctx := context.Background()
	boom := ErrElementPanicked
	it := Fail[int](boom)

	_, ok, err := it.Next(ctx)
	require.False(t, ok)
	require.ErrorIs(t, err, boom)

	// the failure is one-shot: subsequent pulls are quiet exhaustion
	_, ok, err = it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}

func TestFrom(t *testing.T) {
	ctx := context.Background()
	it := From([]int{1, 2, 3}, 0)

	var got []int
	for {
		v, ok, err := it.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestFrom_IntervalCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	it := From([]int{1, 2, 3}, time.Hour)

	v, ok, err := it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	cancel()
	_, ok, err = it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}

func TestTimer(t *testing.T) {
	ctx := context.Background()
	it := Timer(time.Millisecond)

	v1, ok, err := it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)

	v2, ok, err := it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.True(t, v2.After(v1) || v2.Equal(v1))
}
