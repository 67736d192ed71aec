package reactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReplaySubject_RejectsZeroCapacity(t *testing.T) {
	_, err := NewReplaySubject[int](0)
	require.ErrorIs(t, err, ErrReplayCapacity)

	_, err = NewReplaySubject[int](-1)
	require.ErrorIs(t, err, ErrReplayCapacity)
}

func TestReplaySubject_ReplaysLastNInOrder(t *testing.T) {
	ctx := context.Background()
	s, err := NewReplaySubject[int](2)
	require.NoError(t, err)

	s.Send(1)
	s.Send(2)
	s.Send(3) // should evict 1

	consumer := s.MakeIterator()
	var seen []int
	for i := 0; i < 2; i++ {
		v, ok, nextErr := consumer.Next(ctx)
		require.True(t, ok)
		require.NoError(t, nextErr)
		seen = append(seen, v)
	}
	require.Equal(t, []int{2, 3}, seen)
}

func TestReplaySubject_FewerThanCapacity(t *testing.T) {
	ctx := context.Background()
	s, err := NewReplaySubject[int](5)
	require.NoError(t, err)

	s.Send(1)
	s.Send(2)

	consumer := s.MakeIterator()
	v, ok, err := consumer.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, ok, err = consumer.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestReplaySubject_CompleteClearsBuffer(t *testing.T) {
	ctx := context.Background()
	s, err := NewReplaySubject[int](3)
	require.NoError(t, err)

	s.Send(1)
	s.Complete()

	// a consumer registered after Complete sees the latched terminal, not the replay
	consumer := s.MakeIterator()
	_, ok, err := consumer.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}
