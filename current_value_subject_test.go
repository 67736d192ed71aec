package reactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentValueSubject_SeedsConsumerWithCurrentValue(t *testing.T) {
	ctx := context.Background()
	s := NewCurrentValueSubject(0)
	s.Send(5)

	consumer := s.MakeIterator()
	v, ok, err := consumer.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	require.Equal(t, 5, s.Value())
}

func TestCurrentValueSubject_NewConsumerNeverSeesEmptyStart(t *testing.T) {
	ctx := context.Background()
	s := NewCurrentValueSubject("init")

	consumer := s.MakeIterator()
	v, ok, err := consumer.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "init", v)
}

func TestFailableCurrentValueSubject_Fail(t *testing.T) {
	ctx := context.Background()
	s := NewFailableCurrentValueSubject(0)
	consumer := s.MakeIterator()

	// drain the seeded current value first
	_, ok, err := consumer.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)

	boom := ErrElementPanicked
	s.Fail(boom)

	_, ok, err = consumer.Next(ctx)
	require.False(t, ok)
	require.ErrorIs(t, err, boom)
}
