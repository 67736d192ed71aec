package reactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamed_GetSet(t *testing.T) {
	s := NewStreamed(10)
	require.Equal(t, 10, s.Get())

	s.Set(20)
	require.Equal(t, 20, s.Get())
}

func TestStreamed_ObserveSeedsCurrentValue(t *testing.T) {
	ctx := context.Background()
	s := NewStreamed("a")

	it := s.Observe()
	v, ok, err := it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "a", v)

	s.Set("b")
	v, ok, err = it.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}
