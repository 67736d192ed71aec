package reactive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollect_Normal(t *testing.T) {
	ctx := context.Background()
	got, err := Collect(ctx, From([]int{1, 2, 3}, 0))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestCollect_PartialOnFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	n := 0
	source := IteratorFunc[int](func(ctx context.Context) (int, bool, error) {
		n++
		if n <= 2 {
			return n, true, nil
		}
		return 0, false, boom
	})

	got, err := Collect(ctx, source)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []int{1, 2}, got)
}
