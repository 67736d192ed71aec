package reactive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleEvents_StartElementFinish(t *testing.T) {
	ctx := context.Background()
	source := From([]int{1, 2}, 0)

	var starts int
	var elements []int
	var finishErr error
	var finished bool

	it := HandleEvents(source, EventHandlers[int]{
		Start:   func() { starts++ },
		Element: func(v int) { elements = append(elements, v) },
		Finish: func(err error) {
			finished = true
			finishErr = err
		},
	})

	_, err := Collect(ctx, it)
	require.NoError(t, err)
	require.Equal(t, 1, starts)
	require.Equal(t, []int{1, 2}, elements)
	require.True(t, finished)
	require.NoError(t, finishErr)
}

func TestHandleEvents_FinishOnFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	source := Fail[int](boom)

	var finishErr error
	it := HandleEvents(source, EventHandlers[int]{
		Finish: func(err error) { finishErr = err },
	})

	_, err := Collect(ctx, it)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, finishErr, boom)
}

func TestHandleEvents_CancelOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := IteratorFunc[int](func(ctx context.Context) (int, bool, error) {
		<-ctx.Done()
		return 0, false, nil
	})

	var cancelled bool
	it := HandleEvents[int](blocked, EventHandlers[int]{
		Cancel: func() { cancelled = true },
	})

	_, ok, err := it.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
	require.True(t, cancelled)
}
