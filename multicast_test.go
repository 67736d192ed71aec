package reactive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShare_BroadcastsToEveryConnectedConsumer(t *testing.T) {
	ctx := context.Background()
	upstream := From([]int{1, 2, 3}, 0)

	shared := Share(upstream)

	got, err := Collect(ctx, shared)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestMulticast_ConnectIsIdempotent(t *testing.T) {
	ctx := context.Background()
	upstream := From([]int{1, 2}, 0)
	subject := NewFailablePassthroughSubject[int]()
	m := NewMulticast[int](upstream, subject)

	consumer := m.MakeIterator()

	m.Connect()
	m.Connect() // second call must not spawn a second pump

	got, err := Collect(ctx, consumer)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
}

func TestMulticast_UpstreamFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	upstream := Fail[int](boom)
	subject := NewFailablePassthroughSubject[int]()
	m := NewMulticast[int](upstream, subject)

	consumer := m.AutoConnect()
	_, err := Collect(ctx, consumer)
	require.ErrorIs(t, err, boom)
}

func TestMulticast_MakeIteratorBlocksUntilConnect(t *testing.T) {
	upstream := Just(1)
	subject := NewFailablePassthroughSubject[int]()
	m := NewMulticast[int](upstream, subject)

	consumer := m.MakeIterator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before Connect: the latch wait must honor ctx.Done()

	_, ok, err := consumer.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}

// TestMulticast_CloseStopsPumpAndCompletesConsumers exercises the release
// valve Multicast needs but an abandoned combinator iterator doesn't:
// since many consumers can share one Multicast, there is no single
// per-call ctx whose cancellation is a natural signal to tear the pump
// down, so Close is explicit. Closing cancels the pump's captured upstream
// pull (here a Timer that would otherwise run for an hour) and, since
// safePull converts that cancellation to a quiet end, the underlying
// subject observes it as Complete.
func TestMulticast_CloseStopsPumpAndCompletesConsumers(t *testing.T) {
	ctx := context.Background()
	upstream := Timer(time.Hour)
	subject := NewFailablePassthroughSubject[time.Time]()
	m := NewMulticast[time.Time](upstream, subject)

	consumer := m.AutoConnect()
	m.Close()

	_, ok, err := consumer.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}
