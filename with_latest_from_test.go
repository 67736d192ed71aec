package reactive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithLatestFrom_PairsWithMostRecentOther(t *testing.T) {
	ctx := context.Background()

	otherSent := make(chan struct{})
	other := NewCurrentValueSubject(100)
	otherIt := other.MakeIterator()
	go func() {
		<-otherSent
		other.Send(200)
	}()

	// base only starts pulling once we explicitly drive it below, so we
	// control ordering by hand instead of racing a From-based base.
	baseValues := make(chan int, 4)
	base := IteratorFunc[int](func(ctx context.Context) (int, bool, error) {
		select {
		case v, ok := <-baseValues:
			if !ok {
				return 0, false, nil
			}
			return v, true, nil
		case <-ctx.Done():
			return 0, false, nil
		}
	})

	paired := WithLatestFrom[int, int](base, otherIt)

	// first demand: other hasn't produced yet except the seeded initial
	// value (CurrentValueSubject seeds 100 immediately), so this demand
	// should pair with 100.
	baseValues <- 1
	p, ok, err := paired.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, Pair[int, int]{First: 1, Second: 100}, p)

	close(otherSent)
	time.Sleep(20 * time.Millisecond)

	baseValues <- 2
	p, ok, err = paired.Next(ctx)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, Pair[int, int]{First: 2, Second: 200}, p)

	close(baseValues)
}

func TestWithLatestFrom_OtherFailureFailsEveryDemand(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	base := From([]int{1, 2, 3}, 0)
	other := Fail[int](boom)

	paired := WithLatestFrom(base, other)

	_, ok, err := paired.Next(ctx)
	require.False(t, ok)
	require.ErrorIs(t, err, boom)

	// a second demand also fails, per the documented design decision
	_, ok, err = paired.Next(ctx)
	require.False(t, ok)
	require.ErrorIs(t, err, boom)
}

// TestWithLatestFrom_ContextCancellationEndsQuietlyAndStopsOtherDriver
// cancels ctx before the engine ever starts; since driveOther's ctx is
// derived from this first call's ctx, the other driver's puller goroutine
// is torn down along with its captured upstream pull, not left running
// forever past this abandoned call.
func TestWithLatestFrom_ContextCancellationEndsQuietlyAndStopsOtherDriver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	base := Timer(time.Hour)
	other := Timer(time.Hour)

	paired := WithLatestFrom(base, other)
	cancel()

	_, ok, err := paired.Next(ctx)
	require.False(t, ok)
	require.NoError(t, err)
}
