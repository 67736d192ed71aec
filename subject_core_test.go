package reactive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubjectConsumer_CancellationUnregisters(t *testing.T) {
	s := NewPassthroughSubject[int]()
	ctx, cancel := context.WithCancel(context.Background())

	consumer := s.MakeIterator()

	done := make(chan struct{})
	go func() {
		_, ok, err := consumer.Next(ctx)
		require.False(t, ok)
		require.NoError(t, err)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Next never returned after cancellation")
	}

	// the cancelled consumer was unregistered: a Send after this point must
	// not block or panic, and must not be observed by the dead consumer.
	s.Send(1)
	s.Complete()
}
