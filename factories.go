package reactive

import (
	"context"
	"time"
)

// Empty returns an iterator that ends immediately on its first pull.
func Empty[T any]() Iterator[T] {
	return IteratorFunc[T](exhausted[T])
}

// Just returns an iterator that yields v once, then ends.
func Just[T any](v T) Iterator[T] {
	sent := false
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		if sent {
			var zero T
			return zero, false, nil
		}
		sent = true
		return v, true, nil
	})
}

// Fail returns an iterator whose first pull fails with err.
func Fail[T any](err error) Iterator[T] {
	failed := false
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		var zero T
		if failed {
			return zero, false, nil
		}
		failed = true
		return zero, false, err
	})
}

// From wraps a finite collection, yielding its elements in order then
// ending. If interval > 0, each pull after the first sleeps interval
// before returning, observing ctx cancellation.
func From[T any](items []T, interval time.Duration) Iterator[T] {
	i := 0
	first := true
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		var zero T
		if i >= len(items) {
			return zero, false, nil
		}
		if interval > 0 && !first {
			if err := sleep(ctx, interval); err != nil {
				return zero, false, nil
			}
		}
		first = false
		v := items[i]
		i++
		return v, true, nil
	})
}

// Timer is an infinite iterator: each pull sleeps interval, then yields the
// time it woke up. It never ends except through cancellation.
func Timer(interval time.Duration) Iterator[time.Time] {
	return IteratorFunc[time.Time](func(ctx context.Context) (time.Time, bool, error) {
		if err := sleep(ctx, interval); err != nil {
			return time.Time{}, false, nil
		}
		return timeNow(), true, nil
	})
}

// sleep blocks for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// timeNow is a seam so this is the only place in the package touching wall
// clock time; kept as a thin wrapper rather than calling time.Now directly
// everywhere Timer might be extended.
func timeNow() time.Time {
	return time.Now()
}
