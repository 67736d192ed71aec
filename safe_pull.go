package reactive

import (
	"context"
	"fmt"
)

// safePull calls it.Next(ctx) with the same panic-to-error conversion the
// teacher's task/worker pair applied to arbitrary user callables: run the
// call in its own goroutine, recover any panic there, and race it against
// ctx.Done(). Every combinator driver goroutine that pulls a
// caller-supplied Iterator goes through this, so a misbehaving upstream
// can't crash the process.
func safePull[T any](ctx context.Context, it Iterator[T]) (T, bool, error) {
	var (
		v   T
		ok  bool
		err error
	)
	done := make(chan struct{}, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrElementPanicked, r)
				ok = false
			}
			done <- struct{}{}
		}()
		v, ok, err = it.Next(ctx)
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, false, nil
	case <-done:
		return v, ok, err
	}
}
