package reactive

import (
	"context"
	"fmt"
)

// Assign calls setter with every element of source before passing it
// through unchanged. setter is expected to be total and synchronous; a
// panic is recovered and surfaced as the sequence's error, exactly like a
// panicking task in this package's combinators.
func Assign[T any](source Iterator[T], setter func(T)) Iterator[T] {
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		v, ok, err := source.Next(ctx)
		if !ok || err != nil {
			return v, ok, err
		}
		if setErr := callSetter(setter, v); setErr != nil {
			var zero T
			return zero, false, setErr
		}
		return v, true, nil
	})
}

func callSetter[T any](setter func(T), v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrElementPanicked, r)
		}
	}()
	setter(v)
	return nil
}
