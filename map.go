package reactive

import "context"

// Map transforms each element of source with f. Errors and normal/cancelled
// endings pass through untouched.
func Map[T, U any](source Iterator[T], f func(T) U) Iterator[U] {
	return IteratorFunc[U](func(ctx context.Context) (U, bool, error) {
		v, ok, err := source.Next(ctx)
		if !ok || err != nil {
			var zero U
			return zero, ok, err
		}
		return f(v), true, nil
	})
}
