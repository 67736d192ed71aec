package reactive

import "context"

// Prepend emits v as the first element, then delegates to source.
func Prepend[T any](source Iterator[T], v T) Iterator[T] {
	sent := false
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		if !sent {
			sent = true
			return v, true, nil
		}
		return source.Next(ctx)
	})
}
