package reactive

import "context"

// Collect pulls source to completion and returns every element in order.
// It returns early, along with whatever was collected so far, if source
// fails or ctx is cancelled.
func Collect[T any](ctx context.Context, source Iterator[T]) ([]T, error) {
	var out []T
	for {
		v, ok, err := source.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
