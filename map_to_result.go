package reactive

import "context"

// Result carries either a successfully produced value or the error that
// ended the sequence, as a value instead of a return-path error.
type Result[T any] struct {
	Value T
	Err   error
}

// MapToResult turns a failing iterator into a non-failing one: an upstream
// error is delivered as one Result with Err set, and the sequence ends
// immediately after. Upstream values are delivered as Results with Err nil.
func MapToResult[T any](source Iterator[T]) Iterator[Result[T]] {
	done := false
	return IteratorFunc[Result[T]](func(ctx context.Context) (Result[T], bool, error) {
		if done {
			return Result[T]{}, false, nil
		}
		v, ok, err := source.Next(ctx)
		if err != nil {
			done = true
			return Result[T]{Err: err}, true, nil
		}
		if !ok {
			return Result[T]{}, false, nil
		}
		return Result[T]{Value: v}, true, nil
	})
}
