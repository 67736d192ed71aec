package reactive

import "context"

// Iterator is a handle over which Next produces, in order, a finite or
// infinite sequence of elements. Next returns:
//   - (value, true, nil) for an element,
//   - (zero, false, nil) for normal completion,
//   - (zero, false, err) for failure.
//
// After the first non-element return, every subsequent call to Next must
// also return (zero, false, nil). Next may suspend until ctx is done; a
// cancellation observed during suspension converts the outcome to
// (zero, false, nil) without further side effects on the iterator's
// upstream.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// IteratorFunc adapts a plain function to the Iterator interface — the
// "type-erased iterator" of the component design: any concrete combinator
// can be exposed to a caller as a bare Iterator[T] without revealing its
// internal struct.
type IteratorFunc[T any] func(ctx context.Context) (T, bool, error)

// Next implements Iterator.
func (f IteratorFunc[T]) Next(ctx context.Context) (T, bool, error) { return f(ctx) }

// EraseToAny returns it unchanged as an Iterator[T] interface value,
// discarding the caller's knowledge of its concrete type.
func EraseToAny[T any](it Iterator[T]) Iterator[T] { return it }

// exhausted is a shared zero-value Next implementation for iterators that
// have finished and must only ever yield (zero, false, nil) again.
func exhausted[T any](context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}
