package reactive

import "context"

// Scan folds f over source, emitting the running accumulator instead of
// the raw elements — the first emitted value is f(init, source[0]).
func Scan[T, A any](source Iterator[T], init A, f func(A, T) A) Iterator[A] {
	acc := init
	return IteratorFunc[A](func(ctx context.Context) (A, bool, error) {
		v, ok, err := source.Next(ctx)
		if !ok || err != nil {
			var zero A
			return zero, ok, err
		}
		acc = f(acc, v)
		return acc, true, nil
	})
}
