package reactive

import "context"

// Pair is the tuple type produced by Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the tuple type produced by Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// ZipN zips N same-typed iterators into one iterator of tuples (as
// []T slices, one element per base, in base order). It ends on the first
// base to end and fails on the first base to fail; see the Zip state
// machine description in DESIGN.md.
func ZipN[T any](bases []Iterator[T], opts ...Option) Iterator[[]T] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[[]T](err)
	}
	engine := newZipEngine(bases, cfg)
	return IteratorFunc[[]T](engine.Next)
}

// Zip2 zips two iterators, possibly of different element types, into one
// iterator of Pair[A, B]. Internally both are erased to Iterator[any] to
// drive a single zipEngine; the concrete types are recovered on the way out.
func Zip2[A, B any](a Iterator[A], b Iterator[B], opts ...Option) Iterator[Pair[A, B]] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[Pair[A, B]](err)
	}
	engine := newZipEngine([]Iterator[any]{eraseIterator(a), eraseIterator(b)}, cfg)
	return IteratorFunc[Pair[A, B]](func(ctx context.Context) (Pair[A, B], bool, error) {
		tuple, ok, err := engine.Next(ctx)
		if !ok || err != nil {
			return Pair[A, B]{}, ok, err
		}
		return Pair[A, B]{First: tuple[0].(A), Second: tuple[1].(B)}, true, nil
	})
}

// Zip3 zips three iterators, possibly of different element types, into one
// iterator of Triple[A, B, C].
func Zip3[A, B, C any](a Iterator[A], b Iterator[B], c Iterator[C], opts ...Option) Iterator[Triple[A, B, C]] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[Triple[A, B, C]](err)
	}
	engine := newZipEngine([]Iterator[any]{eraseIterator(a), eraseIterator(b), eraseIterator(c)}, cfg)
	return IteratorFunc[Triple[A, B, C]](func(ctx context.Context) (Triple[A, B, C], bool, error) {
		tuple, ok, err := engine.Next(ctx)
		if !ok || err != nil {
			return Triple[A, B, C]{}, ok, err
		}
		return Triple[A, B, C]{First: tuple[0].(A), Second: tuple[1].(B), Third: tuple[2].(C)}, true, nil
	})
}

// eraseIterator wraps a typed iterator so its elements flow as any,
// letting heterogeneous iterators share one zipEngine[any].
func eraseIterator[T any](it Iterator[T]) Iterator[any] {
	return IteratorFunc[any](func(ctx context.Context) (any, bool, error) {
		v, ok, err := it.Next(ctx)
		return v, ok, err
	})
}
