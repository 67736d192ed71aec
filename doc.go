// Package reactive provides reactive asynchronous sequence combinators and
// hot broadcast primitives on top of Go's native concurrency runtime.
//
// Core contract
//   - Iterator[T]: a pull-based async sequence. Next(ctx) produces elements
//     one at a time, ends with (zero, false, nil), or fails with
//     (zero, false, err). After the first non-element return, every later
//     call to Next must also return (zero, false, nil).
//
// Combinators
//   - Zip2, Zip3, ZipN: combine N iterators index-for-index into tuples.
//   - Merge: interleave N iterators as their elements arrive.
//   - SwitchToLatest, FlatMapLatest: flatten a sequence-of-sequences,
//     following only the most recently produced inner sequence.
//   - WithLatestFrom: pair each base element with the latest value of
//     another iterator.
//
// Broadcast
//   - PassthroughSubject, CurrentValueSubject, ReplaySubject (and their
//     Failable duals) are hot, multi-consumer broadcast points built on
//     BufferedChannel / FallibleBufferedChannel.
//
// Concurrency model
// Components are safe for concurrent Next calls from independent consumers
// and concurrent producer sends. Internal state transitions run inside a
// critical section (see internal/critical) and never suspend; the
// resulting continuations are resumed and goroutines cancelled only after
// the lock is released.
//
// This package does not log. Panics inside an upstream pulled by a driver
// goroutine, and panics inside Assign's setter, are recovered and surfaced
// as an error on the affected iterator's next demand, never written to
// stderr. The callbacks passed to Map, Scan and HandleEvents are called
// directly, without recovery.
package reactive
