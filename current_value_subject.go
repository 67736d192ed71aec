package reactive

import "github.com/ygrebnov/reactive/internal/critical"

// CurrentValueSubject keeps the most recently sent value (or its initial
// constructor value) and seeds every newly registered consumer with it
// before any later Send is visible to that consumer — a consumer never
// observes an empty start.
type CurrentValueSubject[T any] struct {
	core *subjectCore[T, T]
}

func currentValueSeed[T any](st *subjectState[T, T], ch *BufferedChannel[T]) {
	ch.Send(st.extra)
}

func currentValueOnSend[T any](st *subjectState[T, T], v T) {
	st.extra = v
}

// NewCurrentValueSubject constructs a subject whose current value starts at
// initial.
func NewCurrentValueSubject[T any](initial T) *CurrentValueSubject[T] {
	core := newSubjectCore[T, T](initial)
	core.seed = currentValueSeed[T]
	core.onSend = currentValueOnSend[T]
	return &CurrentValueSubject[T]{core: core}
}

// Send updates the current value and broadcasts it to every registered consumer.
func (s *CurrentValueSubject[T]) Send(v T) { s.core.send(v) }

// Value returns the current value.
func (s *CurrentValueSubject[T]) Value() T {
	return critical.WithRegion(s.core.cell, func(st *subjectState[T, T]) T {
		return st.extra
	})
}

// Complete latches a normal (non-error) termination.
func (s *CurrentValueSubject[T]) Complete() { s.core.sendTerminal(Finished) }

// MakeIterator returns a fresh consumer iterator, pre-seeded with the
// current value.
func (s *CurrentValueSubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }

// FailableCurrentValueSubject is CurrentValueSubject[T] with a Fail method
// for latching an error termination.
type FailableCurrentValueSubject[T any] struct {
	core *subjectCore[T, T]
}

// NewFailableCurrentValueSubject constructs a fallible subject whose
// current value starts at initial.
func NewFailableCurrentValueSubject[T any](initial T) *FailableCurrentValueSubject[T] {
	core := newSubjectCore[T, T](initial)
	core.seed = currentValueSeed[T]
	core.onSend = currentValueOnSend[T]
	return &FailableCurrentValueSubject[T]{core: core}
}

func (s *FailableCurrentValueSubject[T]) Send(v T) { s.core.send(v) }

func (s *FailableCurrentValueSubject[T]) Value() T {
	return critical.WithRegion(s.core.cell, func(st *subjectState[T, T]) T {
		return st.extra
	})
}

func (s *FailableCurrentValueSubject[T]) Complete()      { s.core.sendTerminal(Finished) }
func (s *FailableCurrentValueSubject[T]) Fail(err error) { s.core.sendTerminal(Failure(err)) }

func (s *FailableCurrentValueSubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }
