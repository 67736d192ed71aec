package reactive

// PassthroughSubject broadcasts values to every consumer registered at the
// time of a Send; a consumer that registers later sees nothing that came
// before it. No extra state beyond the consumer registry is kept.
type PassthroughSubject[T any] struct {
	core *subjectCore[T, struct{}]
}

// NewPassthroughSubject constructs an empty, non-terminal passthrough subject.
func NewPassthroughSubject[T any]() *PassthroughSubject[T] {
	return &PassthroughSubject[T]{core: newSubjectCore[T, struct{}](struct{}{})}
}

// Send broadcasts v to every currently registered consumer.
func (s *PassthroughSubject[T]) Send(v T) { s.core.send(v) }

// Complete latches a normal (non-error) termination.
func (s *PassthroughSubject[T]) Complete() { s.core.sendTerminal(Finished) }

// MakeIterator returns a fresh consumer iterator.
func (s *PassthroughSubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }

// FailablePassthroughSubject is PassthroughSubject[T] with a Fail method for
// latching an error termination.
type FailablePassthroughSubject[T any] struct {
	core *subjectCore[T, struct{}]
}

// NewFailablePassthroughSubject constructs an empty, non-terminal fallible
// passthrough subject.
func NewFailablePassthroughSubject[T any]() *FailablePassthroughSubject[T] {
	return &FailablePassthroughSubject[T]{core: newSubjectCore[T, struct{}](struct{}{})}
}

func (s *FailablePassthroughSubject[T]) Send(v T)           { s.core.send(v) }
func (s *FailablePassthroughSubject[T]) Complete()          { s.core.sendTerminal(Finished) }
func (s *FailablePassthroughSubject[T]) Fail(err error)     { s.core.sendTerminal(Failure(err)) }
func (s *FailablePassthroughSubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }
