package reactive

// Streamed wraps a property so that assigning it is also publishing to an
// observable sequence: reads go through the subject's cached value, writes
// broadcast to every consumer. A thin ergonomic shell over
// CurrentValueSubject that adds no new contract.
type Streamed[T any] struct {
	subject *CurrentValueSubject[T]
}

// NewStreamed constructs a Streamed property starting at initial.
func NewStreamed[T any](initial T) *Streamed[T] {
	return &Streamed[T]{subject: NewCurrentValueSubject(initial)}
}

// Get returns the current value.
func (s *Streamed[T]) Get() T { return s.subject.Value() }

// Set assigns a new value, broadcasting it to every consumer.
func (s *Streamed[T]) Set(v T) { s.subject.Send(v) }

// Observe returns an iterator over this property's values, seeded with the
// current value.
func (s *Streamed[T]) Observe() Iterator[T] { return s.subject.MakeIterator() }
