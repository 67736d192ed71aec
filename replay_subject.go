package reactive

import "github.com/eapache/queue"

// replayBuffer is the extra state behind ReplaySubject/FailableReplaySubject:
// a capacity-bounded FIFO ring of the most recent values sent, drained into
// every newly registered consumer at registration time.
type replayBuffer[T any] struct {
	ring     *queue.Queue
	capacity int
}

func replaySeed[T any](st *subjectState[T, replayBuffer[T]], ch *BufferedChannel[T]) {
	for i := 0; i < st.extra.ring.Length(); i++ {
		ch.Send(st.extra.ring.Get(i).(T))
	}
}

func replayOnSend[T any](st *subjectState[T, replayBuffer[T]], v T) {
	st.extra.ring.Add(v)
	for st.extra.ring.Length() > st.extra.capacity {
		st.extra.ring.Remove()
	}
}

func replayOnTerminal[T any](st *subjectState[T, replayBuffer[T]]) {
	for st.extra.ring.Length() > 0 {
		st.extra.ring.Remove()
	}
	st.extra.capacity = 0
}

// ReplaySubject replays the last bufferSize values sent (fewer, if fewer
// have been sent) to every newly registered consumer, in send order, ahead
// of any value sent after registration. bufferSize must be >= 1 — see
// NewReplaySubject.
type ReplaySubject[T any] struct {
	core *subjectCore[T, replayBuffer[T]]
}

// NewReplaySubject constructs a replay subject retaining the last
// bufferSize values. It returns ErrReplayCapacity if bufferSize < 1: a
// subject that replays nothing is better expressed as PassthroughSubject.
func NewReplaySubject[T any](bufferSize int) (*ReplaySubject[T], error) {
	if bufferSize < 1 {
		return nil, ErrReplayCapacity
	}
	core := newSubjectCore[T, replayBuffer[T]](replayBuffer[T]{ring: queue.New(), capacity: bufferSize})
	core.seed = replaySeed[T]
	core.onSend = replayOnSend[T]
	core.onTerminal = replayOnTerminal[T]
	return &ReplaySubject[T]{core: core}, nil
}

// Send appends v to the replay buffer (trimming the oldest entry past
// capacity) and broadcasts it to every registered consumer.
func (s *ReplaySubject[T]) Send(v T) { s.core.send(v) }

// Complete latches a normal (non-error) termination and clears the replay buffer.
func (s *ReplaySubject[T]) Complete() { s.core.sendTerminal(Finished) }

// MakeIterator returns a fresh consumer iterator, pre-seeded with the
// current replay buffer contents in send order.
func (s *ReplaySubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }

// FailableReplaySubject is ReplaySubject[T] with a Fail method for latching
// an error termination.
type FailableReplaySubject[T any] struct {
	core *subjectCore[T, replayBuffer[T]]
}

// NewFailableReplaySubject constructs a fallible replay subject retaining
// the last bufferSize values. It returns ErrReplayCapacity if
// bufferSize < 1.
func NewFailableReplaySubject[T any](bufferSize int) (*FailableReplaySubject[T], error) {
	if bufferSize < 1 {
		return nil, ErrReplayCapacity
	}
	core := newSubjectCore[T, replayBuffer[T]](replayBuffer[T]{ring: queue.New(), capacity: bufferSize})
	core.seed = replaySeed[T]
	core.onSend = replayOnSend[T]
	core.onTerminal = replayOnTerminal[T]
	return &FailableReplaySubject[T]{core: core}, nil
}

func (s *FailableReplaySubject[T]) Send(v T)      { s.core.send(v) }
func (s *FailableReplaySubject[T]) Complete()     { s.core.sendTerminal(Finished) }
func (s *FailableReplaySubject[T]) Fail(err error) { s.core.sendTerminal(Failure(err)) }

func (s *FailableReplaySubject[T]) MakeIterator() Iterator[T] { return s.core.makeIterator() }
