package reactive

import (
	"context"

	"github.com/eapache/queue"

	"github.com/ygrebnov/reactive/internal/critical"
)

// BufferedChannel is an unbounded MPSC-style FIFO between any number of
// producers and a single consumer: non-blocking Send, suspend-on-empty
// Next, and cancellation-safe termination.
//
// The backing FIFO is github.com/eapache/queue.Queue — the same growable
// ring-backed queue signalfx-sarama's AsyncProducer uses to buffer
// in-flight messages ahead of a single consuming goroutine.
type BufferedChannel[T any] struct {
	cell *critical.Cell[channelState[T]]
}

type channelState[T any] struct {
	buffer   *queue.Queue
	awaiting continuation[T]
	terminal *Termination
}

// NewBufferedChannel constructs an empty, non-terminal channel.
func NewBufferedChannel[T any]() *BufferedChannel[T] {
	return &BufferedChannel[T]{
		cell: critical.NewCell(channelState[T]{buffer: queue.New()}),
	}
}

// Send delivers v to the suspended consumer if one is parked, otherwise
// buffers it. A no-op once a terminal has been latched.
func (c *BufferedChannel[T]) Send(v T) {
	resume := critical.WithRegion(c.cell, func(s *channelState[T]) continuation[T] {
		if s.terminal != nil {
			return nil
		}
		if s.awaiting != nil {
			ch := s.awaiting
			s.awaiting = nil
			return ch
		}
		s.buffer.Add(v)
		return nil
	})
	if resume != nil {
		resumeValue(resume, v)
	}
}

// SendTerminal latches the channel's terminal state. A no-op if a terminal
// is already latched. If a consumer is parked, it is resumed with the
// terminal outcome; otherwise the terminal is delivered on the next Next
// call once the buffer has drained.
func (c *BufferedChannel[T]) SendTerminal(t Termination) {
	resume := critical.WithRegion(c.cell, func(s *channelState[T]) continuation[T] {
		if s.terminal != nil {
			return nil
		}
		term := t
		s.terminal = &term
		if s.awaiting != nil {
			ch := s.awaiting
			s.awaiting = nil
			return ch
		}
		return nil
	})
	if resume != nil {
		resumeEnd(resume, t.Err)
	}
}

// HasBufferedElements is a snapshot predicate reporting whether at least one
// element is buffered and can be served by Next without parking.
func (c *BufferedChannel[T]) HasBufferedElements() bool {
	return critical.WithRegion(c.cell, func(s *channelState[T]) bool {
		return s.buffer.Length() > 0
	})
}

// Next implements Iterator[T].
func (c *BufferedChannel[T]) Next(ctx context.Context) (T, bool, error) {
	type popped struct {
		v       T
		hasV    bool
		term    *Termination
		parking continuation[T]
	}

	p := critical.WithRegion(c.cell, func(s *channelState[T]) popped {
		if s.buffer.Length() > 0 {
			v := s.buffer.Peek().(T)
			s.buffer.Remove()
			return popped{v: v, hasV: true}
		}
		if s.terminal != nil {
			term := *s.terminal
			return popped{term: &term}
		}
		ch := newContinuation[T]()
		s.awaiting = ch
		return popped{parking: ch}
	})

	if p.hasV {
		return p.v, true, nil
	}
	if p.term != nil {
		var zero T
		return zero, false, p.term.Err
	}

	select {
	case env := <-p.parking:
		return env.value, env.ok, env.err
	case <-ctx.Done():
		critical.WithRegion(c.cell, func(s *channelState[T]) struct{} {
			if s.awaiting == p.parking {
				s.awaiting = nil
			}
			return struct{}{}
		})
		var zero T
		return zero, false, nil
	}
}
