package reactive

import (
	"context"

	"github.com/ygrebnov/reactive/internal/critical"
)

// subjectCore is the shared implementation behind every subject variant
// (Passthrough/CurrentValue/Replay, plain and Failable): a consumer
// registry keyed by a monotonically increasing id, a latched terminal, and
// three variant-specific hooks:
//   - seed, called once at registration time with the freshly allocated
//     consumer channel, before it is exposed to the caller (no seed for
//     Passthrough, "send current value" for CurrentValue, "drain the ring"
//     for Replay);
//   - onSend, called under the same critical region as the terminal check,
//     letting a variant update its own extra state (the current value, the
//     replay ring) atomically with the decision to broadcast;
//   - onTerminal, called under the critical region when the terminal is
//     latched (Replay uses it to clear its ring).
//
// E is the variant's extra state: struct{} for Passthrough, T for
// CurrentValue, a ring buffer for Replay.
type subjectCore[T any, E any] struct {
	cell       *critical.Cell[subjectState[T, E]]
	seed       func(*subjectState[T, E], *BufferedChannel[T])
	onSend     func(*subjectState[T, E], T)
	onTerminal func(*subjectState[T, E])
}

type subjectState[T any, E any] struct {
	consumers map[uint64]*BufferedChannel[T]
	nextID    uint64
	terminal  *Termination
	extra     E
}

func newSubjectCore[T any, E any](extra E) *subjectCore[T, E] {
	return &subjectCore[T, E]{
		cell: critical.NewCell(subjectState[T, E]{
			consumers: make(map[uint64]*BufferedChannel[T]),
			extra:     extra,
		}),
	}
}

// send snapshots the consumer list under the critical region (running
// onSend there too), then sends to each captured channel outside the
// region, avoiding holding the lock during a (non-blocking, but
// independently locked) channel operation. A no-op once terminal.
func (s *subjectCore[T, E]) send(v T) {
	chans := critical.WithRegion(s.cell, func(st *subjectState[T, E]) []*BufferedChannel[T] {
		if st.terminal != nil {
			return nil
		}
		if s.onSend != nil {
			s.onSend(st, v)
		}
		return snapshot(st.consumers)
	})
	for _, ch := range chans {
		ch.Send(v)
	}
}

// sendTerminal latches terminal, snapshots and clears the consumer map, and
// forwards the terminal to every captured channel. Subsequent registrants
// receive the terminal immediately (see makeIterator). A no-op once
// terminal is already latched.
func (s *subjectCore[T, E]) sendTerminal(t Termination) {
	chans := critical.WithRegion(s.cell, func(st *subjectState[T, E]) []*BufferedChannel[T] {
		if st.terminal != nil {
			return nil
		}
		term := t
		st.terminal = &term
		list := snapshot(st.consumers)
		for id := range st.consumers {
			delete(st.consumers, id)
		}
		if s.onTerminal != nil {
			s.onTerminal(st)
		}
		return list
	})
	for _, ch := range chans {
		ch.SendTerminal(t)
	}
}

// makeIterator allocates a consumer channel, seeds it per variant, and
// registers it. If the subject is already terminal, the returned iterator
// is pre-seeded with the terminal and requires no registration/unregister.
func (s *subjectCore[T, E]) makeIterator() Iterator[T] {
	type registration struct {
		ch          *BufferedChannel[T]
		id          uint64
		preTerminal bool
	}

	reg := critical.WithRegion(s.cell, func(st *subjectState[T, E]) registration {
		if st.terminal != nil {
			ch := NewBufferedChannel[T]()
			ch.SendTerminal(*st.terminal)
			return registration{ch: ch, preTerminal: true}
		}
		st.nextID++
		id := st.nextID
		ch := NewBufferedChannel[T]()
		if s.seed != nil {
			s.seed(st, ch)
		}
		st.consumers[id] = ch
		return registration{ch: ch, id: id}
	})

	if reg.preTerminal {
		return reg.ch
	}

	id := reg.id
	return &subjectConsumer[T]{
		channel: reg.ch,
		unregister: func() {
			critical.WithRegion(s.cell, func(st *subjectState[T, E]) struct{} {
				delete(st.consumers, id)
				return struct{}{}
			})
		},
	}
}

func snapshot[T any](m map[uint64]*BufferedChannel[T]) []*BufferedChannel[T] {
	list := make([]*BufferedChannel[T], 0, len(m))
	for _, ch := range m {
		list = append(list, ch)
	}
	return list
}

// subjectConsumer delegates Next to the underlying channel and, on
// cancellation, unregisters from the owning subject. Normal termination
// already removes the registration via sendTerminal's snapshot-and-clear,
// so unregister is only reached on an actual cancellation — deleting an
// already-absent id is a harmless no-op.
type subjectConsumer[T any] struct {
	channel    *BufferedChannel[T]
	unregister func()
}

func (c *subjectConsumer[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := c.channel.Next(ctx)
	if !ok && err == nil && ctx.Err() != nil {
		c.unregister()
	}
	return v, ok, err
}
