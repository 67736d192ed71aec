package reactive

import (
	"context"
	"sync"
)

// fallibleSink is the subset of the fallible subject API Multicast needs:
// broadcast a value, latch a normal or failed termination, and hand out
// consumer iterators. Every Failable*Subject type satisfies it.
type fallibleSink[T any] interface {
	Send(T)
	Complete()
	Fail(error)
	MakeIterator() Iterator[T]
}

// Multicast shares one upstream pull across any number of consumers by
// pumping upstream into a subject. Unlike §4.8's literal "pull only when a
// consumer's buffer is empty" scheduling, this implementation runs one
// dedicated pump goroutine from Connect/AutoConnect onward — the same
// externally observable guarantee (each upstream element pulled exactly
// once, broadcast to every then-registered consumer) with simpler internal
// bookkeeping, grounded in the single-dedicated-goroutine style
// reorderer.go already uses for its own coordinator loop.
type Multicast[T any] struct {
	upstream Iterator[T]
	subject  fallibleSink[T]

	connectOnce sync.Once
	connectCh   chan struct{}
	priority    Priority

	pumpCtx    context.Context
	cancelPump context.CancelFunc
}

// NewMulticast shares upstream through subject. Nothing is pulled from
// upstream until Connect or AutoConnect is called.
func NewMulticast[T any](upstream Iterator[T], subject fallibleSink[T], opts ...Option) *Multicast[T] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		cfg = defaultConfig()
	}
	pumpCtx, cancel := context.WithCancel(withPriority(context.Background(), cfg.priority))
	return &Multicast[T]{
		upstream:   upstream,
		subject:    subject,
		connectCh:  make(chan struct{}),
		priority:   cfg.priority,
		pumpCtx:    pumpCtx,
		cancelPump: cancel,
	}
}

// Connect opens the latch that MakeIterator's consumers wait on and starts
// the pump goroutine. Idempotent.
func (m *Multicast[T]) Connect() {
	m.connectOnce.Do(func() {
		close(m.connectCh)
		go m.pump()
	})
}

// Close tears down the pump goroutine and its captured upstream pull. A
// caller that shares upstream across many consumers via Connect/AutoConnect
// (rather than a single abandoned Next call) has no per-call ctx to derive
// teardown from, so Close is the explicit release valve — the Multicast
// equivalent of dropping a combinator iterator. Safe to call before Connect
// (the pump never starts) or more than once.
func (m *Multicast[T]) Close() {
	m.cancelPump()
}

func (m *Multicast[T]) pump() {
	ctx := m.pumpCtx
	for {
		v, ok, err := safePull(ctx, m.upstream)
		if err != nil {
			m.subject.Fail(err)
			return
		}
		if !ok {
			m.subject.Complete()
			return
		}
		m.subject.Send(v)
	}
}

// MakeIterator returns a consumer iterator that blocks until Connect (or
// AutoConnect) has been called, then delegates to the subject.
func (m *Multicast[T]) MakeIterator() Iterator[T] {
	consumer := m.subject.MakeIterator()
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		select {
		case <-m.connectCh:
		case <-ctx.Done():
			var zero T
			return zero, false, nil
		}
		return consumer.Next(ctx)
	})
}

// AutoConnect returns a consumer iterator and calls Connect in one step.
// The consumer is registered before the pump starts, so it sees every
// upstream element.
func (m *Multicast[T]) AutoConnect() Iterator[T] {
	consumer := m.MakeIterator()
	m.Connect()
	return consumer
}

// Share multicasts upstream into a fresh fallible passthrough subject,
// auto-connected.
func Share[T any](upstream Iterator[T], opts ...Option) Iterator[T] {
	subject := NewFailablePassthroughSubject[T]()
	m := NewMulticast[T](upstream, subject, opts...)
	return m.AutoConnect()
}
