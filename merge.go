package reactive

import (
	"context"
	"sync"

	"github.com/ygrebnov/reactive/internal/critical"
	"github.com/ygrebnov/reactive/metrics"
)

// mergeEngine implements the Merge state machine (§4.5): N inputs pulled in
// parallel, elements delivered to the consumer in completion order with no
// ordering guarantee across inputs. Grounded on dispatcher.go's "spawn N
// children tracked by a WaitGroup" shape and error_forwarder.go's "first
// failure cancels the rest and latches a single terminal" shape, both
// applied to FallibleBufferedChannel as the interleaving fabric instead of
// a plain results/errors channel pair.
type mergeEngine[T any] struct {
	channel *FallibleBufferedChannel[T]

	startOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc

	cell *critical.Cell[mergeState]

	priority Priority
	elements metrics.Counter
	failures metrics.Counter
}

type mergeState struct {
	finishedCount int
	total         int
	terminated    bool
}

func newMergeEngine[T any](bases []Iterator[T], cfg config) *mergeEngine[T] {
	return &mergeEngine[T]{
		channel:  NewFallibleBufferedChannel[T](),
		cell:     critical.NewCell(mergeState{total: len(bases)}),
		priority: cfg.priority,
		elements: cfg.metrics.Counter(
			"reactive.merge.elements",
			metrics.WithDescription("elements forwarded by a merge across all of its bases"),
		),
		failures: cfg.metrics.Counter(
			"reactive.merge.failures",
			metrics.WithDescription("merges terminated early by a base failure"),
		),
	}
}

// start lazily spawns the N puller goroutines, rooting their shared ctx in
// the first consumer call's ctx — so a caller that keeps passing the same
// cancellable ctx to Next and then cancels it (the idiomatic way to
// abandon an iterator) tears down every pull goroutine and its captured
// upstream pull, not just that one call.
func (e *mergeEngine[T]) start(ctx context.Context, bases []Iterator[T]) {
	e.startOnce.Do(func() {
		e.ctx, e.cancel = context.WithCancel(withPriority(ctx, e.priority))
		for i, base := range bases {
			go e.pull(i, base)
		}
	})
}

func (e *mergeEngine[T]) pull(index int, base Iterator[T]) {
	for {
		v, ok, err := safePull(e.ctx, base)
		if err != nil {
			terminate := critical.WithRegion(e.cell, func(s *mergeState) bool {
				if s.terminated {
					return false
				}
				s.terminated = true
				return true
			})
			if terminate {
				e.failures.Add(1)
				e.channel.Fail(newBaseTaggedError(err, index))
				e.cancel()
			}
			return
		}
		if !ok {
			allDone := critical.WithRegion(e.cell, func(s *mergeState) bool {
				if s.terminated {
					return false
				}
				s.finishedCount++
				if s.finishedCount == s.total {
					s.terminated = true
					return true
				}
				return false
			})
			if allDone {
				e.channel.SendTerminal(Finished)
			}
			return
		}
		e.elements.Add(1)
		e.channel.Send(v)
		select {
		case <-e.ctx.Done():
			return
		default:
		}
	}
}

// Merge pulls from every base in parallel and delivers elements to the
// consumer in whatever order each base's pulls complete. It ends once every
// base has ended, and fails (terminating the whole merge) as soon as any
// base fails.
func Merge[T any](bases []Iterator[T], opts ...Option) Iterator[T] {
	if len(bases) == 0 {
		return Empty[T]()
	}
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[T](err)
	}
	engine := newMergeEngine(bases, cfg)
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		engine.start(ctx, bases)
		return engine.channel.Next(ctx)
	})
}
