package reactive

import (
	"context"
	"sync"

	"github.com/ygrebnov/reactive/internal/critical"
)

// switchState tracks which inner "generation" is currently active and
// whether the outer and the active inner have each run to completion.
// currentDone starts true (there is no inner yet, which counts as done) and
// is cleared whenever a new inner starts.
type switchState struct {
	generation  uint64
	outerDone   bool
	currentDone bool
	terminated  bool
}

// switchEngine implements the SwitchToLatest state machine (§4.6): an
// outer driver loops the outer iterator, cancelling the previous inner and
// starting a new one on every new inner; inner elements are forwarded to a
// shared FallibleBufferedChannel the consumer drains. Grounded on the same
// cancel-then-replace shape as dispatcher.go's per-task goroutine spawn,
// generalized to cancelling a still-running predecessor instead of merely
// tracking completion.
type switchEngine[T any] struct {
	outer   Iterator[Iterator[T]]
	channel *FallibleBufferedChannel[T]

	cell *critical.Cell[switchState]

	mu         sync.Mutex // guards cancelInner across the outer goroutine only
	cancelInner context.CancelFunc

	startOnce sync.Once
	rootCtx   context.Context

	priority Priority
}

func newSwitchEngine[T any](outer Iterator[Iterator[T]], cfg config) *switchEngine[T] {
	return &switchEngine[T]{
		outer:    outer,
		channel:  NewFallibleBufferedChannel[T](),
		cell:     critical.NewCell(switchState{currentDone: true}),
		priority: cfg.priority,
	}
}

// start lazily spawns the outer driver goroutine, rooting it (and every
// inner it starts) in ctx — the first consumer call's ctx. Cancelling a
// ctx a caller keeps passing to Next tears down the outer driver and
// whichever inner is currently running, not just that one call.
func (e *switchEngine[T]) start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.rootCtx = withPriority(ctx, e.priority)
		go e.runOuter()
	})
}

func (e *switchEngine[T]) runOuter() {
	ctx := e.rootCtx
	for {
		inner, ok, err := safePull(ctx, e.outer)
		if err != nil {
			e.fail(err)
			return
		}
		if !ok {
			e.outerEnded()
			return
		}
		e.startInner(inner)
	}
}

func (e *switchEngine[T]) startInner(inner Iterator[T]) {
	innerCtx, cancel := context.WithCancel(e.rootCtx)

	e.mu.Lock()
	if e.cancelInner != nil {
		e.cancelInner()
	}
	e.cancelInner = cancel
	e.mu.Unlock()

	gen := critical.WithRegion(e.cell, func(s *switchState) uint64 {
		s.generation++
		s.currentDone = false
		return s.generation
	})

	go e.pullInner(gen, innerCtx, inner)
}

func (e *switchEngine[T]) pullInner(gen uint64, ctx context.Context, inner Iterator[T]) {
	for {
		v, ok, err := safePull(ctx, inner)
		if err != nil {
			e.failIfCurrent(gen, err)
			return
		}
		if !ok {
			e.innerEnded(gen)
			return
		}
		e.channel.Send(v)
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (e *switchEngine[T]) innerEnded(gen uint64) {
	finish := critical.WithRegion(e.cell, func(s *switchState) bool {
		if s.terminated || s.generation != gen {
			return false
		}
		s.currentDone = true
		if s.outerDone {
			s.terminated = true
			return true
		}
		return false
	})
	if finish {
		e.channel.SendTerminal(Finished)
	}
}

func (e *switchEngine[T]) outerEnded() {
	finish := critical.WithRegion(e.cell, func(s *switchState) bool {
		if s.terminated {
			return false
		}
		s.outerDone = true
		if s.currentDone {
			s.terminated = true
			return true
		}
		return false
	})
	if finish {
		e.channel.SendTerminal(Finished)
	}
}

func (e *switchEngine[T]) fail(err error) {
	terminate := critical.WithRegion(e.cell, func(s *switchState) bool {
		if s.terminated {
			return false
		}
		s.terminated = true
		return true
	})
	if terminate {
		e.mu.Lock()
		if e.cancelInner != nil {
			e.cancelInner()
		}
		e.mu.Unlock()
		e.channel.Fail(err)
	}
}

func (e *switchEngine[T]) failIfCurrent(gen uint64, err error) {
	terminate := critical.WithRegion(e.cell, func(s *switchState) bool {
		if s.terminated || s.generation != gen {
			return false
		}
		s.terminated = true
		return true
	})
	if terminate {
		e.channel.Fail(err)
	}
}

// SwitchToLatest flattens an iterator of iterators, forwarding elements
// from only the most recently received inner. The previous inner is
// cancelled the moment a new one arrives. The outer ending does not end the
// result stream — the current inner is allowed to finish first.
func SwitchToLatest[T any](outer Iterator[Iterator[T]], opts ...Option) Iterator[T] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[T](err)
	}
	engine := newSwitchEngine(outer, cfg)
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		engine.start(ctx)
		return engine.channel.Next(ctx)
	})
}

// FlatMapLatest is Map(transform) composed with SwitchToLatest: it needs
// no machinery beyond those two.
func FlatMapLatest[T, U any](source Iterator[T], transform func(T) Iterator[U], opts ...Option) Iterator[U] {
	return SwitchToLatest(Map(source, transform), opts...)
}
