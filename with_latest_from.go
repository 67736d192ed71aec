package reactive

import (
	"context"
	"sync"

	"github.com/ygrebnov/reactive/internal/critical"
)

type withLatestState[O any] struct {
	ready   bool
	value   O
	failed  bool
	err     error
	waiters []signal
}

// withLatestEngine implements WithLatestFrom (§4.7): an "other" driver
// started on first demand continually pulls other into a critical-section
// cell; base pulls snapshot the latest value once at least one has
// arrived. Before that, base pulls park on a one-slot signal primed by the
// other driver's first value — the same continuation-as-capacity-1-channel
// primitive used throughout this package (see continuation.go).
type withLatestEngine[T, O any] struct {
	base  Iterator[T]
	other Iterator[O]

	cell      *critical.Cell[withLatestState[O]]
	startOnce sync.Once
	driverCtx context.Context
	priority  Priority
}

func newWithLatestEngine[T, O any](base Iterator[T], other Iterator[O], cfg config) *withLatestEngine[T, O] {
	return &withLatestEngine[T, O]{
		base:     base,
		other:    other,
		cell:     critical.NewCell(withLatestState[O]{}),
		priority: cfg.priority,
	}
}

// start lazily spawns the "other" driver goroutine, rooting it in ctx —
// the first consumer call's ctx. Cancelling a ctx a caller keeps passing
// to Next tears the driver down along with its captured upstream pull,
// not just that one call.
func (e *withLatestEngine[T, O]) start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.driverCtx = withPriority(ctx, e.priority)
		go e.driveOther()
	})
}

func (e *withLatestEngine[T, O]) driveOther() {
	ctx := e.driverCtx
	for {
		v, ok, err := safePull(ctx, e.other)
		if err != nil {
			waiters := critical.WithRegion(e.cell, func(s *withLatestState[O]) []signal {
				if s.failed {
					return nil
				}
				s.failed = true
				s.err = err
				w := s.waiters
				s.waiters = nil
				return w
			})
			for _, w := range waiters {
				w.fire()
			}
			return
		}
		if !ok {
			return
		}
		waiters := critical.WithRegion(e.cell, func(s *withLatestState[O]) []signal {
			s.value = v
			wasReady := s.ready
			s.ready = true
			if wasReady {
				return nil
			}
			w := s.waiters
			s.waiters = nil
			return w
		})
		for _, w := range waiters {
			w.fire()
		}
	}
}

// Next implements one consumer demand: wait (if necessary) for the first
// other value, then pull base and pair it with the latest other snapshot.
// Once other has failed, every subsequent demand surfaces that error —
// a design decision recorded in DESIGN.md since the spec leaves the exact
// number of affected demands unspecified.
func (e *withLatestEngine[T, O]) Next(ctx context.Context) (Pair[T, O], bool, error) {
	e.start(ctx)

	for {
		type snapshot struct {
			value O
			ready bool
			err   error
			wait  signal
		}
		snap := critical.WithRegion(e.cell, func(s *withLatestState[O]) snapshot {
			if s.failed {
				return snapshot{err: s.err}
			}
			if s.ready {
				return snapshot{value: s.value, ready: true}
			}
			w := newSignal()
			s.waiters = append(s.waiters, w)
			return snapshot{wait: w}
		})

		if snap.err != nil {
			return Pair[T, O]{}, false, snap.err
		}
		if snap.ready {
			v, ok, err := safePull(ctx, e.base)
			if !ok || err != nil {
				return Pair[T, O]{}, ok, err
			}
			return Pair[T, O]{First: v, Second: snap.value}, true, nil
		}

		select {
		case <-snap.wait:
		case <-ctx.Done():
			return Pair[T, O]{}, false, nil
		}
	}
}

// WithLatestFrom pairs each base element with the most recently produced
// other element. Until other has produced its first value, a demand waits
// without pulling base; base is pulled only once a value of other is
// available, so no base element is dropped.
func WithLatestFrom[T, O any](base Iterator[T], other Iterator[O], opts ...Option) Iterator[Pair[T, O]] {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return Fail[Pair[T, O]](err)
	}
	engine := newWithLatestEngine(base, other, cfg)
	return IteratorFunc[Pair[T, O]](engine.Next)
}
