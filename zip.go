package reactive

import (
	"context"
	"sync"

	"github.com/ygrebnov/reactive/internal/critical"
	"github.com/ygrebnov/reactive/metrics"
)

// zipOutcome is what a base's puller goroutine reports back to the engine
// after one Next() call.
type zipOutcome[T any] struct {
	idx int
	v   T
	ok  bool
	err error
}

// zipRoundState is the critical-section state for one in-progress zip
// round: which bases have already produced their element this round, and
// which bases have already been granted permission to pull (and so must
// not be granted it again until the round completes).
type zipRoundState[T any] struct {
	results  map[int]T
	sent     map[int]bool
	finished bool
}

// zipEngine implements the N-ary core of the Zip state machine described
// in §4.4: pull N bases in parallel, one element from each per round,
// combine into a tuple, finish on the first base that ends, fail on the
// first base that errors. Grounded on the same "spawn N children, forward
// their outcomes to one coordinator, first failure cancels the rest"
// shape as error_forwarder.go, generalized from a single internal-errors
// channel to one outcome per base per round.
//
// Every input must share the same element type T; Zip2/Zip3 erase their
// (possibly distinct) input types to T = any and recover concrete types on
// the way out (see zip_tuple.go).
type zipEngine[T any] struct {
	bases   []Iterator[T]
	n       int
	permits []chan struct{}

	outcomes chan zipOutcome[T]

	startOnce    sync.Once
	driverCtx    context.Context
	cancelDriver context.CancelFunc

	cell *critical.Cell[zipRoundState[T]]

	priority Priority
	tuples   metrics.Counter
	failures metrics.Counter
}

// newZipEngine constructs an engine over bases, under cfg. The driver and
// its N puller goroutines are not started until the first call to Next,
// and the driver context is derived from that first call's ctx: cancelling
// the ctx a caller keeps passing to Next — the idiomatic way to abandon an
// iterator — tears down every pullBase goroutine and its captured upstream
// pull, not just that one call.
func newZipEngine[T any](bases []Iterator[T], cfg config) *zipEngine[T] {
	n := len(bases)
	permits := make([]chan struct{}, n)
	for i := range permits {
		permits[i] = make(chan struct{}, 1)
	}
	return &zipEngine[T]{
		bases:    bases,
		n:        n,
		permits:  permits,
		outcomes: make(chan zipOutcome[T], n),
		cell: critical.NewCell(zipRoundState[T]{
			results: make(map[int]T),
			sent:    make(map[int]bool),
		}),
		priority: cfg.priority,
		tuples: cfg.metrics.Counter(
			"reactive.zip.tuples",
			metrics.WithDescription("tuples emitted by a completed zip round"),
		),
		failures: cfg.metrics.Counter(
			"reactive.zip.failures",
			metrics.WithDescription("zip rounds ended by a base failure"),
		),
	}
}

func (e *zipEngine[T]) start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.driverCtx, e.cancelDriver = context.WithCancel(withPriority(ctx, e.priority))
		for i, base := range e.bases {
			go e.pullBase(i, base)
		}
	})
}

// pullBase loops: park for permission, pull once, report the outcome, loop.
func (e *zipEngine[T]) pullBase(i int, base Iterator[T]) {
	for {
		select {
		case <-e.permits[i]:
		case <-e.driverCtx.Done():
			return
		}
		v, ok, err := safePull(e.driverCtx, base)
		if err != nil {
			err = newBaseTaggedError(err, i)
		}
		select {
		case e.outcomes <- zipOutcome[T]{idx: i, v: v, ok: ok, err: err}:
		case <-e.driverCtx.Done():
			return
		}
	}
}

// Next implements one consumer demand. It is not safe for concurrent
// calls from multiple goroutines — like every Iterator in this package, a
// zip is pulled by one logical consumer at a time. A Next call that is
// itself cancelled mid-round leaves the round's partial results and
// outstanding permits intact for the next call to continue from.
func (e *zipEngine[T]) Next(ctx context.Context) ([]T, bool, error) {
	type outcomeKind int
	const (
		kindPending outcomeKind = iota
		kindTuple
		kindEnded
		kindFailed
	)
	type decision struct {
		kind  outcomeKind
		tuple []T
	}

	if critical.WithRegion(e.cell, func(s *zipRoundState[T]) bool { return s.finished }) {
		return nil, false, nil
	}
	e.start(ctx)

	toGrant := critical.WithRegion(e.cell, func(s *zipRoundState[T]) []int {
		var grant []int
		for i := 0; i < e.n; i++ {
			if _, have := s.results[i]; have {
				continue
			}
			if s.sent[i] {
				continue
			}
			s.sent[i] = true
			grant = append(grant, i)
		}
		return grant
	})
	for _, i := range toGrant {
		e.permits[i] <- struct{}{}
	}

	for {
		select {
		case out := <-e.outcomes:
			d := critical.WithRegion(e.cell, func(s *zipRoundState[T]) decision {
				if s.finished {
					return decision{kind: kindEnded}
				}
				delete(s.sent, out.idx)
				switch {
				case out.err != nil:
					s.finished = true
					return decision{kind: kindFailed}
				case !out.ok:
					s.finished = true
					return decision{kind: kindEnded}
				}
				s.results[out.idx] = out.v
				if len(s.results) < e.n {
					return decision{kind: kindPending}
				}
				tuple := make([]T, e.n)
				for i := 0; i < e.n; i++ {
					tuple[i] = s.results[i]
				}
				s.results = make(map[int]T)
				return decision{kind: kindTuple, tuple: tuple}
			})
			switch d.kind {
			case kindPending:
				// round still incomplete, keep waiting on outcomes
			case kindTuple:
				e.tuples.Add(1)
				return d.tuple, true, nil
			case kindEnded:
				e.cancelDriver()
				return nil, false, nil
			case kindFailed:
				e.cancelDriver()
				e.failures.Add(1)
				return nil, false, out.err
			}
		case <-ctx.Done():
			return nil, false, nil
		}
	}
}
