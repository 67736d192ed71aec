package reactive

import (
	"context"
	"sync"
)

// EventHandlers are the side-channel hooks HandleEvents invokes. Any of
// them may be nil.
type EventHandlers[T any] struct {
	Start   func()
	Element func(T)
	Cancel  func()
	Finish  func(error)
}

// HandleEvents taps source's lifecycle without altering it: Start fires
// before the first pull, Element on every delivered value, Cancel when a
// pull ends via context cancellation, and Finish when the sequence ends
// normally or with an error (nil error for normal end).
func HandleEvents[T any](source Iterator[T], h EventHandlers[T]) Iterator[T] {
	var startOnce sync.Once
	return IteratorFunc[T](func(ctx context.Context) (T, bool, error) {
		if h.Start != nil {
			startOnce.Do(h.Start)
		}
		v, ok, err := source.Next(ctx)
		switch {
		case err != nil:
			if h.Finish != nil {
				h.Finish(err)
			}
		case !ok:
			if ctx.Err() != nil {
				if h.Cancel != nil {
					h.Cancel()
				}
			} else if h.Finish != nil {
				h.Finish(nil)
			}
		default:
			if h.Element != nil {
				h.Element(v)
			}
		}
		return v, ok, err
	})
}
