package reactive

// envelope carries the outcome delivered to a parked Next call: an element
// (ok == true), normal completion (ok == false, err == nil), or failure
// (ok == false, err != nil).
type envelope[T any] struct {
	value T
	ok    bool
	err   error
}

// continuation is this module's rendering of the spec's one-shot
// Continuation<V>: a capacity-1 channel. Exactly one resume is ever sent on
// a given continuation — enforced by construction, since every site that
// creates one captures it inside a critical.WithRegion call and only the
// transition that later clears it from state is allowed to resume it.
type continuation[T any] chan envelope[T]

// newContinuation allocates a parked continuation.
func newContinuation[T any]() continuation[T] {
	return make(continuation[T], 1)
}

// resumeValue delivers an element to a parked continuation.
func resumeValue[T any](c continuation[T], v T) {
	c <- envelope[T]{value: v, ok: true}
}

// resumeEnd delivers normal completion or failure to a parked continuation.
func resumeEnd[T any](c continuation[T], err error) {
	c <- envelope[T]{err: err}
}

// signal is a continuation carrying no payload (spec's Continuation<()>) —
// used to wake a WithLatestFrom demand parked until other's first value.
type signal chan struct{}

func newSignal() signal { return make(signal, 1) }

func (s signal) fire() { s <- struct{}{} }
