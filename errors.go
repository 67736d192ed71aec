package reactive

import "errors"

// Namespace prefixes every sentinel error this package defines.
const Namespace = "reactive"

var (
	// ErrReplayCapacity is returned by NewReplaySubject / NewFailableReplaySubject
	// when buffer_size < 1. Capacity zero is deliberately rejected rather than
	// silently "never replays" — see the Replay capacity design note.
	ErrReplayCapacity = errors.New(Namespace + ": replay subject requires buffer size >= 1")

	// ErrElementPanicked marks a failure produced by recovering a panic
	// inside an upstream Next pulled through safePull by a combinator's
	// driver goroutine, or inside Assign's setter. The callbacks of Map,
	// Scan and HandleEvents are called without recovery.
	ErrElementPanicked = errors.New(Namespace + ": callback panicked")
)
