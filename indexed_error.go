package reactive

import (
	"errors"
	"fmt"
)

// BaseError exposes which upstream, by index, produced a multi-input
// combinator's failure. Adapted from the teacher's TaskMetaError
// (error_tagging.go): same id/unwrap shape, generalized from a task's
// (id, index) pair to a base's index alone, since combinators in this
// package never assign user-facing ids to their upstreams.
type BaseError interface {
	error
	Unwrap() error
	BaseIndex() int
}

type baseTaggedError struct {
	err   error
	index int
}

func newBaseTaggedError(err error, index int) error {
	if err == nil {
		return nil
	}
	return &baseTaggedError{err: err, index: index}
}

func (e *baseTaggedError) Error() string  { return e.err.Error() }
func (e *baseTaggedError) Unwrap() error  { return e.err }
func (e *baseTaggedError) BaseIndex() int { return e.index }

func (e *baseTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "base(index=%d): %+v", e.index, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractBaseIndex returns the index of the base that produced err, if tagged.
func ExtractBaseIndex(err error) (int, bool) {
	var be BaseError
	if errors.As(err, &be) {
		return be.BaseIndex(), true
	}
	return 0, false
}
