package reactive

import "context"

// Priority is an opaque scheduling hint threaded through to the goroutines
// a combinator spawns to pull its upstream Iterators. This package never
// interprets it — passing it through untouched is the entire contract
// (see spec's non-goal: no priority scheduling beyond a single hint).
type Priority int

// PriorityNormal is the default hint carried when no WithPriority option
// is supplied.
const PriorityNormal Priority = 0

// priorityKey is the context.Context key under which a Priority travels;
// an unexported struct type, so no other package can collide with it.
type priorityKey struct{}

// withPriority returns a context carrying p, retrievable with PriorityFromContext.
func withPriority(ctx context.Context, p Priority) context.Context {
	return context.WithValue(ctx, priorityKey{}, p)
}

// PriorityFromContext returns the Priority hint carried by ctx, or
// PriorityNormal if none was attached.
func PriorityFromContext(ctx context.Context) Priority {
	if p, ok := ctx.Value(priorityKey{}).(Priority); ok {
		return p
	}
	return PriorityNormal
}
