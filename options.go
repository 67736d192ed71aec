package reactive

import "github.com/ygrebnov/reactive/metrics"

// Option configures shared construction settings for combinators and
// broadcast constructs.
type Option func(*config)

// WithMetrics injects a metrics.Provider that the Zip and Merge drivers
// record their counters into. The default is metrics.NewNoopProvider(),
// which discards everything.
func WithMetrics(p metrics.Provider) Option {
	return func(c *config) {
		if p != nil {
			c.metrics = p
		}
	}
}

// WithPriority attaches an opaque priority hint that is threaded, via
// context.Context, into every goroutine a combinator spawns to pull an
// upstream Iterator. Per this package's non-goals, the hint is carried and
// never interpreted here — see priority.go.
func WithPriority(p Priority) Option {
	return func(c *config) { c.priority = p }
}
