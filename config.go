package reactive

import "github.com/ygrebnov/reactive/metrics"

// config holds the shared, cross-cutting construction settings for every
// combinator and broadcast construct in this package: the metrics provider
// instruments record into, and the priority hint threaded through to
// spawned driver goroutines. Component-specific settings (e.g. a Replay
// subject's buffer size) are constructor arguments, not Options, since
// they participate in the component's correctness rather than being
// advisory.
type config struct {
	metrics  metrics.Provider
	priority Priority
}

// defaultConfig centralizes default values for config. Applied as the base
// before Options are folded in.
func defaultConfig() config {
	return config{
		metrics:  metrics.NewNoopProvider(),
		priority: PriorityNormal,
	}
}

// buildConfig applies opts over defaultConfig. Every Option builder in
// options.go produces a config that is valid by construction (WithMetrics
// ignores a nil provider, Priority is an opaque int with no invalid range),
// so there is no separate validation step; buildConfig still returns an
// error to keep every combinator constructor's call site
// (`cfg, err := buildConfig(opts...)`) uniform regardless of what future
// Options might need to reject.
func buildConfig(opts ...Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg, nil
}
