package expcache

import (
	"go.uber.org/zap"

	"expcache/events"
	"expcache/reclaim"
	"expcache/scheduler"
)

// Option customizes a cache at construction.
type Option func(*config)

type config struct {
	scheduler scheduler.Scheduler
	sink      events.Sink
	policy    reclaim.Policy
	logger    *zap.Logger
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = scheduler.Default()
	}
	if cfg.sink == nil {
		cfg.sink = events.Nop{}
	}
	if cfg.policy == nil {
		cfg.policy = reclaim.None()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// WithScheduler makes the cache schedule its sweep on s instead of the
// process-wide default. One scheduler can serve many caches; tests inject
// a controlled one here for deterministic sweeps.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(cfg *config) { cfg.scheduler = s }
}

// WithSink registers a trace-event sink. Without one, events go nowhere.
func WithSink(sink events.Sink) Option {
	return func(cfg *config) { cfg.sink = sink }
}

// WithReclamation installs a memory-pressure reclamation policy. The
// default is reclaim.None: payloads live exactly as long as their entries.
// The policy is borrowed, not owned: Close on the cache does not close it.
func WithReclamation(policy reclaim.Policy) Option {
	return func(cfg *config) { cfg.policy = policy }
}

// WithLogger enables the cache's own debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}
