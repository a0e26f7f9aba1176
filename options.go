package relago

import "log/slog"

type options struct {
	cascade          bool
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Registry constructor behavior.
type Option func(*options)

// WithDestructionCascade enables or disables the destruction cascade.
//
// When enabled, the registry subscribes to the world's entity-destroyed
// notification and removes every forward and reverse entry referencing a
// destroyed entity from its partners. Disabled by default; without it,
// callers are responsible for removing relationships before destroying
// entities.
func WithDestructionCascade(enabled bool) Option {
	return func(o *options) {
		o.cascade = enabled
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		cascade:          false,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
