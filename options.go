package modelvalidator

import (
	"runtime"

	"github.com/gomodel/validator/pkg/logger"
)

// Option configures the validation engine.
type Option func(*Options)

// Options holds all configuration for the validation engine.
type Options struct {
	// MaxDepth is the maximum allowed traversal depth. Exceeding it is a
	// usage error that aborts the traversal; zero means unbounded.
	MaxDepth int

	// ValidateParentsOnChildFailure makes the visitor run a complex
	// node's own rules even when one of its children failed.
	ValidateParentsOnChildFailure bool

	// MaxErrors caps the number of error messages recorded per
	// validation call; zero means unlimited.
	MaxErrors int

	// WorkerCount bounds concurrent roots in batch validation.
	WorkerCount int

	// CollectMetrics enables the atomic metrics counters.
	CollectMetrics bool

	// Logger receives debug and trace output from the engine.
	Logger *logger.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxDepth:                      0, // unbounded
		ValidateParentsOnChildFailure: false,
		MaxErrors:                     200,
		WorkerCount:                   runtime.NumCPU(),
		CollectMetrics:                true,
		Logger:                        logger.Default(),
	}
}

// WithMaxDepth limits traversal depth. Graphs deeper than depth abort with
// a usage error before any deeper node is evaluated.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithValidateParentsOnChildFailure controls whether a complex node's own
// rules still run after one of its children failed.
func WithValidateParentsOnChildFailure(enable bool) Option {
	return func(o *Options) {
		o.ValidateParentsOnChildFailure = enable
	}
}

// WithMaxErrors caps recorded errors per validation call. Zero means
// unlimited.
func WithMaxErrors(n int) Option {
	return func(o *Options) {
		o.MaxErrors = n
	}
}

// WithWorkerCount sets the number of concurrent workers used by batch
// validation. Values below one are ignored.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithMetrics enables or disables metrics collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}

// WithLogger sets the logger used by the engine. Nil is ignored.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
