package worker

import (
	"github.com/okian/synergy/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSeed seeds the worker's random source. Workers in a pool get
// consecutive seeds starting at the pool seed.
func WithSeed(seed int64) Option {
	return func(w *InMemoryWorker) {
		w.seed = seed
		w.seeded = true
	}
}
