package service

import (
	"time"

	"github.com/okian/synergy/internal/adapters/mq/worker"
	"github.com/okian/synergy/internal/adapters/repository"
	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of search workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the number of searches that may wait for a worker.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the catalog source.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithIterations sets the number of ILS rounds per search.
func WithIterations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithSearchTimeout bounds how long Solve waits for a result.
func WithSearchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.searchTimeout = d
		}
	}
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(mode catalog.Mode) Option {
	return func(s *Service) {
		if mode != "" {
			s.defaultMode = mode
		}
	}
}

// WithSeed makes worker random sources deterministic.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = &seed
	}
}

// WithSearcher replaces the search run by the workers. WithIterations has
// no effect when a searcher is set.
func WithSearcher(searcher worker.Searcher) Option {
	return func(s *Service) {
		if searcher != nil {
			s.searcher = searcher
		}
	}
}
