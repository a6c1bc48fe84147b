// Package service wires catalog loading, search admission and the worker
// pool into the operations the HTTP API exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/synergy/internal/adapters/mq/queue"
	"github.com/okian/synergy/internal/adapters/mq/worker"
	"github.com/okian/synergy/internal/adapters/repository"
	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/search"
	"github.com/okian/synergy/internal/domain/types"
	"github.com/okian/synergy/pkg/logger"
	"github.com/okian/synergy/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize     = 1024
	defaultSearchTimeout = 30 * time.Second
)

// Service implements the API dependencies for the optimizer.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	searcher worker.Searcher
	queue    *queue.InMemoryQueue
	pool     *worker.Pool

	workerCount   int
	queueSize     int
	iterations    int
	searchTimeout time.Duration
	defaultMode   catalog.Mode
	seed          *int64

	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU(),
		queueSize:     defaultQueueSize,
		iterations:    search.DefaultIterations,
		searchTimeout: defaultSearchTimeout,
		defaultMode:   catalog.ModeStandUnited,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewFileStore()
	}

	s.logger.Info(ctx, "starting optimizer service...")

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	var wopts []worker.Option
	if s.seed != nil {
		wopts = append(wopts, worker.WithSeed(*s.seed))
	}
	if s.searcher == nil {
		s.searcher = worker.NewILSSearcher(search.WithIterations(s.iterations))
	}
	s.pool = worker.NewPool(s.workerCount, s.queue, s.searcher, wopts...)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "optimizer service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("iterations", s.iterations),
		logger.Duration("searchTimeout", s.searchTimeout),
		logger.String("defaultMode", s.defaultMode.String()),
	)
	return nil
}

// Stop closes admission and waits for queued searches to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping optimizer service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "optimizer service stopped")
}

// Solve searches for a team. Loading failures of the catalog surface as
// errors wrapping repository.ErrCatalogUnavailable; a full queue yields
// ErrBackpressure and a search that outlives the timeout yields ErrTimeout.
func (s *Service) Solve(ctx context.Context, req types.SolveRequest) (types.Team, error) {
	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		return types.Team{}, err
	}
	if math.IsNaN(req.TierCoefficient) || req.TierCoefficient < 0 || req.TierCoefficient > types.MaxTierCoefficient {
		return types.Team{}, fmt.Errorf("%w: tier coefficient %v", ErrInvalidRequest, req.TierCoefficient)
	}
	size := search.ClampSize(req.Size)

	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	c, err := s.catalogStore().Catalog(ctx, mode,
		catalog.WithWeightTiers(req.HighTier),
		catalog.WithTierCoefficient(req.TierCoefficient),
	)
	if err != nil {
		metrics.RecordSearch(mode.String(), "error")
		return types.Team{}, err
	}

	result := make(chan model.Outcome, 1)
	job := model.Job{
		ID:       uuid.NewString(),
		Catalog:  c,
		Size:     size,
		Enqueued: time.Now(),
		Result:   result,
	}
	if dl, ok := ctx.Deadline(); ok {
		job.Deadline = dl
	}

	if err := s.enqueue(ctx, job); err != nil {
		metrics.RecordSearch(mode.String(), "rejected")
		return types.Team{}, err
	}
	s.logger.Debug(ctx, "search enqueued",
		logger.String("job_id", job.ID),
		logger.String("mode", mode.String()),
		logger.Int("size", size),
		logger.Bool("highTier", req.HighTier),
	)

	select {
	case out := <-result:
		if out.Err != nil {
			if errors.Is(out.Err, worker.ErrExpired) {
				metrics.RecordSearch(mode.String(), "timeout")
				return types.Team{}, fmt.Errorf("%w: %w", ErrTimeout, out.Err)
			}
			metrics.RecordSearch(mode.String(), "error")
			return types.Team{}, out.Err
		}
		metrics.RecordSearch(mode.String(), "ok")
		return teamFrom(c, out), nil
	case <-ctx.Done():
		// The worker finishes the search and drops the outcome.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.RecordSearch(mode.String(), "timeout")
			return types.Team{}, fmt.Errorf("%w after %s", ErrTimeout, s.searchTimeout)
		}
		metrics.RecordSearch(mode.String(), "cancelled")
		return types.Team{}, ctx.Err()
	}
}

func (s *Service) enqueue(ctx context.Context, job model.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	if !s.queue.Enqueue(ctx, job) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %d searches waiting", ErrBackpressure, s.queue.Len(ctx))
	}
	return nil
}

// Traits returns the trait table of a mode's catalog keyed by trait key.
func (s *Service) Traits(ctx context.Context, mode string) (map[int]types.Trait, error) {
	m, err := s.resolveMode(mode)
	if err != nil {
		return nil, err
	}
	store := s.catalogStore()
	traits, err := store.Traits(ctx, m)
	if err != nil {
		return nil, err
	}
	out := make(map[int]types.Trait, len(traits))
	for _, t := range traits {
		out[t.Key] = types.Trait{Name: t.Name, Min: t.Min}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"iterations":  s.iterations,
		"defaultMode": s.defaultMode.String(),
	}
	if s.queue != nil {
		stats["queueLength"] = s.queue.Len(context.Background())
	}
	if s.pool != nil {
		stats["busyWorkers"] = s.pool.Busy()
		stats["completedSearches"] = s.pool.Processed()
	}
	return stats
}

func (s *Service) resolveMode(name string) (catalog.Mode, error) {
	if name == "" {
		return s.defaultMode, nil
	}
	mode, err := catalog.ParseMode(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return mode, nil
}

func (s *Service) catalogStore() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return repository.NewFileStore()
	}
	return s.store
}

// teamFrom expands an outcome into full champion records.
func teamFrom(c *catalog.Catalog, out model.Outcome) types.Team { //nolint:gocritic // hugeParam: read-only copy
	team := types.Team{
		ID:         out.JobID,
		Mode:       c.Mode().String(),
		Champions:  make([]types.Champion, 0, out.Solution.Len()),
		Evaluation: out.Primary,
		Fitness:    out.Fitness,
		Traits:     out.Traits,
	}
	for _, key := range out.Solution {
		ch := c.Champion(key)
		team.Champions = append(team.Champions, types.Champion{ID: ch.Name, Tier: ch.Tier, Traits: ch.Traits})
	}
	return team
}
