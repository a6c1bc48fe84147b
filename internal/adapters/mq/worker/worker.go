// Package worker runs queued search jobs on a fixed pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/synergy/internal/adapters/mq/queue"
	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/search"
	"github.com/okian/synergy/pkg/logger"
	"github.com/okian/synergy/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = queue.Job

// Searcher runs one search job with the worker's random source.
type Searcher interface {
	Search(ctx context.Context, j Job, rng search.Rand) (model.Outcome, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs and delivers outcomes on each job's result channel.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	searcher Searcher
	name     string

	seed   int64
	seeded bool
	rng    *rand.Rand

	// busy is shared with the owning pool, if any.
	busy      *atomic.Int64
	processed *atomic.Int64

	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, searcher Searcher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		searcher:  searcher,
		name:      "worker",
		busy:      new(atomic.Int64),
		processed: new(atomic.Int64),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	if !w.seeded {
		w.seed = time.Now().UnixNano()
	}
	w.reseed(w.seed)
	return w
}

// reseed replaces the worker's random source. Each worker owns its source;
// *rand.Rand is not safe for concurrent use.
func (w *InMemoryWorker) reseed(seed int64) {
	w.seed = seed
	w.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // search randomness, not security
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Shutdown stops the worker after its current job. It may be called more
// than once.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// stop signals Run to return.
func (w *InMemoryWorker) stop() {
	w.stopOnce.Do(func() { close(w.shutdown) })
}

// Processed returns the number of jobs this worker completed.
func (w *InMemoryWorker) Processed() int64 { return w.processed.Load() }

// process runs a single job and delivers its outcome.
func (w *InMemoryWorker) process(ctx context.Context, j Job) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	metrics.RecordQueueDequeue()
	if !j.Enqueued.IsZero() {
		metrics.RecordQueueWaitLatency(float64(time.Since(j.Enqueued).Microseconds()) / 1000)
	}

	if !j.Deadline.IsZero() && time.Now().After(j.Deadline) {
		w.logger.Debug(ctx, "skipping expired job", logger.String("job_id", j.ID))
		w.deliver(j, model.Outcome{JobID: j.ID, Err: ErrExpired})
		return
	}

	w.busy.Add(1)
	start := time.Now()
	out, err := w.searcher.Search(ctx, j, w.rng)
	elapsed := time.Since(start)
	w.busy.Add(-1)
	metrics.RecordWorkerProcessingLatency(float64(elapsed.Microseconds()) / 1000)

	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "search_error")
		w.logger.Error(ctx, "search failed",
			logger.String("job_id", j.ID),
			logger.Int("size", j.Size),
			logger.Error(err),
		)
		w.deliver(j, model.Outcome{JobID: j.ID, Err: fmt.Errorf("job %s: %w", j.ID, err)})
		return
	}

	w.processed.Add(1)
	out.JobID = j.ID
	w.logger.Debug(ctx, "search finished",
		logger.String("job_id", j.ID),
		logger.Int("size", j.Size),
		logger.Int("fitness", out.Fitness),
		logger.Int("rounds", out.Stats.Rounds),
		logger.Duration("took", elapsed),
	)
	w.deliver(j, out)
}

// deliver never blocks: the result channel is buffered and the caller may
// already be gone.
func (w *InMemoryWorker) deliver(j Job, out model.Outcome) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	if j.Result == nil {
		return
	}
	select {
	case j.Result <- out:
	default:
		w.logger.Warn(context.Background(), "dropping outcome, result channel full", logger.String("job_id", j.ID))
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	busy      atomic.Int64
	processed atomic.Int64
	stopped   atomic.Bool

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers sharing q and searcher.
// A workerCount below one selects runtime.NumCPU(). opts apply to every
// worker; a WithSeed option gives worker i the seed base+i.
func NewPool(workerCount int, q Queue, searcher Searcher, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(q, searcher, append(opts[:len(opts):len(opts)], WithName("worker-"+strconv.Itoa(i)))...)
		w.reseed(w.seed + int64(i))
		w.busy = &pool.busy
		w.processed = &pool.processed
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Busy returns the number of workers currently running a search and
// publishes the active and idle gauges.
func (p *Pool) Busy() int {
	busy := int(p.busy.Load())
	metrics.UpdateWorkerActiveCount(busy)
	metrics.UpdateWorkerIdleCount(len(p.workers) - busy)
	return busy
}

// Processed returns the number of searches the pool completed.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Shutdown closes the queue, lets workers drain it and waits for them. A
// queue that cannot be closed is abandoned and workers stop after their
// current job.
func (p *Pool) Shutdown(ctx context.Context) error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	} else {
		for _, w := range p.workers {
			w.stop()
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	if timedOut {
		return fmt.Errorf("pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
