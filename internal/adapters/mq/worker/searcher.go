package worker

import (
	"context"
	"time"

	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/search"
	"github.com/okian/synergy/pkg/metrics"
)

// ILSSearcher runs the iterated local search for a job and records its
// search metrics.
type ILSSearcher struct {
	opts []search.Option
}

// NewILSSearcher creates a Searcher running search.Search with opts.
func NewILSSearcher(opts ...search.Option) *ILSSearcher {
	return &ILSSearcher{opts: opts}
}

// Search implements Searcher. The search itself is not interruptible; ctx
// is only checked before it starts.
func (s *ILSSearcher) Search(ctx context.Context, j Job, rng search.Rand) (model.Outcome, error) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	if err := ctx.Err(); err != nil {
		return model.Outcome{}, err
	}
	if j.Catalog == nil {
		return model.Outcome{}, ErrNoCatalog
	}

	mode := j.Catalog.Mode().String()
	start := time.Now()
	out, err := search.Search(j.Catalog, j.Size, rng, s.opts...)
	if err != nil {
		return model.Outcome{}, err
	}
	metrics.RecordSearchDuration(mode, float64(time.Since(start).Microseconds())/1000)
	metrics.RecordLocalSearchPasses(out.Stats.Passes)
	metrics.RecordILSImprovements(out.Stats.Improvements)
	metrics.UpdateBestFitness(mode, out.Fitness)
	metrics.RecordSearchEvaluation(mode, out.Primary)
	return out, nil
}
