package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/synergy/pkg/logger"
)

// Run executes a complete probe: health check, trait tables, concurrent
// solve requests with verification and final statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		RunID:          uuid.NewString(),
		StartTime:      time.Now(),
		EvaluationSums: make(map[string]int),
	}
	log := logger.Get().Named("probe").With(logger.String("run", stats.RunID))

	log.Info(ctx, "starting synergy probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int("maxSize", config.MaxSize),
		logger.Bool("highTier", config.HighTier))

	client := newHTTPClient(config.Timeout)

	if err := client.getJSON(ctx, config.BaseURL+"/healthz", nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	tables := make(map[string]map[int]Trait, 2)
	for _, mode := range []string{ModeStandUnited, ModeBuiltDifferent} {
		var table map[int]Trait
		if err := client.getJSON(ctx, config.BaseURL+"/traits?augment="+mode, &table); err != nil {
			return stats, fmt.Errorf("trait table %s: %w", mode, err)
		}
		tables[mode] = table
		log.Info(ctx, "trait table loaded", logger.String("mode", mode), logger.Int("traits", len(table)))
	}

	requests := generateRequests(config.Requests, config.MaxSize)
	solveAll(ctx, client, config, requests, tables, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Inconsistent > 0 {
		return stats, fmt.Errorf("%d inconsistent responses", stats.Inconsistent)
	}
	return stats, nil
}

// result is the outcome of one solve call.
type result struct {
	mode       string
	evaluation int
	latency    time.Duration
	err        error
}

// solveAll sends requests with a fixed worker pool and folds the results into stats.
func solveAll(ctx context.Context, client *httpClient, config *Config, requests []Request,
	tables map[string]map[int]Trait, stats *Stats, log logger.Logger,
) {
	workers := max(config.Workers, 1)
	jobs := make(chan Request, workers*WorkerChannelMultiplier)
	results := make(chan result, workers*WorkerChannelMultiplier)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				results <- solveOne(ctx, client, config, req, tables[req.Mode])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, req := range requests {
			select {
			case <-ctx.Done():
				return
			case jobs <- req:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		stats.Sent++
		stats.TotalLatency += r.latency
		stats.MaxLatency = max(stats.MaxLatency, r.latency)

		var statusErr *StatusError
		switch {
		case r.err == nil:
			stats.Verified++
			stats.EvaluationSums[r.mode] += r.evaluation
		case errors.Is(r.err, ErrTeamSize), errors.Is(r.err, ErrBreakdown), errors.Is(r.err, ErrEvaluation):
			stats.Inconsistent++
			log.Error(ctx, "inconsistent response", logger.Error(r.err))
		case errors.As(r.err, &statusErr) && statusErr.Status == http.StatusTooManyRequests:
			stats.RateLimited++
		default:
			stats.Failed++
			if config.Verbose {
				log.Warn(ctx, "solve failed", logger.Error(r.err))
			}
		}
	}
}

func solveOne(ctx context.Context, client *httpClient, config *Config, req Request, traits map[int]Trait) result {
	url := config.BaseURL + "/solve/" + strconv.Itoa(req.Size) +
		"?augment=" + req.Mode + "&high_tier=" + strconv.FormatBool(config.HighTier)

	start := time.Now()
	var team Team
	err := client.getJSON(ctx, url, &team)
	r := result{mode: req.Mode, latency: time.Since(start)}
	if err != nil {
		r.err = err
		return r
	}
	r.evaluation = team.Evaluation
	r.err = verifyTeam(req, &team, traits)
	return r
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, requestsPerSecond float64
	var avgLatency time.Duration

	if stats.Sent > 0 {
		successRate = float64(stats.Verified) / float64(stats.Sent) * PercentageMultiplier
		avgLatency = stats.TotalLatency / time.Duration(stats.Sent)
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Sent) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("sent", stats.Sent),
		logger.Int("verified", stats.Verified),
		logger.Int("inconsistent", stats.Inconsistent),
		logger.Int("rateLimited", stats.RateLimited),
		logger.Int("failed", stats.Failed),
		logger.Duration("avgLatency", avgLatency),
		logger.Duration("maxLatency", stats.MaxLatency),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
		logger.Any("evaluationSums", stats.EvaluationSums))
}
