package search

import (
	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/scoring"
)

// incumbent is the state threaded through ILS rounds.
type incumbent struct {
	best    model.Solution
	fitness int
}

// consider folds a converged solution into the incumbent. better decides the
// direction; ties keep the incumbent.
func (in incumbent) consider(s model.Solution, fitness int, better func(a, b int) bool) (incumbent, bool) {
	if !better(fitness, in.fitness) {
		return in, false
	}
	return incumbent{best: s.Clone(), fitness: fitness}, true
}

// ILS runs iterated local search from init and returns the best solution it
// met. Every round converges the current solution with LocalSearch, records it
// when it beats the best so far, then perturbs it to seed the next round
// whether or not it improved. init is not modified.
func ILS(c *catalog.Catalog, st scoring.Strategy, init model.Solution, rng Rand, opts ...Option) (model.Solution, model.SearchStats) {
	o := newOptions(opts...)

	acc := incumbent{best: init.Clone(), fitness: st.Score(c, init).Fitness}
	stats := model.SearchStats{}
	current := init.Clone()

	for round := 0; round < o.iterations; round++ {
		converged, ls := LocalSearch(c, st, current)
		stats.Rounds++
		stats.Passes += ls.Passes
		stats.Evaluations += ls.Evaluations

		fitness := st.Score(c, converged).Fitness
		var improved bool
		acc, improved = acc.consider(converged, fitness, st.Better)
		if improved {
			stats.Improvements++
		}
		if o.onRound != nil {
			o.onRound(round, fitness, acc.fitness)
		}

		Perturb(c, converged, rng)
		current = converged
	}
	return acc.best, stats
}
