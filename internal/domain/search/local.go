// Package search implements the local search and iterated local search
// drivers that look for high-synergy teams.
package search

import (
	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/scoring"
)

// LocalStats reports the work of one LocalSearch call.
type LocalStats struct {
	Passes      int
	Evaluations int
}

// LocalSearch climbs from init until no single-slot substitution improves it.
//
// Each pass tries every champion key in every slot and remembers the first
// strictly better candidate it sees; a later candidate with equal fitness
// never replaces it. The candidate is adopted when it strictly improves on the
// pass's starting fitness, otherwise the current solution is a local optimum.
// The result is deterministic and init is not modified.
func LocalSearch(c *catalog.Catalog, st scoring.Strategy, init model.Solution) (model.Solution, LocalStats) {
	solution := init.Clone()
	fitness := st.Score(c, solution).Fitness
	stats := LocalStats{Evaluations: 1}
	pool := c.PoolSize()

	for {
		stats.Passes++

		var candidate model.Solution
		candidateFitness := st.Worst
		for i := range solution {
			prev := solution[i]
			for key := 1; key <= pool; key++ {
				solution[i] = key
				f := st.Score(c, solution).Fitness
				stats.Evaluations++
				if st.Better(f, candidateFitness) {
					candidate = solution.Clone()
					candidateFitness = f
				}
			}
			solution[i] = prev
		}

		if candidate == nil || !st.Better(candidateFitness, fitness) {
			return solution, stats
		}
		solution, fitness = candidate, candidateFitness
	}
}
