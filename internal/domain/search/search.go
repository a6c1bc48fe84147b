package search

import (
	"fmt"

	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
	"github.com/okian/synergy/internal/domain/scoring"
)

// Team size bounds.
const (
	MinTeamSize = 1
	MaxTeamSize = 11
)

// ClampSize forces n into [MinTeamSize, MaxTeamSize].
func ClampSize(n int) int {
	return max(MinTeamSize, min(n, MaxTeamSize))
}

// Search builds a random team of the given size, optimizes it with the
// strategy of the catalog's mode and reports the best team found together
// with its primary metric and trait breakdown. Callers clamp size first;
// Search rejects sizes outside [MinTeamSize, MaxTeamSize] instead of fixing them.
func Search(c *catalog.Catalog, size int, rng Rand, opts ...Option) (model.Outcome, error) {
	if size < MinTeamSize || size > MaxTeamSize {
		return model.Outcome{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	st, err := scoring.ForMode(c.Mode())
	if err != nil {
		return model.Outcome{}, err
	}

	init := RandomSolution(c, size, rng)
	best, stats := ILS(c, st, init, rng, opts...)
	res := st.Score(c, best)

	return model.Outcome{
		Solution: best,
		Primary:  res.Primary,
		Fitness:  res.Fitness,
		Traits:   scoring.TraitCounts(c, best),
		Stats:    stats,
	}, nil
}
