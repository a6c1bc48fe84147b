package search

import (
	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
)

// maxPerturbation caps how many slots one perturbation overwrites.
const maxPerturbation = 3

// Rand is the random source searches draw from. *math/rand.Rand satisfies it;
// tests supply scripted sequences.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// RandomSolution returns a team of size champion keys drawn uniformly from
// the catalog pool.
func RandomSolution(c *catalog.Catalog, size int, rng Rand) model.Solution {
	s := make(model.Solution, size)
	for i := range s {
		s[i] = randomKey(c, rng)
	}
	return s
}

// Perturb overwrites min(len(s), 3) random slots of s in place with random
// champion keys. Each step draws the slot first, then the key; the same slot
// may be drawn twice.
func Perturb(c *catalog.Catalog, s model.Solution, rng Rand) {
	for range strength(len(s)) {
		i := rng.Intn(len(s))
		s[i] = randomKey(c, rng)
	}
}

func strength(size int) int {
	return min(size, maxPerturbation)
}

func randomKey(c *catalog.Catalog, rng Rand) int {
	return rng.Intn(c.PoolSize()) + 1
}
