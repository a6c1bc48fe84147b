// Package scoring evaluates team compositions against a catalog.
//
// Two policies exist. StandUnited rewards every active trait and is
// maximized. BuiltDifferent penalizes every duplicate slot and every active
// trait and is minimized. Both count traits over distinct champions only.
package scoring

import (
	"math"
	"slices"

	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/model"
)

// Tier bonus divisors of the two policies.
const (
	standUnitedTierDivisor    = 5.0
	builtDifferentTierDivisor = 10.0
	penaltyWeight             = 2
)

// maxTierBonus caps the tier bonus so fitness arithmetic cannot overflow.
const maxTierBonus = math.MaxInt32

// Result is the outcome of scoring one solution.
type Result struct {
	// Primary is the number of active traits (StandUnited) or the number of
	// penalty points (BuiltDifferent).
	Primary int
	// Fitness is the value searches compare. Its direction depends on the policy.
	Fitness int
}

// ScoreFunc scores a solution. Implementations must be pure.
type ScoreFunc func(c *catalog.Catalog, s model.Solution) Result

// Strategy bundles a scoring policy with its improvement direction.
type Strategy struct {
	Mode  catalog.Mode
	Score ScoreFunc
	// Better reports whether fitness a strictly improves on fitness b.
	Better func(a, b int) bool
	// Worst is a fitness every real solution improves on.
	Worst int
}

// StandUnited maximizes active traits plus an optional tier bonus.
var StandUnited = Strategy{ //nolint:gochecknoglobals // immutable policy value
	Mode:   catalog.ModeStandUnited,
	Score:  Maximize,
	Better: func(a, b int) bool { return a > b },
	Worst:  math.MinInt,
}

// BuiltDifferent minimizes penalties and rewards penalty-free teams with a
// negative tier bonus.
var BuiltDifferent = Strategy{ //nolint:gochecknoglobals // immutable policy value
	Mode:   catalog.ModeBuiltDifferent,
	Score:  Minimize,
	Better: func(a, b int) bool { return a < b },
	Worst:  math.MaxInt,
}

// ForMode returns the strategy of a mode.
func ForMode(mode catalog.Mode) (Strategy, error) {
	switch mode {
	case catalog.ModeStandUnited:
		return StandUnited, nil
	case catalog.ModeBuiltDifferent:
		return BuiltDifferent, nil
	default:
		return Strategy{}, catalog.ErrUnknownMode
	}
}

// Maximize scores s under the StandUnited policy.
func Maximize(c *catalog.Catalog, s model.Solution) Result {
	t := walk(c, s)
	primary := active(c, t.counts)
	fitness := primary
	if c.WeightTiers() {
		fitness += tierBonus(t.tierSum, standUnitedTierDivisor, c.TierCoefficient())
	}
	return Result{Primary: primary, Fitness: fitness}
}

// Minimize scores s under the BuiltDifferent policy. Meeting a trait
// threshold counts as a penalty here.
func Minimize(c *catalog.Catalog, s model.Solution) Result {
	t := walk(c, s)
	primary := t.duplicates + active(c, t.counts)
	if primary > 0 {
		return Result{Primary: primary, Fitness: primary * penaltyWeight}
	}
	fitness := 0
	if c.WeightTiers() {
		fitness = -tierBonus(t.tierSum, builtDifferentTierDivisor, c.TierCoefficient())
	}
	return Result{Primary: 0, Fitness: fitness}
}

// TraitCounts tallies, for every trait present on the team, how many distinct
// champions carry it.
func TraitCounts(c *catalog.Catalog, s model.Solution) map[int]int {
	return walk(c, s).counts
}

// tierBonus is tierSum/divisor*coef truncated toward zero and saturated at
// maxTierBonus.
func tierBonus(tierSum int, divisor, coef float64) int {
	bonus := float64(tierSum) / divisor * coef
	if math.IsNaN(bonus) || bonus <= 0 {
		return 0
	}
	if bonus >= maxTierBonus {
		return maxTierBonus
	}
	return int(bonus)
}

type tally struct {
	counts     map[int]int
	tierSum    int
	duplicates int
}

// walk visits s once. Trait tags of a champion are tallied the first time its
// key appears; tiers are summed for every slot.
func walk(c *catalog.Catalog, s model.Solution) tally {
	t := tally{counts: make(map[int]int)}
	for i, key := range s {
		ch := c.Champion(key)
		t.tierSum += ch.Tier
		if slices.Contains(s[:i], key) {
			t.duplicates++
			continue
		}
		for _, trait := range ch.Traits {
			t.counts[trait]++
		}
	}
	return t
}

func active(c *catalog.Catalog, counts map[int]int) int {
	n := 0
	for key, count := range counts {
		if tr, ok := c.Trait(key); ok && tr.Min <= count {
			n++
		}
	}
	return n
}
