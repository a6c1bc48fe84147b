// Package catalog holds the read-only champion and trait tables a search runs against.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Default catalog configuration constants.
const (
	defaultTierCoefficient = 1.0
)

// Mode selects the scoring policy of a search.
type Mode string

// Supported modes.
const (
	// ModeStandUnited maximizes the number of active traits.
	ModeStandUnited Mode = "standUnited"
	// ModeBuiltDifferent minimizes penalties: duplicates and active traits.
	ModeBuiltDifferent Mode = "builtDifferent"
)

// ParseMode resolves a mode name. An empty name selects ModeStandUnited.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standunited":
		return ModeStandUnited, nil
	case "builtdifferent", "bd":
		return ModeBuiltDifferent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

func (m Mode) String() string { return string(m) }

// Champion is a selectable catalog entry.
type Champion struct {
	Key    int    `json:"-"`
	Name   string `json:"id"`
	Tier   int    `json:"tier"`
	Traits []int  `json:"traits"`
}

// Trait is a synergy bucket that becomes active once Min distinct
// champions carrying it are on the team.
type Trait struct {
	Key  int    `json:"-"`
	Name string `json:"name"`
	Min  int    `json:"min"`
}

// Catalog is an immutable view of the champion pool and trait table plus the
// scoring configuration of one search.
type Catalog struct {
	// pool is indexed by champion key; pool[0] is unused.
	pool   []Champion
	traits map[int]Trait

	weightTiers     bool
	tierCoefficient float64
	mode            Mode
}

// Option applies a configuration option to a Catalog.
type Option func(*Catalog)

// WithWeightTiers enables the tier-weight bonus.
func WithWeightTiers(enabled bool) Option {
	return func(c *Catalog) {
		c.weightTiers = enabled
	}
}

// WithTierCoefficient sets the multiplier of the tier-weight bonus.
func WithTierCoefficient(coef float64) Option {
	return func(c *Catalog) {
		c.tierCoefficient = coef
	}
}

// WithMode sets the scoring mode.
func WithMode(mode Mode) Option {
	return func(c *Catalog) {
		if mode != "" {
			c.mode = mode
		}
	}
}

// New builds a Catalog. Champion keys must be exactly 1..len(pool) and every
// trait a champion carries must exist in traits; otherwise an error wrapping
// ErrMalformed is returned. An unsupported mode yields ErrUnknownMode.
func New(pool []Champion, traits []Trait, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		pool:            make([]Champion, len(pool)+1),
		traits:          make(map[int]Trait, len(traits)),
		tierCoefficient: defaultTierCoefficient,
		mode:            ModeStandUnited,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.mode != ModeStandUnited && c.mode != ModeBuiltDifferent {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, c.mode)
	}
	if len(pool) == 0 {
		return nil, malformed("champions", "empty champion pool")
	}

	for _, t := range traits {
		if _, dup := c.traits[t.Key]; dup {
			return nil, malformed("traits", "duplicate trait key %d", t.Key)
		}
		c.traits[t.Key] = t
	}

	seen := make([]bool, len(pool)+1)
	for _, ch := range pool {
		if ch.Key < 1 || ch.Key > len(pool) {
			return nil, malformed("champions", "champion key %d outside 1..%d", ch.Key, len(pool))
		}
		if seen[ch.Key] {
			return nil, malformed("champions", "duplicate champion key %d", ch.Key)
		}
		seen[ch.Key] = true
		for _, t := range ch.Traits {
			if _, ok := c.traits[t]; !ok {
				return nil, malformed("champions", "champion %d references unknown trait %d", ch.Key, t)
			}
		}
		ch.Traits = slices.Clone(ch.Traits)
		c.pool[ch.Key] = ch
	}
	return c, nil
}

// PoolSize returns the number of champions. Valid keys are 1..PoolSize().
func (c *Catalog) PoolSize() int { return len(c.pool) - 1 }

// Champion returns the champion with the given key. The key must be in range.
func (c *Catalog) Champion(key int) Champion { return c.pool[key] }

// Trait returns the trait with the given key.
func (c *Catalog) Trait(key int) (Trait, bool) {
	t, ok := c.traits[key]
	return t, ok
}

// Champions returns a copy of the pool ordered by key.
func (c *Catalog) Champions() []Champion {
	out := make([]Champion, 0, c.PoolSize())
	for _, ch := range c.pool[1:] {
		ch.Traits = slices.Clone(ch.Traits)
		out = append(out, ch)
	}
	return out
}

// Traits returns a copy of the trait table ordered by key.
func (c *Catalog) Traits() []Trait {
	out := make([]Trait, 0, len(c.traits))
	for _, t := range c.traits {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Trait) int { return a.Key - b.Key })
	return out
}

// WeightTiers reports whether the tier-weight bonus is enabled.
func (c *Catalog) WeightTiers() bool { return c.weightTiers }

// TierCoefficient is the multiplier of the tier-weight bonus.
func (c *Catalog) TierCoefficient() float64 { return c.tierCoefficient }

// Mode is the scoring mode the catalog was built for.
func (c *Catalog) Mode() Mode { return c.mode }
