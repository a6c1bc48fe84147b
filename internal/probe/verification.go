package probe

import (
	"errors"
	"fmt"
	"maps"
)

// Verification failures.
var (
	ErrTeamSize   = errors.New("team size mismatch")
	ErrBreakdown  = errors.New("trait breakdown mismatch")
	ErrEvaluation = errors.New("evaluation mismatch")
)

// clampSize mirrors the service's team size bound.
func clampSize(n int) int {
	return max(minTeamSize, min(n, maxTeamSize))
}

// verifyTeam checks a solve response against the request and the mode's
// trait table.
func verifyTeam(req Request, team *Team, traits map[int]Trait) error {
	if want := clampSize(req.Size); len(team.Champions) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrTeamSize, len(team.Champions), want)
	}

	counts, duplicates := tally(team.Champions)
	if !maps.Equal(counts, team.Traits) {
		return fmt.Errorf("%w: got %v, recomputed %v", ErrBreakdown, team.Traits, counts)
	}

	active := 0
	for key, n := range counts {
		if tr, ok := traits[key]; ok && tr.Min <= n {
			active++
		}
	}
	want := active
	if req.Mode == ModeBuiltDifferent {
		want += duplicates
	}
	if team.Evaluation != want {
		return fmt.Errorf("%w: got %d, want %d", ErrEvaluation, team.Evaluation, want)
	}
	return nil
}

// tally counts traits over distinct champions and the number of repeated slots.
func tally(champions []Champion) (map[int]int, int) {
	counts := make(map[int]int)
	seen := make(map[string]struct{}, len(champions))
	duplicates := 0
	for _, ch := range champions {
		if _, dup := seen[ch.ID]; dup {
			duplicates++
			continue
		}
		seen[ch.ID] = struct{}{}
		for _, t := range ch.Traits {
			counts[t]++
		}
	}
	return counts, duplicates
}
