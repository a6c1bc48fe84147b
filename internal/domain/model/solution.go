// Package model contains domain models passed between layers.
package model

import "slices"

// Solution is an ordered team of champion keys. Keys may repeat.
type Solution []int

// Clone returns an independent copy of s.
func (s Solution) Clone() Solution { return slices.Clone(s) }

// Len returns the team size.
func (s Solution) Len() int { return len(s) }

// SearchStats summarizes the work a search performed.
type SearchStats struct {
	Rounds       int // ILS rounds executed
	Improvements int // rounds that replaced the best-ever solution
	Passes       int // local search passes over all rounds
	Evaluations  int // scorer invocations over all rounds
}

// Outcome is the final answer of one search. Err is set when the search
// could not run; the other fields are then zero.
type Outcome struct {
	JobID    string
	Solution Solution
	Primary  int         // active traits, or penalties in the minimize mode
	Fitness  int         // mode-dependent comparison score
	Traits   map[int]int // trait key -> distinct champions carrying it
	Stats    SearchStats
	Err      error
}
