package worker_test

import "math/rand"

func newSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
