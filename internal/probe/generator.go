package probe

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// randomInt returns a uniform integer in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// generateRequests draws n requests with sizes in [1, maxSize] and
// alternating modes. Sizes above the service bound are allowed on purpose
// so clamping gets exercised.
func generateRequests(n, maxSize int) []Request {
	if maxSize < minTeamSize {
		maxSize = minTeamSize
	}
	modes := []string{ModeStandUnited, ModeBuiltDifferent}
	out := make([]Request, n)
	for i := range out {
		out[i] = Request{
			ID:   uuid.NewString(),
			Size: minTeamSize + randomInt(maxSize),
			Mode: modes[i%len(modes)],
		}
	}
	return out
}
