package model

import (
	"time"

	"github.com/okian/synergy/internal/domain/catalog"
)

// Job is a search request flowing from the service to the workers.
type Job struct {
	ID       string
	Catalog  *catalog.Catalog
	Size     int
	Enqueued time.Time
	// Deadline, when set, is the point after which nobody waits for the
	// result. Workers skip jobs that are already past it.
	Deadline time.Time

	// Result receives exactly one Outcome. It must be buffered so a worker
	// never blocks on a caller that has given up.
	Result chan<- Outcome
}
