package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrExpired   = errors.New("job expired before a worker picked it up")
	ErrNoCatalog = errors.New("job has no catalog")
)
