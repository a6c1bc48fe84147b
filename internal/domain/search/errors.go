package search

import "errors"

// Sentinel kinds for search errors.
var (
	ErrInvalidSize = errors.New("team size out of range")
)
