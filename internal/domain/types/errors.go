package types

import "errors"

// Error kinds shared by the service and its transports.
var (
	ErrNotStarted         = errors.New("service not started")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrBackpressure       = errors.New("search queue full")
	ErrTimeout            = errors.New("search timed out")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
