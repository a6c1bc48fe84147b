package service

import "github.com/okian/synergy/internal/domain/types"

// Sentinel kinds returned by the service.
var (
	ErrNotStarted     = types.ErrNotStarted
	ErrInvalidRequest = types.ErrInvalidRequest
	ErrBackpressure   = types.ErrBackpressure
	ErrTimeout        = types.ErrTimeout
)
