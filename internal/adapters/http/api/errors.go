package api

import (
	"errors"
	"net/http"

	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/internal/domain/types"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// KindError attaches an error kind to the operation that failed.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *KindError) Unwrap() []error { return []error{e.Kind, e.Err} }

// WrapKind returns err tagged with kind for op.
func WrapKind(op string, kind, err error) error {
	return &KindError{Op: op, Kind: kind, Err: err}
}

// statusFor maps an error to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, types.ErrInvalidRequest),
		errors.Is(err, catalog.ErrUnknownMode):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrRateLimited), errors.Is(err, types.ErrBackpressure):
		return http.StatusTooManyRequests, "too_many_requests"
	case errors.Is(err, types.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, types.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, types.ErrCatalogUnavailable):
		return http.StatusInternalServerError, "catalog_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
