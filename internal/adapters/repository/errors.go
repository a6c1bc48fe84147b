package repository

import "github.com/okian/synergy/internal/domain/types"

// Sentinel kinds for catalog store errors.
var (
	ErrCatalogUnavailable = types.ErrCatalogUnavailable
)
