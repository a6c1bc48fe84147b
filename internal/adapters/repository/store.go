// Package repository provides the catalog sources a search is run against.
package repository

import (
	"context"

	"github.com/okian/synergy/internal/domain/catalog"
)

// Store hands out catalogs per scoring mode.
type Store interface {
	// Catalog loads a fresh catalog for mode. Options such as tier weighting
	// are applied to the returned catalog only.
	Catalog(ctx context.Context, mode catalog.Mode, opts ...catalog.Option) (*catalog.Catalog, error)

	// Traits returns the trait table of the catalog for mode, ordered by key.
	Traits(ctx context.Context, mode catalog.Mode) ([]catalog.Trait, error)
}
