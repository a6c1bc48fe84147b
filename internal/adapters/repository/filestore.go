package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/okian/synergy/internal/domain/catalog"
	"github.com/okian/synergy/pkg/metrics"
)

const defaultDir = "data"

type fileSet struct {
	champions string
	traits    string
}

// FileStore reads catalogs from JSON files on every call. Nothing is cached,
// so edits to the files are picked up by the next search.
type FileStore struct {
	dir   string
	files map[catalog.Mode]fileSet
}

// NewFileStore creates a FileStore. By default standUnited reads
// champions.json and traits.json, builtDifferent reads champions_bd.json
// and traits_bd.json, both from ./data.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		dir: defaultDir,
		files: map[catalog.Mode]fileSet{
			catalog.ModeStandUnited:    {champions: "champions.json", traits: "traits.json"},
			catalog.ModeBuiltDifferent: {champions: "champions_bd.json", traits: "traits_bd.json"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog implements Store.
func (s *FileStore) Catalog(ctx context.Context, mode catalog.Mode, opts ...catalog.Option) (*catalog.Catalog, error) {
	fs, ok := s.files[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownMode, mode)
	}

	start := time.Now()
	opts = append(opts[:len(opts):len(opts)], catalog.WithMode(mode))
	c, err := catalog.LoadFiles(ctx, s.path(fs.champions), s.path(fs.traits), opts...)
	if err != nil {
		metrics.RecordCatalogLoadError(mode.String())
		metrics.RecordErrorByComponent("catalog", "load_failed")
		return nil, fmt.Errorf("%w: mode %s: %w", ErrCatalogUnavailable, mode, err)
	}
	metrics.RecordCatalogLoad(mode.String(), float64(time.Since(start).Microseconds())/1000, c.PoolSize())
	return c, nil
}

// Traits implements Store.
func (s *FileStore) Traits(ctx context.Context, mode catalog.Mode) ([]catalog.Trait, error) {
	c, err := s.Catalog(ctx, mode)
	if err != nil {
		return nil, err
	}
	return c.Traits(), nil
}

func (s *FileStore) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
