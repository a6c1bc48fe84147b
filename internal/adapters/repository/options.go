package repository

import "github.com/okian/synergy/internal/domain/catalog"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithDir sets the directory the catalog files are read from.
func WithDir(dir string) Option {
	return func(s *FileStore) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithFiles overrides the file names used for mode. Relative names are
// resolved against the store directory.
func WithFiles(mode catalog.Mode, champions, traits string) Option {
	return func(s *FileStore) {
		if champions != "" && traits != "" {
			s.files[mode] = fileSet{champions: champions, traits: traits}
		}
	}
}
