package catalog

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoad        = errors.New("catalog load failed")
	ErrMalformed   = errors.New("malformed catalog")
	ErrUnknownMode = errors.New("unknown mode")
)

// LoadError describes why a catalog table could not be turned into a Catalog.
// It unwraps to ErrLoad or ErrMalformed and to the underlying cause.
type LoadError struct {
	Op    string // "read", "parse" or "validate"
	Table string // "champions" or "traits"
	Kind  error
	Err   error
}

func (e *LoadError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("catalog %s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("catalog %s %s: %v: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{e.Kind, e.Err} }

func malformed(table, format string, args ...any) error {
	return &LoadError{Op: "validate", Table: table, Kind: ErrMalformed, Err: fmt.Errorf(format, args...)}
}
