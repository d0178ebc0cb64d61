// Package sqlite exposes the SQLite directory backend to code outside
// this module while keeping its implementation internal.
package sqlite

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/relay/internal/sqlite"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// Option configures a directory created by NewDirectory.
type Option = sqlite.Option

// WithLogger sets the logger the directory writes debug events to.
func WithLogger(l zerolog.Logger) Option {
	return sqlite.WithLogger(l)
}

// NewDirectory creates a detached SQLite directory. Attach it with a
// Config whose Backend is types.BackendSQLite.
//
//	dir := sqlite.NewDirectory()
//	err := dir.Attach(types.Config{Backend: types.BackendSQLite, DataDir: ".relay-db"})
//	defer dir.Detach()
func NewDirectory(opts ...Option) types.Directory {
	return sqlite.NewBackend(opts...)
}
