// Package sqlite implements the SQLite directory backend. SQLite serves
// queries; JSONL files in the data directory are the source of truth and
// are reloaded into a fresh database on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// dbFile is the SQLite file created in DataDir. It is rebuilt on Attach.
const dbFile = "relay.db"

var _ types.Directory = (*Backend)(nil)

// Backend implements types.Directory on SQLite and JSONL files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   zerolog.Logger

	users   *usersTable
	tenants *tenantsTable
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger the backend writes debug events to.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) {
		b.logger = l.With().Str(logging.FieldComponent, "sqlite").Logger()
	}
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	b.users = &usersTable{backend: b}
	b.tenants = &tenantsTable{backend: b}
	return b
}

// Attach validates config, prepares DataDir, creates the schema, and loads
// the JSONL files. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	loaded, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true

	b.logger.Debug().
		Str(logging.FieldDataDir, dataDir).
		Int("users", loaded["users"]).
		Int("tenants", loaded["tenants"]).
		Msg("directory attached")
	return nil
}

// Detach closes the database. It is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.logger.Debug().Str(logging.FieldDataDir, b.config.DataDir).Msg("directory detached")
	return nil
}

// Users returns the user store.
func (b *Backend) Users() (types.Store[types.User], error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDirectoryDetached
	}
	return b.users, nil
}

// Tenants returns the tenant store.
func (b *Backend) Tenants() (types.Store[types.Tenant], error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDirectoryDetached
	}
	return b.tenants, nil
}

// read runs fn under the read lock against an attached database.
func (b *Backend) read(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDirectoryDetached
	}
	return fn(b.db)
}

// write runs fn under the write lock. Writes are serialized so the JSONL
// rewrite that follows a change always sees the committed table.
func (b *Backend) write(fn func(db *sql.DB) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDirectoryDetached
	}
	return fn(b.db)
}

// jsonlPath returns the path of a JSONL file in the attached DataDir.
func (b *Backend) jsonlPath(name string) string {
	return filepath.Join(b.config.DataDir, name)
}
