package types

import "errors"

// Directory defines backend-agnostic access to users and tenants.
// Callers attach to a backend, use its stores, and detach when done.
type Directory interface {
	// Attach connects the Directory to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	Detach() error

	// Users returns the user store.
	// Returns ErrDirectoryDetached if the directory is not attached.
	Users() (Store[User], error)

	// Tenants returns the tenant store.
	// Returns ErrDirectoryDetached if the directory is not attached.
	Tenants() (Store[Tenant], error)
}

// Directory lifecycle errors.
var (
	ErrDirectoryDetached = errors.New("directory is detached")
	ErrAlreadyAttached   = errors.New("directory is already attached")
)
