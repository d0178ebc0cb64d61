package types

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/relay/pkg/relay"
)

// Store provides CRUD operations for one entity type. Entities are keyed
// by their typed identifier; backends persist only its raw UUID.
type Store[T any] interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(ctx context.Context, id relay.ID[T]) (*T, error)

	// Set creates or updates an entity. An entity with a zero ID is created
	// with a new ID. Returns the ID used (generated or provided).
	Set(ctx context.Context, entity *T) (relay.ID[T], error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(ctx context.Context, id relay.ID[T]) error

	// List returns every entity in the store ordered by creation time.
	List(ctx context.Context) ([]*T, error)
}

// Store operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrInvalidName = errors.New("invalid name")
)
