// Package nodes declares the node set of the directory: the entity types
// that can be fetched by opaque identifier and how each is loaded.
package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/pkg/relay"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// ErrNoDirectory is returned by the fetchers when the relay context does
// not carry a types.Directory.
var ErrNoDirectory = errors.New("relay context carries no directory")

// NewResolver returns a resolver over users and tenants.
func NewResolver() (*relay.Resolver, error) {
	return relay.NewResolver(
		relay.Type(FetchUser),
		relay.Type(FetchTenant),
	)
}

// NewContext returns a relay context carrying dir for the fetchers.
func NewContext(dir types.Directory) relay.Context {
	return relay.NewContext(dir)
}

// FetchUser loads a user from the directory in rc.
func FetchUser(ctx context.Context, rc relay.Context, id relay.ID[types.User]) (*types.User, error) {
	return fetch(ctx, rc, id, types.Directory.Users)
}

// FetchTenant loads a tenant from the directory in rc.
func FetchTenant(ctx context.Context, rc relay.Context, id relay.ID[types.Tenant]) (*types.Tenant, error) {
	return fetch(ctx, rc, id, types.Directory.Tenants)
}

// fetch resolves the store with open and reads id from it. A missing
// entity is reported as (nil, nil). The zero UUID never names a stored
// entity, so it is missing without a store read.
func fetch[T any](ctx context.Context, rc relay.Context, id relay.ID[T], open func(types.Directory) (types.Store[T], error)) (*T, error) {
	log := logging.Ctx(ctx)

	dir, ok := relay.Get[types.Directory](rc)
	if !ok {
		return nil, ErrNoDirectory
	}
	if id.IsZero() {
		log.Debug().Str(logging.FieldNodeID, id.String()).Msg("zero node id")
		return nil, nil
	}
	store, err := open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", id.Tag(), err)
	}

	e, err := store.Get(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		log.Debug().Str(logging.FieldNodeID, id.String()).Msg("node not in directory")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str(logging.FieldNodeID, id.String()).Str(logging.FieldTag, id.Tag()).Msg("node fetched")
	return e, nil
}
