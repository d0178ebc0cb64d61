package relay

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"
)

// FetchFunc loads the entity of type T identified by id. It returns
// (nil, nil) when no such entity exists; a non-nil error is a failure
// and reaches the Resolver's caller unchanged.
type FetchFunc[T any] func(ctx context.Context, rc Context, id ID[T]) (*T, error)

// NodeType binds one entity type's tag to its fetch routine. Build one
// with Type and pass it to NewResolver.
type NodeType struct {
	tag   string
	name  string
	fetch func(ctx context.Context, rc Context, u uuid.UUID) (any, error)
}

// Type declares T as a member of a node set, fetched by fetch. T's tag is
// TagOf[T]().
func Type[T any](fetch FetchFunc[T]) NodeType {
	nt := NodeType{
		tag:  TagOf[T](),
		name: typeName[T](),
	}
	if fetch == nil {
		return nt
	}
	nt.fetch = func(ctx context.Context, rc Context, u uuid.UUID) (any, error) {
		e, err := fetch(ctx, rc, FromUUID[T](u))
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, nil
		}
		return e, nil
	}
	return nt
}

// Tag returns the type tag the node type dispatches on.
func (nt NodeType) Tag() string { return nt.tag }

// Name returns the Go type name of the node type.
func (nt NodeType) Name() string { return nt.name }

// Resolver routes opaque identifiers to the fetch routine of the type
// whose tag they carry. The set of types is fixed when the Resolver is
// built. A Resolver is safe for concurrent use.
type Resolver struct {
	types map[string]NodeType
	order []string
}

// NewResolver builds a Resolver over types. It fails with ErrEmptyTag,
// ErrDuplicateTag or ErrNilFetch if a type cannot be dispatched to
// unambiguously.
func NewResolver(types ...NodeType) (*Resolver, error) {
	r := &Resolver{
		types: make(map[string]NodeType, len(types)),
		order: make([]string, 0, len(types)),
	}
	for _, nt := range types {
		if nt.tag == "" {
			return nil, fmt.Errorf("register %s: %w", displayName(nt), ErrEmptyTag)
		}
		if nt.fetch == nil {
			return nil, fmt.Errorf("register %s: %w", displayName(nt), ErrNilFetch)
		}
		if prev, ok := r.types[nt.tag]; ok {
			return nil, fmt.Errorf("register %s: %w: %q is used by %s", displayName(nt), ErrDuplicateTag, nt.tag, displayName(prev))
		}
		r.types[nt.tag] = nt
		r.order = append(r.order, nt.tag)
	}
	return r, nil
}

// MustNewResolver is like NewResolver but panics on error. Use it for
// node sets declared at package level.
func MustNewResolver(types ...NodeType) *Resolver {
	r, err := NewResolver(types...)
	if err != nil {
		panic(err)
	}
	return r
}

func displayName(nt NodeType) string {
	if nt.name == "" {
		return "unnamed type"
	}
	return nt.name
}

// FetchNode resolves one opaque identifier. It fails with ErrInvalidID when
// the identifier is too short or its value is not a UUID, with
// ErrUnrecognizedType when no registered type carries its tag, and with
// ErrNotFound when the fetch routine finds nothing. Errors from the fetch
// routine are returned unchanged.
func (r *Resolver) FetchNode(ctx context.Context, rc Context, opaque string) (Node, error) {
	u, tag, err := Split(opaque)
	if err != nil {
		return Node{}, err
	}
	nt, ok := r.types[tag]
	if !ok {
		return Node{}, fmt.Errorf("fetch node %q: %w: %q", opaque, ErrUnrecognizedType, tag)
	}
	e, err := nt.fetch(ctx, rc, u)
	if err != nil {
		return Node{}, err
	}
	if e == nil {
		return Node{}, &NotFoundError{Tag: tag, ID: opaque}
	}
	return Node{id: opaque, tag: tag, entity: e}, nil
}

// FetchNodes resolves each identifier independently and concurrently.
// The results are in input order; one failure does not affect the others.
func (r *Resolver) FetchNodes(ctx context.Context, rc Context, opaques []string) []NodeResult {
	return iter.Map(opaques, func(opaque *string) NodeResult {
		n, err := r.FetchNode(ctx, rc, *opaque)
		return NodeResult{ID: *opaque, Node: n, Err: err}
	})
}

// Tags returns the registered tags in declaration order.
func (r *Resolver) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the node type registered under tag.
func (r *Resolver) Lookup(tag string) (NodeType, bool) {
	nt, ok := r.types[tag]
	return nt, ok
}
