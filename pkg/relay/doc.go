// Package relay implements global object identification: opaque,
// globally unique node identifiers and the resolver that routes them back
// to a type-specific fetch routine.
//
// An identifier is a UUID bound at compile time to one entity type:
//
//	type User struct {
//		ID   relay.ID[User]
//		Name string
//	}
//
//	func (User) NodeTag() string { return "u" }
//
// On the wire an identifier is the UUID's 32 lowercase hex characters
// followed directly by the type tag, with no separator:
//
//	92ba0c2d4b4e4e2991dd8f96a078c3ffu
//
// The UUID has a fixed width, so the tag is everything after the first 32
// characters and is matched by exact equality. Tags need not be
// prefix-disjoint, but they must be unique within a Resolver;
// NewResolver rejects duplicates.
//
// A Resolver is built once from a closed list of node types:
//
//	res, err := relay.NewResolver(
//		relay.Type(fetchUser),
//		relay.Type(fetchTenant),
//	)
//	node, err := res.FetchNode(ctx, relay.NewContext(db), id)
//
// Fetch routines receive a Context, a read-only single-value holder for
// whatever shared dependency they need (a database handle, request data).
//
// The package does not log, retry, cache, or authorize. Errors are
// returned to the caller; see ErrMalformedID, ErrUnrecognizedType and
// ErrNotFound, or IsNoSuchNode to treat all three alike.
package relay
