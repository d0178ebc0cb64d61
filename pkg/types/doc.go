// Package types defines the entities of the relay example directory
// (users and tenants), the Directory and Store interfaces that backends
// implement, and the standard errors they return.
//
// Every entity carries a relay.ID bound to its own type and declares its
// node tag, so any entity returned by a Store can be re-fetched later
// through the node resolver in internal/nodes.
package types
