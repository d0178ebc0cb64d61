package relay

// Node is the polymorphic result of a node lookup: one entity of one of
// the types registered with a Resolver.
type Node struct {
	id     string
	tag    string
	entity any
}

// ID returns the opaque identifier the node was fetched by.
func (n Node) ID() string { return n.id }

// Tag returns the type tag of the node's entity type.
func (n Node) Tag() string { return n.tag }

// Entity returns the fetched entity, a *T for the matched type T. It is nil
// for the zero Node.
func (n Node) Entity() any { return n.entity }

// NodeAs returns the node's entity as a *T, or false if the node holds an
// entity of another type.
func NodeAs[T any](n Node) (*T, bool) {
	e, ok := n.entity.(*T)
	return e, ok
}

// NodeResult pairs one FetchNodes input with its outcome.
type NodeResult struct {
	ID   string
	Node Node
	Err  error
}
