package relay

// Context carries one shared dependency to every fetch routine: a
// database handle, request-scoped data, or anything else the node types
// need. It holds at most one value and is immutable, so it may be shared
// by concurrent fetches without locking.
//
// Context is unrelated to context.Context, which fetch routines also
// receive for cancellation and deadlines.
type Context struct {
	value any
	set   bool
}

// NewContext returns a Context holding v.
func NewContext(v any) Context {
	return Context{value: v, set: true}
}

// EmptyContext returns a Context holding nothing. Get on it always
// reports false.
func EmptyContext() Context {
	return Context{}
}

// IsEmpty reports whether c holds no value.
func (c Context) IsEmpty() bool {
	return !c.set
}

// Get returns the value held by c as a T. It reports false when c is empty
// or the value is not a T. For a concrete T the stored value's dynamic type
// must be exactly T; no conversion is attempted. For an interface T the
// value must implement it.
func Get[T any](c Context) (T, bool) {
	if !c.set {
		var zero T
		return zero, false
	}
	v, ok := c.value.(T)
	return v, ok
}
