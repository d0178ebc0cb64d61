package relay

import "reflect"

// Tagger is implemented by entity types that choose their own type tag.
// NodeTag is called on the zero value, so it must return a constant.
type Tagger interface {
	NodeTag() string
}

// TagOf returns the type tag for T: the result of T's NodeTag method when
// T (or *T) implements Tagger, otherwise T's Go type name.
//
// An unnamed T without a NodeTag method has the empty tag. Its identifiers
// encode to the bare 32-character value, which DecodeID rejects as
// malformed and NewResolver refuses to register, so entity types must be
// named or declare a tag.
func TagOf[T any]() string {
	var zero T
	if t, ok := any(zero).(Tagger); ok {
		return t.NodeTag()
	}
	if t, ok := any(&zero).(Tagger); ok {
		return t.NodeTag()
	}
	return typeName[T]()
}

// typeName returns the unqualified Go name of T, or "" for unnamed types.
func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}
